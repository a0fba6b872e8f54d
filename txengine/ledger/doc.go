// Package ledger applies transactions to per-client accounts.
//
// Engine owns every account and is the only place balances change. Apply
// either mutates state and returns nil, or leaves state untouched and returns a
// *Rejection tagged with a Severity. Business-rule failures (duplicates, frozen
// accounts, overdrafts, negative amounts, broken dispute references) are
// non-fatal; a nil or unknown transaction variant is fatal.
//
// Apply takes no context, so engine assertion failures are reported through
// the asserter's log and assertion_failed_total only, never as span events.
//
// Engine is not safe for concurrent use. SyncEngine serializes access for
// callers that share one ledger across goroutines.
package ledger
