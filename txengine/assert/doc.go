// Package assert provides invariant checks that report failures instead of
// panicking.
//
// A failed assertion is logged, recorded as an "assertion.failed" event on the
// span found in the context, counted on assertion_failed_total (after
// InitAssertionMetrics) and returned to the caller as an *AssertionError.
//
// The ledger engine uses it to guard the held-equals-disputed invariant and to
// reject transaction variants it does not know how to apply.
package assert
