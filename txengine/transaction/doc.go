// Package transaction defines the closed set of ledger transaction variants and
// the posting rules that move funds between available and held balances.
//
// Core flow:
//   - ParseKind maps an input operation tag to a Kind.
//   - Deposit, Withdrawal, Dispute, Resolve and Chargeback implement Transaction.
//   - ApplyPosting applies a CREDIT/DEBIT/ON_HOLD/RELEASE/CHARGEBACK posting to a Balance.
//
// Only this package can add Transaction variants, so a switch over the five
// types is exhaustive everywhere else.
package transaction
