// Package processor drives a transaction source into the ledger.
//
// Run pulls records until the source is exhausted. Non-fatal ledger rejections
// are logged, counted and skipped; a source error, a fatal rejection or a
// cancelled context aborts the run and no snapshot is produced.
package processor
