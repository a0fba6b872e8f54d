// Package log defines the logging interface and typed logging fields used by
// the engine.
//
// Adapters (such as the zap package) implement Logger so the ledger, processor
// and CLI keep logging calls consistent across backends.
package log
