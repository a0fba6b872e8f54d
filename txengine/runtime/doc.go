// Package runtime provides the production-mode switch and panic handling used
// by the command entrypoint.
//
// HandlePanicValue logs a recovered panic (stack trace omitted in production
// mode), records it on the active span and increments panic_recovered_total
// when InitPanicMetrics has been called.
package runtime
