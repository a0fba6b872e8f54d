// Package zap adapts go.uber.org/zap to the engine's log.Logger interface.
//
// Records are emitted as JSON on stderr so stdout stays reserved for the
// balance report. Active span context is attached as trace_id/span_id and a
// tee core forwards every record to the OpenTelemetry log bridge.
package zap
