// Package opentelemetry bootstraps tracing, metrics and log export for the engine.
//
// With telemetry disabled the providers are SDK-backed but have no exporters,
// so spans and metrics are recorded in-process and dropped. With telemetry
// enabled traces, metrics and logs are exported over OTLP/gRPC.
package opentelemetry
