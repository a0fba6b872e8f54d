// Package metrics provides a fluent factory for OpenTelemetry metric instruments.
//
// MetricsFactory caches instruments and exposes builder-style APIs for counters,
// gauges, and histograms. The ledger helpers (RecordTransactionProcessed,
// RecordAccountsCreated, RecordClients, RecordRunDuration) are what the
// processor records for every run.
package metrics
