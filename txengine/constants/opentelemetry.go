package constant

// TelemetrySDKName identifies this module in OTEL telemetry resource attributes.
const TelemetrySDKName = "tx-engine/opentelemetry"

// MaxMetricLabelLength is the maximum length for metric labels to prevent cardinality explosion.
const MaxMetricLabelLength = 64

// Telemetry metric names.
const (
	// MetricPanicRecoveredTotal is the counter metric for recovered panics.
	MetricPanicRecoveredTotal = "panic_recovered_total"
	// MetricAssertionFailedTotal is the counter metric for failed assertions.
	MetricAssertionFailedTotal = "assertion_failed_total"
	// MetricTransactionsProcessed counts records handed to the ledger, labeled by kind and outcome.
	MetricTransactionsProcessed = "ledger_transactions_processed"
	// MetricAccountsCreated counts client accounts opened by the ledger.
	MetricAccountsCreated = "ledger_accounts_created"
	// MetricClients records the number of known clients at the end of a run.
	MetricClients = "ledger_clients"
	// MetricRunDuration records the wall time of a run in milliseconds.
	MetricRunDuration = "ledger_run_duration"
)

// Telemetry event and span names.
const (
	// EventAssertionFailed is the span event name for assertion failures.
	EventAssertionFailed = "assertion.failed"
	// EventPanicRecovered is the span event name for recovered panics.
	EventPanicRecovered = "panic.recovered"
	// EventTransactionRejected is the span event name for non-fatal ledger rejections.
	EventTransactionRejected = "transaction.rejected"
	// SpanRun is the span wrapping one full ingestion run.
	SpanRun = "txengine.run"
)

// SanitizeMetricLabel truncates a label value to MaxMetricLabelLength
// to prevent metric cardinality explosion in OTEL backends.
func SanitizeMetricLabel(value string) string {
	if len(value) > MaxMetricLabelLength {
		return value[:MaxMetricLabelLength]
	}

	return value
}
