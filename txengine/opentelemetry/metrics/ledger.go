package metrics

import (
	"context"
	"time"

	constant "github.com/SathemBite/tx-engine-example/txengine/constants"
)

// RecordTransactionProcessed increments the processed counter for one record.
func (f *MetricsFactory) RecordTransactionProcessed(ctx context.Context, kind, outcome string) error {
	b, err := f.Counter(MetricTransactionsProcessed)
	if err != nil {
		return err
	}

	return b.WithLabels(map[string]string{
		constant.FieldKind:    constant.SanitizeMetricLabel(kind),
		constant.FieldOutcome: constant.SanitizeMetricLabel(outcome),
	}).AddOne(ctx)
}

// RecordAccountsCreated adds n newly opened accounts.
func (f *MetricsFactory) RecordAccountsCreated(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}

	b, err := f.Counter(MetricAccountsCreated)
	if err != nil {
		return err
	}

	return b.Add(ctx, int64(n))
}

// RecordClients sets the number of clients known at the end of a run.
func (f *MetricsFactory) RecordClients(ctx context.Context, n int) error {
	b, err := f.Gauge(MetricClients)
	if err != nil {
		return err
	}

	return b.Set(ctx, int64(n))
}

// RecordRunDuration records d in milliseconds.
func (f *MetricsFactory) RecordRunDuration(ctx context.Context, d time.Duration) error {
	b, err := f.Histogram(MetricRunDuration)
	if err != nil {
		return err
	}

	return b.Record(ctx, d.Milliseconds())
}
