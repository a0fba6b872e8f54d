package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	constant "github.com/SathemBite/tx-engine-example/txengine/constants"
	"github.com/SathemBite/tx-engine-example/txengine/ledger"
	"github.com/SathemBite/tx-engine-example/txengine/log"
	"github.com/SathemBite/tx-engine-example/txengine/opentelemetry"
	"github.com/SathemBite/tx-engine-example/txengine/opentelemetry/metrics"
	"github.com/SathemBite/tx-engine-example/txengine/transaction"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Source yields transactions until it returns io.EOF.
type Source interface {
	Next() (transaction.Transaction, error)
}

// Applier is the ledger surface used by the processor. Both *ledger.Engine
// and *ledger.SyncEngine satisfy it.
type Applier interface {
	Apply(tx transaction.Transaction) error
	Snapshot() []ledger.ClientBalance
	Len() int
}

// Summary describes a completed run.
type Summary struct {
	RunID    uuid.UUID
	Applied  int
	Rejected int
	Clients  int
	Duration time.Duration
}

// Processor applies a Source to an Applier.
type Processor struct {
	ledger  Applier
	logger  log.Logger
	tracer  trace.Tracer
	metrics *metrics.MetricsFactory
	now     func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l log.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer sets the tracer used for the run span. Nil is ignored.
func WithTracer(t trace.Tracer) Option {
	return func(p *Processor) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithMetricsFactory sets the factory used for ledger metrics. Nil is ignored.
func WithMetricsFactory(f *metrics.MetricsFactory) Option {
	return func(p *Processor) {
		if f != nil {
			p.metrics = f
		}
	}
}

// New returns a Processor for ledger.
func New(l Applier, opts ...Option) *Processor {
	p := &Processor{
		ledger:  l,
		logger:  log.NewNop(),
		tracer:  noop.NewTracerProvider().Tracer("txengine"),
		metrics: metrics.NewNopFactory(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run applies every record of source in order and returns the final balances.
func (p *Processor) Run(ctx context.Context, source Source) ([]ledger.ClientBalance, Summary, error) {
	start := p.now()

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("generate run id: %w", err)
	}

	summary := Summary{RunID: runID}

	ctx = opentelemetry.ContextWithAttributes(ctx, attribute.String(constant.FieldRunID, runID.String()))

	ctx, span := p.tracer.Start(ctx, constant.SpanRun)
	defer span.End()

	logger := p.logger.With(log.String(constant.FieldRunID, runID.String()))
	logger.Log(ctx, log.LevelInfo, "run started")

	for {
		if err := ctx.Err(); err != nil {
			return p.abort(ctx, span, logger, summary, fmt.Errorf("run cancelled: %w", err))
		}

		tx, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return p.abort(ctx, span, logger, summary, fmt.Errorf("read transaction: %w", err))
		}

		before := p.ledger.Len()
		applyErr := p.ledger.Apply(tx)

		if created := p.ledger.Len() - before; created > 0 {
			p.record(ctx, logger, p.metrics.RecordAccountsCreated(ctx, created))
		}

		if applyErr == nil {
			summary.Applied++
			p.record(ctx, logger, p.metrics.RecordTransactionProcessed(ctx, tx.Kind().String(), constant.OutcomeApplied))

			continue
		}

		if ledger.IsFatal(applyErr) {
			return p.abort(ctx, span, logger, summary, fmt.Errorf("apply transaction: %w", applyErr))
		}

		summary.Rejected++
		p.reject(ctx, span, logger, applyErr)
	}

	balances := p.ledger.Snapshot()

	summary.Clients = len(balances)
	summary.Duration = p.now().Sub(start)

	p.record(ctx, logger, p.metrics.RecordClients(ctx, summary.Clients))
	p.record(ctx, logger, p.metrics.RecordRunDuration(ctx, summary.Duration))

	span.SetAttributes(
		attribute.Int("ledger.applied", summary.Applied),
		attribute.Int("ledger.rejected", summary.Rejected),
		attribute.Int("ledger.clients", summary.Clients),
	)

	logger.Log(ctx, log.LevelInfo, "run completed",
		log.Int("applied", summary.Applied),
		log.Int("rejected", summary.Rejected),
		log.Int("clients", summary.Clients),
		log.Any("duration", summary.Duration),
	)

	return balances, summary, nil
}

func (p *Processor) reject(ctx context.Context, span trace.Span, logger log.Logger, err error) {
	var rejection *ledger.Rejection
	if !errors.As(err, &rejection) {
		return
	}

	logger.Log(ctx, log.LevelWarn, "transaction rejected",
		log.String(constant.FieldKind, rejection.Kind.String()),
		log.Stringer(constant.FieldClient, rejection.Client),
		log.Stringer(constant.FieldTx, rejection.TxID),
		log.String(constant.FieldCode, string(rejection.Code)),
		log.String("reason", rejection.Message),
	)

	opentelemetry.HandleSpanEvent(span, constant.EventTransactionRejected,
		attribute.String(constant.FieldKind, rejection.Kind.String()),
		attribute.Int(constant.FieldClient, int(rejection.Client)),
		attribute.Int64(constant.FieldTx, int64(rejection.TxID)),
		attribute.String(constant.FieldCode, string(rejection.Code)),
	)

	p.record(ctx, logger, p.metrics.RecordTransactionProcessed(ctx, rejection.Kind.String(), constant.OutcomeRejected))
}

func (p *Processor) abort(ctx context.Context, span trace.Span, logger log.Logger, summary Summary, err error) ([]ledger.ClientBalance, Summary, error) {
	opentelemetry.HandleSpanError(span, "run aborted", err)
	logger.Log(ctx, log.LevelError, "run aborted", log.Err(err))

	return nil, summary, err
}

func (p *Processor) record(ctx context.Context, logger log.Logger, err error) {
	if err != nil {
		logger.Log(ctx, log.LevelWarn, "failed to record metric", log.Err(err))
	}
}
