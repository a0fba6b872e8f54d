// Command txengine applies a CSV file of transactions to an in-memory ledger
// and writes the resulting client balances as CSV to stdout.
//
// Usage:
//
//	txengine [path]
//
// The path defaults to TXENGINE_INPUT, then data/transactions.csv. Logs are
// written to stderr. The exit code is 1 when the run aborts, in which case no
// balances are written.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SathemBite/tx-engine-example/txengine/assert"
	"github.com/SathemBite/tx-engine-example/txengine/config"
	"github.com/SathemBite/tx-engine-example/txengine/csvio"
	"github.com/SathemBite/tx-engine-example/txengine/ledger"
	"github.com/SathemBite/tx-engine-example/txengine/log"
	"github.com/SathemBite/tx-engine-example/txengine/opentelemetry"
	"github.com/SathemBite/tx-engine-example/txengine/processor"
	"github.com/SathemBite/tx-engine-example/txengine/runtime"
	txzap "github.com/SathemBite/tx-engine-example/txengine/zap"
)

const component = "txengine"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "txengine: %v\n", err)
		return 1
	}

	runtime.SetProductionMode(cfg.IsProduction())

	logger, err := txzap.New(txzap.Config{
		Environment:     txzap.Environment(strings.ToLower(strings.TrimSpace(cfg.EnvName))),
		Level:           cfg.LogLevel,
		OTelLibraryName: cfg.LibraryName,
	})
	if err != nil {
		fmt.Fprintf(stderr, "txengine: %v\n", err)
		return 1
	}

	defer func() { _ = logger.Sync(context.Background()) }()

	telemetry, err := opentelemetry.InitializeTelemetry(ctx, &opentelemetry.TelemetryConfig{
		LibraryName:               cfg.LibraryName,
		ServiceName:               cfg.ServiceName,
		ServiceVersion:            cfg.Version,
		DeploymentEnv:             cfg.EnvName,
		CollectorExporterEndpoint: cfg.CollectorEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		log.SafeError(ctx, logger, "telemetry initialization failed", err, runtime.IsProductionMode())
		return 1
	}

	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			log.SafeError(context.Background(), logger, "telemetry shutdown failed", err, runtime.IsProductionMode())
		}
	}()

	runtime.InitPanicMetrics(telemetry.MetricsFactory, logger)
	assert.InitAssertionMetrics(telemetry.MetricsFactory)

	defer func() {
		if r := recover(); r != nil {
			runtime.HandlePanicValue(ctx, logger, r, component, "run")
			code = 1
		}
	}()

	path := cfg.Input(args)

	logger.Log(ctx, log.LevelInfo, "txengine starting",
		log.String("input", path),
		log.String("env", cfg.EnvName),
		log.String("level", logger.Level().String()),
		log.Bool("telemetry", cfg.EnableTelemetry),
		log.String("version", cfg.Version),
	)

	balances, err := process(ctx, path, logger, telemetry)
	if err != nil {
		log.SafeError(ctx, logger, "run failed", err, runtime.IsProductionMode())
		return 1
	}

	if err := csvio.NewWriter(stdout).WriteSnapshot(balances); err != nil {
		log.SafeError(ctx, logger, "write snapshot failed", err, runtime.IsProductionMode())
		return 1
	}

	return 0
}

func process(ctx context.Context, path string, logger log.Logger, telemetry *opentelemetry.Telemetry) ([]ledger.ClientBalance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader, err := csvio.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	engine := ledger.New(ledger.WithAsserter(assert.New(logger, component, "apply")))

	p := processor.New(engine,
		processor.WithLogger(logger.With(log.String("input", path))),
		processor.WithTracer(telemetry.Tracer()),
		processor.WithMetricsFactory(telemetry.MetricsFactory),
	)

	balances, _, err := p.Run(ctx, reader)
	if err != nil {
		return nil, err
	}

	return balances, nil
}
