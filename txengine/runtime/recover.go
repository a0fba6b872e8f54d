package runtime

import (
	"context"
	"fmt"
	"runtime/debug"

	constant "github.com/SathemBite/tx-engine-example/txengine/constants"
	"github.com/SathemBite/tx-engine-example/txengine/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger defines the minimal logging interface required by panic handling.
// This interface is satisfied by txengine/log.Logger.
type Logger interface {
	Log(ctx context.Context, level log.Level, msg string, fields ...log.Field)
}

const redactedPanicMsg = "panic recovered (details redacted)"

// HandlePanicValue logs and records a value obtained from recover().
// A nil panicValue is ignored. The caller decides whether the process continues.
func HandlePanicValue(ctx context.Context, logger Logger, panicValue any, component, name string) {
	if panicValue == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var stack []byte
	if !IsProductionMode() {
		stack = debug.Stack()
	}

	logPanicWithStack(logger, name, panicValue, stack)
	recordPanicMetric(ctx, component, name)
	recordPanicToSpan(ctx, panicValue, component, name)
}

func logPanicWithStack(logger Logger, name string, panicValue any, stack []byte) {
	if logger == nil {
		return
	}

	if IsProductionMode() {
		logger.Log(context.Background(), log.LevelError, redactedPanicMsg, log.String("source", name))
		return
	}

	logger.Log(context.Background(), log.LevelError, "panic recovered",
		log.String("source", name),
		log.String("panic_value", fmt.Sprintf("%v", panicValue)),
		log.String("stack", string(stack)),
	)
}

func recordPanicToSpan(ctx context.Context, panicValue any, component, name string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	message := redactedPanicMsg
	if !IsProductionMode() {
		message = fmt.Sprintf("%v", panicValue)
	}

	span.AddEvent(constant.EventPanicRecovered, trace.WithAttributes(
		attribute.String("panic.component", component),
		attribute.String("panic.source", name),
		attribute.String("panic.value", message),
	))
	span.SetStatus(codes.Error, "panic recovered in "+name)
}
