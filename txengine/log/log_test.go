//go:build unit

package log

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Level
		expectError bool
	}{
		{name: "parse error level", input: "error", expected: LevelError},
		{name: "parse warn level", input: "warn", expected: LevelWarn},
		{name: "parse warning level", input: "warning", expected: LevelWarn},
		{name: "parse info level", input: "info", expected: LevelInfo},
		{name: "parse debug level", input: "debug", expected: LevelDebug},
		{name: "parse uppercase level", input: "INFO", expected: LevelInfo},
		{name: "parse padded level", input: " debug ", expected: LevelDebug},
		{name: "parse invalid level", input: "invalid", expectError: true},
		{name: "parse empty string", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "unknown", Level(42).String())
}

type idStub uint16

func (i idStub) String() string { return "id-7" }

func TestFieldConstructors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 3}, Int("n", 3))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "a", Value: 1.5}, Any("a", 1.5))
	assert.Equal(t, Field{Key: "error", Value: errBoom}, Err(errBoom))
	assert.Equal(t, Field{Key: "client", Value: "id-7"}, Stringer("client", idStub(7)))
	assert.Equal(t, Field{Key: "client", Value: "<nil>"}, Stringer("client", nil))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNop()

	assert.NotPanics(t, func() {
		logger.Log(context.Background(), LevelError, "ignored", String("k", "v"))
	})
	assert.False(t, logger.Enabled(LevelError))
	assert.Same(t, logger, logger.With(String("k", "v")))
	assert.Same(t, logger, logger.WithGroup("group"))
	assert.NoError(t, logger.Sync(context.Background()))
}

type recordingLogger struct {
	NopLogger
	enabled bool
	msgs    []string
	fields  [][]Field
}

func (r *recordingLogger) Log(_ context.Context, _ Level, msg string, fields ...Field) {
	r.msgs = append(r.msgs, msg)
	r.fields = append(r.fields, fields)
}

func (r *recordingLogger) Enabled(_ Level) bool { return r.enabled }

func TestSafeError(t *testing.T) {
	t.Parallel()

	errParse := errors.New("line 3:\nforged entry")

	t.Run("development logs sanitized message", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{enabled: true}
		SafeError(context.Background(), logger, "run failed", errParse, false)

		require.Len(t, logger.msgs, 1)
		assert.Equal(t, String("error", `line 3:\nforged entry`), logger.fields[0][0])
	})

	t.Run("production logs only the error type", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{enabled: true}
		SafeError(context.Background(), logger, "run failed", errParse, true)

		require.Len(t, logger.msgs, 1)
		assert.Equal(t, String("error_type", "*errors.errorString"), logger.fields[0][0])
	})

	t.Run("nil error and disabled logger are ignored", func(t *testing.T) {
		t.Parallel()

		logger := &recordingLogger{enabled: false}
		SafeError(context.Background(), logger, "run failed", errParse, false)
		SafeError(context.Background(), &recordingLogger{enabled: true}, "run failed", nil, false)
		SafeError(context.Background(), nil, "run failed", errParse, false)

		assert.Empty(t, logger.msgs)
	})
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\nb\rc\td`, Sanitize("a\nb\rc\td"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
