package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_FallsBackToNoop(t *testing.T) {
	t.Parallel()

	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(nil).Error("boom", nil, nil)
	})
}

func TestLoggerFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	stored := NoopLogger()
	ctx := ContextWithLogger(context.Background(), stored)
	assert.Same(t, stored, LoggerFromContext(ctx))
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}
