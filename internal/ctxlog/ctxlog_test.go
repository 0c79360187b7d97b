package ctxlog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLoggerRoundTrips(t *testing.T) {
	logger := slog.Default()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextPanicsWithoutInstalledLogger(t *testing.T) {
	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}
