package commands

import (
	"context"
	"time"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// DefaultCommandTimeout bounds a single admin command.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext returns a non-nil context.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout applies timeout unless it is zero or negative.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns a usable logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.OrNoOp(logger)
}
