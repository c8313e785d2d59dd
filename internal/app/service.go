// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
//
// Every write runs in one store transaction: the validation layer's checks,
// the lifecycle rules, and the mutation either all commit or all roll back.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/platform/telemetry"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Option configures an application service.
type Option func(*base)

// WithMetrics records rule rejections on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(b *base) { b.metrics = m }
}

// WithClock replaces time.Now as the source of creation and end times.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithIDGenerator replaces the UUID v4 generator used for new entities.
func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

// base carries what every service needs.
type base struct {
	store   ports.Store
	logger  *slog.Logger
	metrics *telemetry.Metrics
	now     func() time.Time
	newID   func() string
}

func newBase(store ports.Store, logger *slog.Logger, opts []Option) base {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := base{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// rejections are the error kinds a caller can act on. They are logged at
// WARN and counted; anything else is an internal failure logged at ERROR.
var rejections = []error{
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrConflict,
	domain.ErrPrecondition,
	domain.ErrLimitExceeded,
}

// fail logs err for operation and returns it unchanged.
func (b *base) fail(ctx context.Context, operation string, err error, attrs ...any) error {
	args := append([]any{slog.String("operation", operation)}, attrs...)
	args = append(args, slog.Any("error", err))

	for _, kind := range rejections {
		if errors.Is(err, kind) {
			reason := domain.ReasonOf(err)
			b.metrics.RecordRejection(ctx, operation, reason.String())
			b.logger.WarnContext(ctx, "operation rejected", append(args, slog.String("reason", reason.String()))...)
			return err
		}
	}

	b.logger.ErrorContext(ctx, "operation failed", args...)
	return err
}
