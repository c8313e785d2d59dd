package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/task-planner/internal/adapters/clients/acl/render"
	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/platform/httpclient"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.BoardFormatter = (*FormatterClient)(nil)
	_ ports.HealthChecker  = (*FormatterClient)(nil)
)

const renderPath = "/v1/render"

// FormatterClient is the outbound adapter for the remote board formatting
// service. It implements [ports.BoardFormatter] by posting the snapshot to
// POST /v1/render.
//
// The underlying [httpclient.Client] provides circuit breaking, rate
// limiting, retry with exponential backoff, and tracing for every call.
// Anything that keeps the service from answering is reported as
// [domain.ErrUnavailable].
type FormatterClient struct {
	req    *Requester
	name   string
	logger *slog.Logger
}

// NewFormatterClient creates a FormatterClient that sends requests through
// client. The client's BaseURL should point at the formatting service root.
func NewFormatterClient(client *httpclient.Client, logger *slog.Logger) *FormatterClient {
	return &FormatterClient{
		req:    NewRequester(client, logger),
		name:   client.Name(),
		logger: logger,
	}
}

// Format renders snap remotely.
func (c *FormatterClient) Format(ctx context.Context, snap *export.Snapshot, format export.Format) ([]byte, error) {
	var resp render.ResponseDTO
	if err := c.req.PostJSON(ctx, renderPath, http.StatusOK, render.ToRequest(snap, format), &resp); err != nil {
		return nil, err
	}

	content, err := render.FromResponse(resp, format)
	if err != nil {
		c.logger.ErrorContext(ctx, "unexpected render response",
			slog.String("board_id", snap.Board.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return content, nil
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry]. It matches the service name of the underlying
// [httpclient.Client].
func (c *FormatterClient) Name() string {
	return c.name
}

// HealthCheck reports the formatting service's availability from the circuit
// breaker state without a network call. An open breaker only blocks export;
// the readiness probe reports it as degraded.
func (c *FormatterClient) HealthCheck(ctx context.Context) error {
	return c.req.HealthCheck(ctx)
}
