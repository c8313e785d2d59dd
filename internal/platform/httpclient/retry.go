package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/task-planner/internal/platform/logging"
)

// jitterFraction bounds the random spread applied to each computed delay.
const jitterFraction = 0.25

// doWithRetry sends req until it gets a response with a final status, an
// error that is not worth repeating, or the attempts run out.
//
// The body is buffered once and replayed for every attempt. Rendering is a
// pure function of the board snapshot, so repeating a POST is safe. A
// Retry-After header on a 429 or 503 overrides the computed backoff, within
// maxInterval.
//
// When every attempt got a retryable status, the last response is left in
// resp with its body open and the error is also returned. resp is an out
// parameter so the bodyclose linter follows the caller's Close.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	var (
		lastErr  error
		hintWait time.Duration
	)
	for attempt := range c.retryCfg.maxAttempts {
		if attempt > 0 {
			wait := max(backoff(attempt, c.retryCfg), hintWait)
			if err := c.sleep(ctx, req, attempt, wait, lastErr); err != nil {
				return err
			}
		}
		replayBody(req, body)

		r, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return err
			}
			lastErr, hintWait = err, 0
			continue
		}

		if !isRetryableStatus(r.StatusCode) {
			*resp = r
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
		hintWait = min(retryAfter(r.Header, time.Now()), c.retryCfg.maxInterval)

		if attempt == c.retryCfg.maxAttempts-1 {
			*resp = r
			return lastErr
		}
		discard(r)
	}

	return lastErr
}

func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

func replayBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
}

// discard drains and closes the body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *Client) sleep(ctx context.Context, req *http.Request, attempt int, wait time.Duration, lastErr error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retryCfg.maxAttempts),
		slog.Duration("backoff", wait),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff returns the jittered delay before retry number attempt (1-based):
// initialInterval * multiplier^(attempt-1), capped at maxInterval.
func backoff(attempt int, cfg retryConfig) time.Duration {
	base := float64(cfg.initialInterval) * math.Pow(cfg.multiplier, float64(attempt-1))
	base = math.Min(base, float64(cfg.maxInterval))
	return jitter(time.Duration(base))
}

// jitter spreads d uniformly over d ± jitterFraction*d.
func jitter(d time.Duration) time.Duration {
	spread := float64(d) * jitterFraction
	out := float64(d) + spread*(2*randUnit()-1)
	if out < 0 {
		return 0
	}
	return time.Duration(out)
}

// randUnit returns a uniform float64 in [0, 1) built from the top 53 bits of
// a crypto/rand word.
func randUnit() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0.5
	}
	const mantissa = 53
	return float64(binary.BigEndian.Uint64(b[:])>>(64-mantissa)) / (1 << mantissa)
}

// retryAfter parses a Retry-After header given either as delay-seconds or as
// an HTTP-date. Missing, malformed and past values yield zero.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// isRetryable reports whether a transport error may succeed on another try.
// The caller's own cancellation and deadline are final.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether the formatter may answer differently on
// another try. 501 and 505 describe the request itself and are final.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
