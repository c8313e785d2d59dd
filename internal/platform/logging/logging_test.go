package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/jsamuelsen11/task-planner/internal/platform/logging"
)

// --- New tests ---

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"level":"INFO"`},
		{format: "text", want: "level=INFO"},
		{format: "xml", want: `"level":"INFO"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", tt.format, &buf).Info("hello")

			if out := buf.String(); !strings.Contains(out, tt.want) || !strings.Contains(out, "hello") {
				t.Errorf("output = %q, want it to contain %q and the message", out, tt.want)
			}
		})
	}
}

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		enabled slog.Level
		dropped slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, dropped: slog.LevelDebug - 1},
		{level: "DEBUG", enabled: slog.LevelDebug, dropped: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, dropped: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, dropped: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, dropped: slog.LevelWarn},
		{level: "verbose", enabled: slog.LevelInfo, dropped: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(tt.level, "json", &bytes.Buffer{})
			ctx := context.Background()

			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("level %q: %v disabled, want enabled", tt.level, tt.enabled)
			}
			if logger.Enabled(ctx, tt.dropped) {
				t.Errorf("level %q: %v enabled, want dropped", tt.level, tt.dropped)
			}
		})
	}
}

func TestNew_SourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	var debugBuf, infoBuf bytes.Buffer
	logging.New("debug", "json", &debugBuf).Debug("with source")
	logging.New("info", "json", &infoBuf).Info("no source")

	if !strings.Contains(debugBuf.String(), `"source"`) {
		t.Errorf("debug output = %q, want a source field", debugBuf.String())
	}
	if strings.Contains(infoBuf.String(), `"source"`) {
		t.Errorf("info output = %q, want no source field", infoBuf.String())
	}
}

// --- Context tests ---

func TestFromContext_WithLogger(t *testing.T) {
	t.Parallel()

	logger := logging.New("info", "json", &bytes.Buffer{})

	ctx := logging.WithLogger(context.Background(), logger)

	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext returned different logger than the one stored with WithLogger")
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	if got := logging.FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext on bare context returned something other than slog.Default()")
	}
}

func TestNew_AppendsContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	ctx := logging.WithAttrs(context.Background(), slog.String("request_id", "req-9"))
	ctx = logging.WithAttrs(ctx, slog.String("correlation_id", "corr-9"))
	logger.InfoContext(ctx, "closing board", slog.String("board_id", "b-1"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decoding log line: %v", err)
	}
	for key, want := range map[string]string{
		"request_id":     "req-9",
		"correlation_id": "corr-9",
		"board_id":       "b-1",
	} {
		if got, _ := rec[key].(string); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestNew_ContextAttrsSurviveWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "text", &buf).With(slog.String("component", "sqlite"))

	ctx := logging.WithAttrs(context.Background(), slog.String("request_id", "req-10"))
	logger.InfoContext(ctx, "tx committed")

	out := buf.String()
	if !strings.Contains(out, "component=sqlite") || !strings.Contains(out, "request_id=req-10") {
		t.Errorf("output = %q, want both logger and context attributes", out)
	}
}

func TestNew_NoContextAttrsWithoutContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "text", &buf)

	logger.Info("startup")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("output = %q, want no request attributes", buf.String())
	}
}

func TestAttrsFromContext(t *testing.T) {
	t.Parallel()

	if got := logging.AttrsFromContext(context.Background()); got != nil {
		t.Errorf("AttrsFromContext(empty) = %v, want nil", got)
	}

	parent := logging.WithAttrs(context.Background(), slog.String("a", "1"))
	child := logging.WithAttrs(parent, slog.String("b", "2"))

	if got := logging.AttrsFromContext(parent); len(got) != 1 {
		t.Errorf("parent attrs = %v, want 1 entry", got)
	}
	if got := logging.AttrsFromContext(child); len(got) != 2 {
		t.Errorf("child attrs = %v, want 2 entries", got)
	}
	if same := logging.WithAttrs(parent); same != parent {
		t.Error("WithAttrs with no attrs returned a new context")
	}
}

// --- Redaction tests ---

func TestNew_RedactsSensitiveFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{name: "authorization", attr: slog.String("authorization", "Bearer supersecret-token"), secret: "supersecret-token"},
		{name: "proxy authorization", attr: slog.String("proxy-authorization", "Basic c2VjcmV0"), secret: "c2VjcmV0"},
		{name: "password", attr: slog.String("password", "hunter2"), secret: "hunter2"},
		{name: "bearer regex", attr: slog.String("raw_header", "Bearer eyJhbGciOiJSUzI1NiJ9"), secret: "eyJhbGciOiJSUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", "json", &buf).Info("request", tt.attr)

			out := buf.String()
			if strings.Contains(out, tt.secret) {
				t.Errorf("output = %q, want %q redacted", out, tt.secret)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("output = %q, missing [REDACTED] marker", out)
			}
		})
	}
}

func TestNew_DoesNotRedactNonSensitiveFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("event",
		slog.String("user_id", "usr-123"),
		slog.String("path", "/api/v1/boards"),
	)

	out := buf.String()
	if !strings.Contains(out, "usr-123") {
		t.Error("log output missing user_id, non-sensitive field should not be redacted")
	}
	if !strings.Contains(out, "/api/v1/boards") {
		t.Error("log output missing path, non-sensitive field should not be redacted")
	}
}

func TestSensitiveHeader(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"Authorization":       true,
		"X-Api-Key":           true,
		"Set-Cookie":          true,
		"proxy-authorization": true,
		"X-Request-ID":        false,
		"Content-Type":        false,
	} {
		if got := logging.SensitiveHeader(name); got != want {
			t.Errorf("SensitiveHeader(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew_RedactsEmbeddedSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.New("info", "json", &buf).Info("formatter call",
		slog.String("detail", "retrying with api_key=sk_live_51abc"),
		slog.String("version", "1.2.3"),
	)

	out := buf.String()
	if strings.Contains(out, "sk_live_51abc") {
		t.Errorf("inline api key leaked: %s", out)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("version string masked: %s", out)
	}
}
