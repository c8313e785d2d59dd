// Package telemetry wires OpenTelemetry tracing and metrics for the task
// planner: a stdout exporter for development, OTLP/HTTP for deployments.
//
//	p, err := telemetry.Setup(ctx, cfg.Telemetry)
//	defer p.Shutdown(ctx)
//	svc := app.NewBoardService(store, logger, app.WithMetrics(p.Metrics))
//
// With telemetry disabled Setup returns empty Providers; p.Metrics is then
// nil, and a nil *Metrics records nothing.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/task-planner/internal/platform/config"
)

// Exporter names accepted in telemetry.exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Metric attribute keys.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOperation   = attribute.Key("operation")
	AttrReason      = attribute.Key("reason")
	AttrTxMode      = attribute.Key("tx.mode")
)

// ErrUnsupportedExporter reports an exporter name other than ExporterStdout
// or ExporterOTLP.
var ErrUnsupportedExporter = errors.New("unsupported exporter")

// Providers owns the SDK providers registered globally by Setup.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup builds and registers the tracer and meter providers described by cfg
// and the W3C trace-context and baggage propagators.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spans, err := spanExporter(ctx, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res)),
	}

	readings, err := metricExporter(ctx, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating metric exporter: %w", err), p.Shutdown(ctx))
	}
	p.Meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(readings)),
		sdkmetric.WithResource(res),
	)

	if p.Metrics, err = NewMetrics(p.Meter, cfg.ServiceName); err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

// Shutdown flushes and stops whichever providers exist. Safe on empty
// Providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Metrics holds the instruments the service records. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	RuleRejections        metric.Int64Counter
	StoreTxDuration       metric.Float64Histogram
}

// NewMetrics registers every instrument on a meter named serviceName.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	r := registrar{meter: mp.Meter(serviceName)}

	m := &Metrics{
		ServerRequestDuration: r.histogram("http.server.request.duration", "Duration of incoming HTTP requests", "s"),
		ServerRequestTotal:    r.counter("http.server.request.total", "Incoming HTTP requests", "{request}"),
		ClientRequestDuration: r.histogram("http.client.request.duration", "Duration of calls to the board formatter", "s"),
		ClientRequestTotal:    r.counter("http.client.request.total", "Calls to the board formatter", "{request}"),
		RuleRejections:        r.counter("taskplanner.rule.rejections", "Operations rejected by a validation or lifecycle rule", "{rejection}"),
		StoreTxDuration:       r.histogram("taskplanner.store.tx.duration", "Duration of entity store transactions", "s"),
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// registrar creates instruments and collects the errors.
type registrar struct {
	meter metric.Meter
	errs  []error
}

func (r *registrar) counter(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("creating %s: %w", name, err))
	}
	return c
}

func (r *registrar) histogram(name, desc, unit string) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("creating %s: %w", name, err))
	}
	return h
}

// RecordRejection counts one rejection of operation for reason.
func (m *Metrics) RecordRejection(ctx context.Context, operation, reason string) {
	if m == nil || m.RuleRejections == nil {
		return
	}
	m.RuleRejections.Add(ctx, 1, metric.WithAttributes(
		AttrOperation.String(operation),
		AttrReason.String(reason),
	))
}

// RecordTx records how long a store transaction in mode ("update" or "view")
// took since start, labelled "success" or "error" by err.
func (m *Metrics) RecordTx(ctx context.Context, mode string, start time.Time, err error) {
	if m == nil || m.StoreTxDuration == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.StoreTxDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		AttrTxMode.String(mode),
		AttrResult.String(result),
	))
}

func spanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		host, secure, err := collector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if !secure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
	}
}

func metricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdoutmetric.New()
	case ExporterOTLP:
		host, secure, err := collector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if !secure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
	}
}

// collector splits an OTLP endpoint such as "http://otel-collector:4318"
// into the host:port the exporters expect and whether TLS is used. A bare
// host:port is accepted and treated as plain HTTP.
func collector(endpoint string) (host string, secure bool, err error) {
	if endpoint == "" {
		return "", false, errors.New("otlp exporter requires an endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint, false, nil
	}
	return u.Host, u.Scheme == "https", nil
}
