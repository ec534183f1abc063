package observability

import (
	"context"
	"time"

	"loanos-client/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "loanos-client"

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	actionCounter  otelmetric.Int64Counter
	actionDuration otelmetric.Float64Histogram
}

// New registers an otel meter provider backed by the prometheus exporter, so
// view action metrics show up next to the promauto ones on /metrics. Spans go
// to log. When the exporter cannot be built only tracing is set up.
func New(serviceName string, log logger.Logger) *Observability {
	tracerProvider := newTracerProvider(serviceName, log)
	tracer := tracerProvider.Tracer(instrumentationName)

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{tracerProvider: tracerProvider, tracer: tracer}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	actionCounter, _ := meter.Int64Counter(
		"view.actions.processed",
		otelmetric.WithDescription("Number of view actions processed"),
	)

	actionDuration, _ := meter.Float64Histogram(
		"view.actions.duration",
		otelmetric.WithDescription("View action duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		tracerProvider: tracerProvider,
		meter:          meter,
		tracer:         tracer,
		actionCounter:  actionCounter,
		actionDuration: actionDuration,
	}
}

// Noop returns an Observability that records nothing.
func Noop() *Observability {
	return &Observability{tracer: otel.Tracer(instrumentationName)}
}

// StartSpan opens a client span. The caller ends it with EndSpan.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := o.tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (o *Observability) RecordActionProcessed(ctx context.Context, action, status string) {
	if o.actionCounter != nil {
		o.actionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("action", action),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordActionDuration(ctx context.Context, action string, duration time.Duration, status string) {
	if o.actionDuration != nil {
		o.actionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("action", action),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
