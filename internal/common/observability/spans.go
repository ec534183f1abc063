package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"loanos-client/internal/common/logger"
)

// spanLogger writes every finished span to the log. Failed spans are logged
// at warn level, the rest at debug.
type spanLogger struct {
	log logger.Logger
}

func (p spanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]interface{}{
		"span":     s.Name(),
		"traceId":  s.SpanContext().TraceID().String(),
		"duration": s.EndTime().Sub(s.StartTime()).String(),
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}

	if st := s.Status(); st.Code == codes.Error {
		fields["error"] = st.Description
		p.log.Warn("span failed", fields)
		return
	}
	p.log.Debug("span finished", fields)
}

func (p spanLogger) Shutdown(context.Context) error { return nil }

func (p spanLogger) ForceFlush(context.Context) error { return nil }

func newTracerProvider(serviceName string, log logger.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSpanProcessor(spanLogger{log: log}),
	)
}
