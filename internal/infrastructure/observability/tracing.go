package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracing wires the OTLP HTTP exporter and installs the global tracer
// provider. Tracing is best effort: when the exporter cannot be built the
// gateway runs without it.
func InitTracing(serviceName string) func(context.Context) error {
	exporter, err := otlptracehttp.New(context.Background())
	if err != nil {
		slog.Warn("failed to create OTLP exporter, tracing disabled", "error", err)
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	slog.Info("tracing initialized", "service", serviceName)
	return tp.Shutdown
}
