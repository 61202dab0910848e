// Package telemetry initialises tracing and structured logging.
//
// Call SetupTracer once at the top of main(), defer the returned shutdown
// function, and every span started through Tracer carries valid trace and
// span ids. Spans are not exported anywhere; the ids exist so log lines and
// order event rows written by the same operation can be matched.
//
//	shutdown, err := telemetry.SetupTracer("storefront")
//	if err != nil { ... }
//	defer shutdown(context.Background())
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jcmexdev/storefront"

// ShutdownFunc must be called before the process exits.
type ShutdownFunc func(ctx context.Context) error

// SetupTracer registers a global TracerProvider that samples every span.
func SetupTracer(serviceName string) (ShutdownFunc, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: error shutting down TracerProvider: %w", err)
		}
		return nil
	}
	return shutdown, nil
}

// Tracer returns the module's tracer from the global provider. Before
// SetupTracer runs it is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
