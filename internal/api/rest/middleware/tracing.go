package middleware

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gofiber/fiber/v2"
)

// InitTracer installs a global tracer provider exporting over OTLP/HTTP.
// An empty endpoint falls back to the exporter's environment defaults.
func InitTracer(ctx context.Context, serviceName, endpoint, env string) (*sdktrace.TracerProvider, error) {
	var opts []otlptracehttp.Option
	if endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
		),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			attribute.String("environment", env),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// Tracing starts a server span per request and hands its context to
// handlers through UserContext.
func Tracing(name string) fiber.Handler {
	tracer := otel.Tracer(name)
	return func(ctx *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier(http.Header{})
		ctx.Request().Header.VisitAll(func(k, v []byte) {
			carrier.Set(string(k), string(v))
		})
		parent := otel.GetTextMapPropagator().Extract(ctx.UserContext(), carrier)

		spanCtx, span := tracer.Start(parent, ctx.Method()+" "+ctx.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(ctx.Method()),
				semconv.URLPath(ctx.Path()),
			))
		defer span.End()
		ctx.SetUserContext(spanCtx)

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		span.SetAttributes(
			semconv.HTTPRoute(ctx.Route().Path),
			semconv.HTTPResponseStatusCode(status),
		)
		if err != nil {
			span.RecordError(err)
		}
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}
