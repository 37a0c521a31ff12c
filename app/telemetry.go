package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ysip"

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	PrometheusEnabled bool
	SampleRate        float64
	ChainID           string
	Version           string
}

// Telemetry owns the OpenTelemetry tracer and meter providers.
type Telemetry struct {
	config    TelemetryConfig
	tracer    *sdktrace.TracerProvider
	meter     metric.Meter
	shutdowns []func(context.Context) error
}

// InitTelemetry initializes OpenTelemetry tracing and metrics. A disabled
// config yields a Telemetry whose meter records nothing.
func InitTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	tel := &Telemetry{config: cfg}
	if !cfg.Enabled {
		return tel, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.Version),
			attribute.String("chain.id", cfg.ChainID),
		),
	)
	if err != nil {
		return nil, err
	}

	if cfg.OTLPEndpoint != "" {
		if err := tel.initTracing(res); err != nil {
			return nil, err
		}
	}
	if err := tel.initMetrics(res); err != nil {
		return nil, err
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP tracing
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if _, err := url.Parse(t.config.OTLPEndpoint); err != nil {
		return err
	}

	endpoint := strings.TrimPrefix(t.config.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.tracer = tp
	t.shutdowns = append(t.shutdowns, tp.Shutdown)
	return nil
}

// initMetrics exports OpenTelemetry instruments through the default
// Prometheus registry.
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	if !t.config.PrometheusEnabled {
		return nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return err
	}
	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)
	t.meter = provider.Meter(serviceName)
	t.shutdowns = append(t.shutdowns, provider.Shutdown)
	return nil
}

// Meter returns the configured meter, or a no-op meter.
func (t *Telemetry) Meter() metric.Meter {
	if t == nil || t.meter == nil {
		return noop.NewMeterProvider().Meter(serviceName)
	}
	return t.meter
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	for _, shutdown := range t.shutdowns {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ContractTelemetry records contract entry point calls.
type ContractTelemetry struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	depth    metric.Int64Histogram
}

// NewContractTelemetry creates the contract call instruments on meter.
func NewContractTelemetry(meter metric.Meter) (*ContractTelemetry, error) {
	calls, err := meter.Int64Counter(
		"ysip.contract.calls",
		metric.WithDescription("Contract entry point calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"ysip.contract.call_time",
		metric.WithDescription("Contract entry point execution time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	depth, err := meter.Int64Histogram(
		"ysip.contract.call_depth",
		metric.WithDescription("Nesting depth of contract calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &ContractTelemetry{calls: calls, duration: duration, depth: depth}, nil
}

// RecordCall records one entry point call.
func (ct *ContractTelemetry) RecordCall(ctx context.Context, code, entry string, depth int, d time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("contract.code", code),
		attribute.String("contract.entry", entry),
		attribute.String("contract.status", status),
	)
	ct.calls.Add(ctx, 1, attrs)
	ct.duration.Record(ctx, float64(d.Microseconds())/1000, attrs)
	ct.depth.Record(ctx, int64(depth), attrs)
}

// traceContractCall starts a span for a contract entry point. The returned
// func ends the span and records err on it.
func traceContractCall(ctx sdk.Context, code, entry, contractAddr string, depth int) (sdk.Context, func(error)) {
	tracer := otel.Tracer(serviceName)
	goCtx, span := tracer.Start(ctx.Context(), "contract."+entry, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String("contract.code", code),
		attribute.String("contract.address", contractAddr),
		attribute.Int("contract.depth", depth),
		attribute.Int64("block.height", ctx.BlockHeight()),
	)

	return ctx.WithContext(goCtx), func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
