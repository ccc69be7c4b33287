package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "tictactoe-bot"

// Telemetry bundles the tracer and meter used by the bot.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	shutdown []func(ctx context.Context) error
}

// New builds exporters writing to rotating files. Signals without a file
// configured fall back to noop providers.
func New(ctx context.Context, conf config.Telemetry) (*Telemetry, error) {
	tel := &Telemetry{
		Tracer: tracenoop.NewTracerProvider().Tracer(serviceName),
		Meter:  metricnoop.NewMeterProvider().Meter(serviceName),
	}

	if conf.MetricsFile == "" && conf.TracesFile == "" {
		return tel, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if conf.TracesFile != "" {
		traceFile := rotatingFile(conf.TracesFile)

		traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
		)
		tel.Tracer = tp.Tracer(serviceName)
		tel.shutdown = append(tel.shutdown, tp.Shutdown, closer(traceFile))
	}

	if conf.MetricsFile != "" {
		metricsFile := rotatingFile(conf.MetricsFile)

		metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
		if err != nil {
			return nil, fmt.Errorf("failed to create metric exporter: %w", err)
		}

		interval := conf.Interval
		if interval <= 0 {
			interval = 10 * time.Second
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(interval))),
			sdkmetric.WithResource(res),
		)
		tel.Meter = mp.Meter(serviceName)
		tel.shutdown = append(tel.shutdown, mp.Shutdown, closer(metricsFile))
	}

	return tel, nil
}

// Shutdown flushes the exporters and closes their files.
func (that *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range that.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func closer(c io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return c.Close()
	}
}
