package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	commandCounter  otelmetric.Int64Counter
	commandDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	commandCounter, _ := meter.Int64Counter(
		"chat.commands.processed",
		otelmetric.WithDescription("Number of chat commands processed"),
	)

	commandDuration, _ := meter.Float64Histogram(
		"chat.commands.duration",
		otelmetric.WithDescription("Chat command processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		commandCounter:  commandCounter,
		commandDuration: commandDuration,
	}
}

func (o *Observability) RecordCommandProcessed(ctx context.Context, status string) {
	if o.commandCounter != nil {
		o.commandCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordCommandDuration(ctx context.Context, duration time.Duration, status string) {
	if o.commandDuration != nil {
		o.commandDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
