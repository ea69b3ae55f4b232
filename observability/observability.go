package observability

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ConfigureLogger sets the global log level and output. Console output is
// human readable, anything else is JSON.
func ConfigureLogger(level zerolog.Level, out io.Writer, console bool) {
	zerolog.SetGlobalLevel(level)
	if console {
		out = zerolog.ConsoleWriter{Out: out}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// InitMetricProvider exports metrics to the OTLP collector at collectorURL.
// Without a collector the provider records nothing.
func InitMetricProvider(ctx context.Context, collectorURL string) (*sdkmetric.MeterProvider, error) {
	if collectorURL == "" {
		return sdkmetric.NewMeterProvider(), nil
	}

	u, err := url.Parse(collectorURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collector url: %w", err)
	}

	options := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(u.Host),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if u.Scheme == "http" {
		options = append(options, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, options...)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	), nil
}
