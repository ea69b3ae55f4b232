package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type GatewayMetrics struct {
	*HostMetrics
	*StreamMetrics

	opts             metric.MeasurementOption
	admissionCounter metric.Int64Counter
	paymentCounter   metric.Int64Counter
	pendingGauge     metric.Int64ObservableGauge
}

// NewGatewayMetrics creates an instance of GatewayMetrics. pending reports the
// number of outstanding payment requirements and may be nil.
func NewGatewayMetrics(ctx context.Context, meter metric.Meter, env, instance, version string, pending func() int) (*GatewayMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("env", env),
		attribute.String("instance", instance),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}
	streamMetrics, err := NewStreamMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	admissionCounter, err := meter.Int64Counter(
		"gateway.Admissions",
		metric.WithDescription("Admission decisions by endpoint and outcome"),
	)
	if err != nil {
		return nil, err
	}
	paymentCounter, err := meter.Int64Counter(
		"gateway.Payments",
		metric.WithDescription("Payment checks by outcome"),
	)
	if err != nil {
		return nil, err
	}
	pendingGauge, err := meter.Int64ObservableGauge(
		"gateway.PendingRequirements",
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			if pending != nil {
				result.Observe(int64(pending()), opts)
			}
			return nil
		}),
		metric.WithDescription("Issued payment requirements not yet claimed or expired"),
	)
	if err != nil {
		return nil, err
	}

	return &GatewayMetrics{
		HostMetrics:      hostMetrics,
		StreamMetrics:    streamMetrics,
		opts:             opts,
		admissionCounter: admissionCounter,
		paymentCounter:   paymentCounter,
		pendingGauge:     pendingGauge,
	}, nil
}

func (m *GatewayMetrics) TrackAdmission(ctx context.Context, endpoint string, outcome string) {
	m.admissionCounter.Add(ctx, 1, m.opts, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("outcome", outcome),
	))
}

func (m *GatewayMetrics) TrackPayment(ctx context.Context, outcome string) {
	m.paymentCounter.Add(ctx, 1, m.opts, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
