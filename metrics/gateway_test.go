package metrics_test

import (
	"context"
	"testing"

	"github.com/sprintertech/sprinter-gateway/metrics"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type GatewayMetricsTestSuite struct {
	suite.Suite

	reader  *sdkmetric.ManualReader
	metrics *metrics.GatewayMetrics
}

func TestRunGatewayMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayMetricsTestSuite))
}

func (s *GatewayMetricsTestSuite) SetupTest() {
	s.reader = sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))

	m, err := metrics.NewGatewayMetrics(context.Background(), mp.Meter("test"), "test", "gateway-1", "0.0.1", func() int { return 3 })
	s.Nil(err)
	s.metrics = m
}

func (s *GatewayMetricsTestSuite) collect() map[string]metricdata.Aggregation {
	rm := metricdata.ResourceMetrics{}
	s.Nil(s.reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sum(data metricdata.Aggregation) int64 {
	total := int64(0)
	for _, dp := range data.(metricdata.Sum[int64]).DataPoints {
		total += dp.Value
	}
	return total
}

func (s *GatewayMetricsTestSuite) Test_Counters() {
	s.metrics.TrackPayment(context.Background(), "settled")
	s.metrics.TrackPayment(context.Background(), "required")
	s.metrics.TrackAdmission(context.Background(), "agent", "allowed")

	data := s.collect()

	s.Equal(int64(2), sum(data["gateway.Payments"]))
	s.Equal(int64(1), sum(data["gateway.Admissions"]))
}

func (s *GatewayMetricsTestSuite) Test_Gauges() {
	data := s.collect()

	pending := data["gateway.PendingRequirements"].(metricdata.Gauge[int64])
	s.Equal(int64(3), pending.DataPoints[0].Value)
	s.Contains(data, "gateway.StartTimeSeconds")
}

func (s *GatewayMetricsTestSuite) Test_StreamDuration() {
	s.metrics.StartStream("stream-1", "agent")
	s.Equal(int64(1), s.metrics.OpenStreams())

	s.metrics.EndStream("stream-1")
	s.metrics.EndStream("unknown")
	s.Equal(int64(0), s.metrics.OpenStreams())

	histogram := s.collect()["gateway.StreamTime"].(metricdata.Histogram[float64])
	s.Len(histogram.DataPoints, 1)
	s.Equal(uint64(1), histogram.DataPoints[0].Count)
}
