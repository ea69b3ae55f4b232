package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type streamStart struct {
	endpoint string
	start    time.Time
}

type StreamMetrics struct {
	openStreamsGauge metric.Int64ObservableGauge
	openStreams      *atomic.Int64

	streamTimeHistogram  metric.Float64Histogram
	streamStartTimeCache *ttlcache.Cache[string, streamStart]
	opts                 metric.MeasurementOption
}

// NewStreamMetrics initializes metrics related to event streams
func NewStreamMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*StreamMetrics, error) {
	openStreams := new(atomic.Int64)
	openStreamsGauge, err := meter.Int64ObservableGauge(
		"gateway.OpenStreams",
		metric.WithInt64Callback(func(context context.Context, result metric.Int64Observer) error {
			result.Observe(openStreams.Load(), opts)
			return nil
		}),
		metric.WithDescription("Number of event streams currently open"),
	)
	if err != nil {
		return nil, err
	}

	streamTimeHistogram, err := meter.Float64Histogram(
		"gateway.StreamTime",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of event streams"),
	)
	if err != nil {
		return nil, err
	}

	return &StreamMetrics{
		openStreamsGauge:    openStreamsGauge,
		openStreams:         openStreams,
		streamTimeHistogram: streamTimeHistogram,
		streamStartTimeCache: ttlcache.New(
			ttlcache.WithTTL[string, streamStart](ttlcache.NoTTL),
		),
		opts: opts,
	}, nil
}

// StartStream records an open stream until the matching EndStream. Entries
// never expire, monitor streams stay open for as long as the caller listens.
func (m *StreamMetrics) StartStream(streamID string, endpoint string) {
	m.openStreams.Add(1)
	m.streamStartTimeCache.Set(streamID, streamStart{
		endpoint: endpoint,
		start:    time.Now(),
	}, ttlcache.NoTTL)
}

func (m *StreamMetrics) EndStream(streamID string) {
	item, ok := m.streamStartTimeCache.GetAndDelete(streamID)
	if !ok {
		log.Warn().Msgf("Stream start time with ID %s not found", streamID)
		return
	}
	m.openStreams.Add(-1)

	m.streamTimeHistogram.Record(
		context.Background(),
		time.Since(item.Value().start).Seconds(),
		m.opts,
		metric.WithAttributes(attribute.String("endpoint", item.Value().endpoint)),
	)
}

func (m *StreamMetrics) OpenStreams() int64 {
	return m.openStreams.Load()
}
