package netmc

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
)

// Metrics counts the packets and bytes of a connection.
type Metrics struct {
	Decoded      atomic.Uint64 // packets read
	Encoded      atomic.Uint64 // packets written
	BytesRead    atomic.Uint64 // frame payload bytes read
	BytesWritten atomic.Uint64 // frame bytes written
}

func (m *Metrics) packetDecoded(payloadLen int) {
	m.Decoded.Inc()
	m.BytesRead.Add(uint64(payloadLen))
}

func (m *Metrics) packetEncoded(frameLen int) {
	m.Encoded.Inc()
	m.BytesWritten.Add(uint64(frameLen))
}

// Register exports the counters as observable instruments of meter.
// The returned registration must be unregistered when the metrics are dropped.
func (m *Metrics) Register(meter metric.Meter, attrs ...attribute.KeyValue) (metric.Registration, error) {
	packets, err := meter.Int64ObservableCounter("bot.conn.packets",
		metric.WithDescription("Number of packets read and written"),
		metric.WithUnit("{packet}"))
	if err != nil {
		return nil, err
	}
	byteCount, err := meter.Int64ObservableCounter("bot.conn.bytes",
		metric.WithDescription("Number of frame bytes read and written"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}
	attrs = attrs[:len(attrs):len(attrs)]
	in := metric.WithAttributes(append(attrs, attribute.String("direction", "in"))...)
	out := metric.WithAttributes(append(attrs, attribute.String("direction", "out"))...)
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(packets, int64(m.Decoded.Load()), in)
		o.ObserveInt64(packets, int64(m.Encoded.Load()), out)
		o.ObserveInt64(byteCount, int64(m.BytesRead.Load()), in)
		o.ObserveInt64(byteCount, int64(m.BytesWritten.Load()), out)
		return nil
	}, packets, byteCount)
}
