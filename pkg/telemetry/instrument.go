package telemetry

import (
	"context"
	"sync"

	"github.com/robinbraemer/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"go.minekube.com/bot/pkg/edition/java/client"
	"go.minekube.com/bot/pkg/util/componentutil"
)

// Instrumentation records spans and metrics for client events.
type Instrumentation struct {
	tracer trace.Tracer

	logins      metric.Int64Counter
	disconnects metric.Int64Counter
	chats       metric.Int64Counter
	chunks      metric.Int64Counter

	online   atomic.Int64
	sessions sync.Map // *client.Session logged in
}

// New creates the instruments with the global providers.
func New() (*Instrumentation, error) {
	meter := otel.Meter("bot")
	i := &Instrumentation{tracer: otel.Tracer("bot")}
	var err error
	if i.logins, err = meter.Int64Counter("bot.logins",
		metric.WithDescription("Number of successful logins")); err != nil {
		return nil, err
	}
	if i.disconnects, err = meter.Int64Counter("bot.disconnects",
		metric.WithDescription("Number of closed sessions")); err != nil {
		return nil, err
	}
	if i.chats, err = meter.Int64Counter("bot.chat.messages",
		metric.WithDescription("Number of chat messages received")); err != nil {
		return nil, err
	}
	if i.chunks, err = meter.Int64Counter("bot.chunk.columns",
		metric.WithDescription("Number of chunk columns decompressed")); err != nil {
		return nil, err
	}
	_, err = meter.Int64ObservableGauge("bot.sessions.online",
		metric.WithDescription("Number of sessions logged in"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(i.online.Load())
			return nil
		}))
	if err != nil {
		return nil, err
	}
	return i, nil
}

// Online returns the number of sessions logged in.
func (i *Instrumentation) Online() int64 { return i.online.Load() }

// Subscribe records the client events of mgr until unsubscribe is called.
func (i *Instrumentation) Subscribe(mgr event.Manager) (unsubscribe func()) {
	ctx := context.Background()
	unsubs := []func(){
		event.Subscribe(mgr, 0, func(e *client.LoginEvent) {
			_, span := i.tracer.Start(ctx, "bot.Login", trace.WithAttributes(
				attribute.String("username", e.Profile.Name),
				attribute.String("uuid", e.Profile.Id.String()),
			))
			defer span.End()
			if _, loaded := i.sessions.LoadOrStore(e.Session, struct{}{}); !loaded {
				i.online.Inc()
			}
			i.logins.Add(ctx, 1)
		}),
		event.Subscribe(mgr, 0, func(e *client.DisconnectEvent) {
			attrs := []attribute.KeyValue{attribute.Bool("kicked", e.Reason != nil)}
			if e.Reason != nil {
				attrs = append(attrs, attribute.String("reason", componentutil.PlainText(e.Reason)))
			}
			_, span := i.tracer.Start(ctx, "bot.Disconnect", trace.WithAttributes(attrs...))
			defer span.End()
			if _, loaded := i.sessions.LoadAndDelete(e.Session); loaded {
				i.online.Dec()
			}
			i.disconnects.Add(ctx, 1, metric.WithAttributes(attrs[0]))
		}),
		event.Subscribe(mgr, 0, func(*client.ChatEvent) {
			i.chats.Add(ctx, 1)
		}),
		event.Subscribe(mgr, 0, func(e *client.ChunksEvent) {
			i.chunks.Add(ctx, int64(len(e.Columns)))
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
