package netmc

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go.minekube.com/bot/pkg/edition/java/proto"
)

// PacketInterceptor observes decoded packets before they are handled.
type PacketInterceptor interface {
	InterceptPacket(ctx context.Context, pc *proto.PacketContext)
}

// telemetryInterceptor implements PacketInterceptor for OpenTelemetry
type telemetryInterceptor struct {
	log    logr.Logger
	tracer trace.Tracer
}

// NewTelemetryInterceptor creates a PacketInterceptor recording a span per packet.
func NewTelemetryInterceptor(log logr.Logger) PacketInterceptor {
	return &telemetryInterceptor{
		log:    log,
		tracer: otel.Tracer("netmc"),
	}
}

func (t *telemetryInterceptor) InterceptPacket(ctx context.Context, pc *proto.PacketContext) {
	if pc == nil {
		return
	}
	_, span := t.tracer.Start(ctx, "ReadPacket",
		trace.WithAttributes(
			attribute.String("packet.id", pc.PacketID.String()),
			attribute.String("packet.type", fmt.Sprintf("%T", pc.Packet)),
			attribute.String("packet.state", pc.State.String()),
			attribute.Int("packet.size", len(pc.Payload)),
			attribute.Int("packet.unread", pc.Unread),
		))
	defer span.End()

	// Add detailed packet dump in debug mode
	if t.log.V(1).Enabled() {
		span.SetAttributes(attribute.String("packet.dump", spew.Sdump(pc.Packet)))
	}
}
