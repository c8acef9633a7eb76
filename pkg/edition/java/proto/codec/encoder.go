package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/go-logr/logr"

	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/edition/java/proto/util"
)

// Encoder is a synchronized packet encoder.
type Encoder struct {
	direction proto.Direction
	log       logr.Logger
	hexDump   bool // for debugging

	mu       sync.Mutex // Protects following fields
	wr       io.Writer  // the underlying writer to write successfully encoded packets to
	state    *state.Registry
	registry *state.PacketRegistry
}

// NewEncoder returns an Encoder writing frames bound to direction to w.
func NewEncoder(w io.Writer, direction proto.Direction, log logr.Logger) *Encoder {
	hexDump, _ := strconv.ParseBool(os.Getenv("HEXDUMP"))
	return &Encoder{
		log:       log.WithName("encoder"),
		hexDump:   hexDump,
		wr:        w,
		direction: direction,
		state:     state.Handshake,
		registry:  state.Handshake.Direction(direction),
	}
}

// Direction returns the encoder's direction.
func (e *Encoder) Direction() proto.Direction {
	return e.direction
}

// WritePacket encodes packet into a frame and writes it to the underlying writer.
func (e *Encoder) WritePacket(packet packet.Packet) (n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	packetID, found := e.registry.PacketID(packet)
	if !found {
		if _, opposite := e.state.Direction(e.direction.Opposite()).PacketID(packet); opposite {
			return 0, fmt.Errorf("%w: %T is not %s in state %s",
				ErrWrongDirection, packet, e.direction, e.state.State)
		}
		return 0, fmt.Errorf("packet id for type %T not registered in the %s %s state registry",
			packet, e.direction, e.state.State)
	}

	buf, release := getBuf()
	defer release()

	_ = util.WriteVarInt(buf, int(packetID))
	if err = util.RecoverFunc(func() error {
		return packet.Fields().Encode(buf)
	}); err != nil {
		return 0, fmt.Errorf("error encoding %T: %w", packet, err)
	}

	if v := e.log.V(2); v.Enabled() {
		ctx := &proto.PacketContext{
			Direction: e.direction,
			State:     e.state.State,
			PacketID:  packetID,
			Packet:    packet,
		}
		v.Info("encoded packet", "context", ctx.String(), "bytes", buf.Len())
		if e.hexDump {
			v.Info("frame", "hex", hex.Dump(buf.Bytes()))
		}
	}

	return e.writeBuf(buf) // packet id + data
}

// Write frames payload and writes it to the underlying writer.
// The payload must start with the packet's id VarInt followed by the packet's data.
func (e *Encoder) Write(payload []byte) (n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writeBuf(bytes.NewBuffer(payload))
}

// see https://wiki.vg/Protocol#Packet_format for details
func (e *Encoder) writeBuf(payload *bytes.Buffer) (n int, err error) {
	var length [util.MaxVarIntLen]byte
	lw := bytes.NewBuffer(length[:0])
	_ = util.WriteVarInt(lw, payload.Len())
	// Single write so a frame is never interleaved on the wire.
	frame := make([]byte, 0, lw.Len()+payload.Len())
	frame = append(frame, lw.Bytes()...)
	frame = append(frame, payload.Bytes()...)
	return e.wr.Write(frame)
}

// SetState switches the packet table frames are encoded with.
func (e *Encoder) SetState(s *state.Registry) {
	e.mu.Lock()
	e.state = s
	e.registry = s.Direction(e.direction)
	e.mu.Unlock()
}

// SetWriter replaces the underlying writer.
func (e *Encoder) SetWriter(w io.Writer) {
	e.mu.Lock()
	e.wr = w
	e.mu.Unlock()
}

// Writer returns the underlying writer.
func (e *Encoder) Writer() io.Writer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wr
}

// Sync locks the encoder while running fn,
// making sure no write calls are run during this call.
func (e *Encoder) Sync(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn()
}
