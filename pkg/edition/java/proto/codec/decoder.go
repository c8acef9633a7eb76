package codec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"

	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/edition/java/proto/util"
	"go.minekube.com/bot/pkg/util/errs"
)

// MaxFrameLength is the largest frame length a 3 byte VarInt can express.
const MaxFrameLength = 1<<21 - 1

// Decoder is a synchronized packet decoder
// for the legacy Minecraft Java edition protocol.
type Decoder struct {
	log       logr.Logger
	hexDump   bool // for debugging
	direction proto.Direction

	mu       sync.Mutex // Protects following fields and locked while reading a frame.
	rd       io.Reader  // The underlying reader.
	state    *state.Registry
	registry *state.PacketRegistry
}

// NewDecoder returns a Decoder reading frames bound to direction from r.
func NewDecoder(r io.Reader, direction proto.Direction, log logr.Logger) *Decoder {
	hexDump, _ := strconv.ParseBool(os.Getenv("HEXDUMP"))
	return &Decoder{
		rd:        r,
		direction: direction,
		state:     state.Handshake,
		registry:  state.Handshake.Direction(direction),
		log:       log.WithName("decoder"),
		hexDump:   hexDump,
	}
}

// SetState switches the packet table frames are decoded with.
func (d *Decoder) SetState(s *state.Registry) {
	d.mu.Lock()
	d.state = s
	d.registry = s.Direction(d.direction)
	d.mu.Unlock()
}

// SetReader replaces the underlying reader.
func (d *Decoder) SetReader(rd io.Reader) {
	d.mu.Lock()
	d.rd = rd
	d.mu.Unlock()
}

// Reader returns the underlying reader.
func (d *Decoder) Reader() io.Reader {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rd
}

// Decode reads and decodes the next packet from the underlying reader.
// It blocks other calls to Decode until return.
func (d *Decoder) Decode() (*proto.PacketContext, error) {
	payload, err := d.ReadFrame()
	if err != nil {
		return nil, err
	}
	return d.DecodePayload(payload)
}

// ReadFrame reads the next length-prefixed frame and returns its
// payload, the packet id followed by the packet's data.
// Empty frames are skipped.
func (d *Decoder) ReadFrame() (payload []byte, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for retries := 0; ; retries++ {
		payload, err = readVarIntFrame(d.rd)
		if err != nil {
			return nil, err
		}
		if len(payload) != 0 {
			return payload, nil
		}
		if retries > 10 {
			return nil, errors.New("got too many empty packets")
		}
	}
}

func readVarIntFrame(rd io.Reader) (payload []byte, err error) {
	length, err := util.ReadVarInt(rd)
	if err != nil {
		return nil, fmt.Errorf("error reading frame length: %w", err)
	}
	if length == 0 {
		return nil, nil // caller should skip over empty packet
	}
	if length < 0 || length > MaxFrameLength {
		return nil, errs.NewSilentErr("received invalid packet length %d", length)
	}
	payload = make([]byte, length)
	if _, err = io.ReadFull(rd, payload); err != nil {
		return nil, fmt.Errorf("error reading payload: %w", err)
	}
	return payload, nil
}

// DecodePayload decodes p, a packet id followed by the packet's data,
// with the current state's inbound packet table.
//
// Bytes the packet's fields did not consume are discarded and
// counted in PacketContext.Unread. An id that is not registered
// returns an *UnknownPacketError.
func (d *Decoder) DecodePayload(p []byte) (ctx *proto.PacketContext, err error) {
	d.mu.Lock()
	s, registry := d.state, d.registry
	d.mu.Unlock()

	ctx = &proto.PacketContext{
		Direction: d.direction,
		State:     s.State,
		Payload:   p,
	}
	payload := bytes.NewReader(p)

	packetID, err := util.ReadVarInt(payload)
	if err != nil {
		return nil, fmt.Errorf("error reading packet id: %w", err)
	}
	ctx.PacketID = proto.PacketID(packetID)

	schema, ok := registry.Schema(ctx.PacketID)
	if !ok {
		return nil, &UnknownPacketError{
			State:     s.State,
			Direction: d.direction,
			ID:        ctx.PacketID,
			Trailing:  p[len(p)-payload.Len():],
		}
	}
	if schema.Direction != d.direction {
		panic(fmt.Sprintf("%s decoder resolved %s", d.direction, schema))
	}
	ctx.Packet = schema.New()

	err = util.RecoverFunc(func() error {
		return ctx.Packet.Fields().Decode(payload)
	})
	if err != nil {
		if errors.Is(err, io.EOF) {
			// payload was too short for the packet's fields
			err = errors.Join(err, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("error decoding packet (type: %T, id: %s, state: %s, read: %d, unread: %d): %w",
			ctx.Packet, ctx.PacketID, ctx.State, len(p)-payload.Len(), payload.Len(), err)
	}

	ctx.Unread = payload.Len()
	if ctx.Unread != 0 {
		d.log.V(1).Info("discarding undecoded packet remainder",
			"type", fmt.Sprintf("%T", ctx.Packet),
			"id", ctx.PacketID,
			"unread", ctx.Unread)
	}

	if v := d.log.V(2); v.Enabled() {
		v.Info("decoded packet", "context", ctx.String())
		if d.hexDump {
			v.Info("frame", "hex", hex.Dump(p))
		}
		v.Info("packet", "dump", spew.Sdump(ctx.Packet))
	}
	return ctx, nil
}
