package codec

import (
	"errors"
	"fmt"

	"go.minekube.com/bot/pkg/edition/java/proto"
)

var (
	// ErrUnknownPacketID is wrapped by UnknownPacketError.
	ErrUnknownPacketID = errors.New("unknown packet id")
	// ErrWrongDirection is returned when encoding a packet that is
	// only registered for the opposite direction of the encoder.
	ErrWrongDirection = errors.New("packet registered for opposite direction")
)

// UnknownPacketError is returned by the Decoder when a frame's
// packet id is not registered in the current state.
type UnknownPacketError struct {
	State     proto.State
	Direction proto.Direction
	ID        proto.PacketID
	Trailing  []byte // The frame's bytes after the packet id.
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("%s: %s in state %s (%s, %d trailing bytes)",
		ErrUnknownPacketID, e.ID, e.State, e.Direction, len(e.Trailing))
}

func (e *UnknownPacketError) Unwrap() error { return ErrUnknownPacketID }
