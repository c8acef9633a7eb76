// Package proto contains the connection level types of the Java edition protocol.
package proto

import (
	"fmt"
	"reflect"
	"strconv"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// PacketContext carries context information for a received
// packet or a packet that is about to be sent.
type PacketContext struct {
	Direction Direction // The direction the packet is bound to.
	State     State     // The connection state the packet was read in.
	PacketID  PacketID  // The ID of the packet, is always set.

	// Packet is the decoded packet. It is never nil
	// for a PacketContext returned by a decoder.
	Packet packet.Packet

	// The payload of the frame, packet id + data. It may be longer than
	// what the packet's fields consumed. Empty when encoding.
	Payload []byte
	// Unread is the number of payload bytes the packet's fields did not consume.
	Unread int
}

// String implements fmt.Stringer.
func (c *PacketContext) String() string {
	return fmt.Sprintf("PacketContext:direction=%s,state=%s,"+
		"PacketID=%s,PacketType=%s,Payloadlen=%d,Unread=%d",
		c.Direction, c.State, c.PacketID,
		reflect.TypeOf(c.Packet), len(c.Payload), c.Unread)
}

// Direction is the direction a packet is bound to.
//   - Receiving a packet from a server is ClientBound.
//   - Sending a packet to a server is ServerBound.
type Direction uint8

// Available packet bound directions.
const (
	ClientBound Direction = iota // A packet is bound to a client.
	ServerBound                  // A packet is bound to a server.
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == ClientBound {
		return ServerBound
	}
	return ClientBound
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case ServerBound:
		return "ServerBound"
	case ClientBound:
		return "ClientBound"
	}
	return "UnknownBound"
}

// State is a connection state.
type State int

// The states a connection can be in.
const (
	HandshakeState State = iota
	StatusState
	LoginState
	PlayState
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case HandshakeState:
		return "Handshake"
	case StatusState:
		return "Status"
	case LoginState:
		return "Login"
	case PlayState:
		return "Play"
	}
	return "UnknownState"
}

// CanTransition reports whether a connection in state s may continue in state next.
// States only move forward: Handshake to Status or Login, Login to Play.
func (s State) CanTransition(next State) bool {
	switch s {
	case HandshakeState:
		return next == StatusState || next == LoginState
	case LoginState:
		return next == PlayState
	}
	return false
}

// PacketID identifies a packet in a connection state.
type PacketID int

// String implements fmt.Stringer.
func (id PacketID) String() string {
	return fmt.Sprintf("0x%02X", int(id))
}

// Protocol is a protocol version number.
type Protocol int

// String implements fmt.Stringer.
func (p Protocol) String() string {
	return strconv.Itoa(int(p))
}

// Version is a named protocol version.
type Version struct {
	Protocol          // The protocol number of the version.
	Names    []string // The names in this protocol version (at least one).
}

// FirstName returns the name of the version this protocol was introduced in.
func (v *Version) FirstName() string {
	if len(v.Names) == 0 {
		return ""
	}
	return v.Names[0]
}

// LastName returns the name of the last version of this protocol.
func (v *Version) LastName() string {
	if len(v.Names) == 0 {
		return ""
	}
	return v.Names[len(v.Names)-1]
}

func (v *Version) String() string {
	if v.FirstName() == v.LastName() {
		return v.FirstName()
	}
	return v.FirstName() + "-" + v.LastName()
}

// PacketType is the non-pointer reflect.Type of a packet.
type PacketType reflect.Type

// TypeOf returns the non-pointer type of p.
func TypeOf(p packet.Packet) PacketType {
	t := reflect.TypeOf(p)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
