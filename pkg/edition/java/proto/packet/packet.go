// Package packet contains the packets of protocol version 5 (Minecraft 1.7.6 - 1.7.10).
//
// Packet is a closed set: only types declared in this package implement it,
// so a type switch over a decoded Packet covers every packet there is.
package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// Packet is a protocol packet.
type Packet interface {
	// Fields returns the packet's wire fields in order,
	// bound to the packet's values.
	Fields() field.List
	sealed()
}

// base seals the Packet interface.
type base struct{}

func (base) sealed() {}
