// Package state holds the packet tables of protocol version 5 (Minecraft 1.7.6 - 1.7.10)
// for every connection state.
package state

import (
	"go.minekube.com/bot/pkg/edition/java/proto"
	p "go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// The registries storing the packets for a connection state.
var (
	Handshake = NewRegistry(proto.HandshakeState,
		sb[p.Handshake](0x00),
	)

	Status = NewRegistry(proto.StatusState,
		sb[p.StatusRequest](0x00),
		sb[p.StatusPing](0x01),

		cb[p.StatusResponse](0x00),
		cb[p.StatusPing](0x01),
	)

	Login = NewRegistry(proto.LoginState,
		sb[p.LoginStart](0x00),
		sb[p.EncryptionResponse](0x01),

		cb[p.Disconnect](0x00),
		cb[p.EncryptionRequest](0x01),
		cb[p.LoginSuccess](0x02),
	)
)

// ByState returns the registry of state s.
func ByState(s proto.State) *Registry {
	switch s {
	case proto.StatusState:
		return Status
	case proto.LoginState:
		return Login
	case proto.PlayState:
		return Play
	default:
		return Handshake
	}
}
