package client

import (
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/bot/pkg/edition/java/chunk"
	"go.minekube.com/bot/pkg/util/profile"
)

// ConnectedEvent is fired when the connection to the server was
// established and the login was started.
type ConnectedEvent struct {
	Session *Session
}

// LoginEvent is fired when the server accepted the login.
type LoginEvent struct {
	Session *Session
	Profile *profile.GameProfile
}

// JoinGameEvent is fired when the player joined the world.
type JoinGameEvent struct {
	Session  *Session
	EntityID int32
}

// ChatEvent is fired for every chat message received.
type ChatEvent struct {
	Session *Session
	Message component.Component
}

// ChunksEvent is fired with the columns of every decompressed chunk packet.
// It is fired from a decompression worker.
type ChunksEvent struct {
	Session *Session
	Columns []chunk.Column
}

// DisconnectEvent is fired when the connection closed.
type DisconnectEvent struct {
	Session *Session
	// Reason is the reason the server sent, nil if the
	// connection was closed for another reason.
	Reason component.Component
}
