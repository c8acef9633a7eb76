// Package plugin contains helpers for plugin message channels.
package plugin

import (
	"bytes"
	"strings"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// Legacy channel names as used by 1.7 servers.
const (
	BrandChannel          = "MC|Brand"
	RegisterChannel       = "REGISTER"
	UnregisterChannel     = "UNREGISTER"
	ForgeHandshakeChannel = "FML|HS"
)

// IsRegister reports whether the message registers channels.
func IsRegister(p *packet.PluginMessage) bool {
	return p != nil && p.Channel == RegisterChannel
}

// IsUnregister reports whether the message unregisters channels.
func IsUnregister(p *packet.PluginMessage) bool {
	return p != nil && p.Channel == UnregisterChannel
}

// Channels returns the channel names of a register or unregister message.
func Channels(p *packet.PluginMessage) []string {
	var channels []string
	for _, c := range bytes.Split(p.Data, []byte{0}) {
		if len(c) != 0 {
			channels = append(channels, string(c))
		}
	}
	return channels
}

// Brand returns the server brand of a brand message.
// 1.7 servers send it without a length prefix.
func Brand(p *packet.PluginMessage) (string, bool) {
	if p == nil || p.Channel != BrandChannel {
		return "", false
	}
	return strings.TrimSpace(string(p.Data)), true
}

// ForgeHandshakeReply returns the message answering a server's
// Forge handshake start with a vanilla client hello.
func ForgeHandshakeReply() *packet.PluginMessage {
	return &packet.PluginMessage{Channel: ForgeHandshakeChannel, Data: []byte{0x00}}
}

// IsForgeHandshake reports whether the message belongs to the Forge handshake.
func IsForgeHandshake(p *packet.PluginMessage) bool {
	return p != nil && p.Channel == ForgeHandshakeChannel
}
