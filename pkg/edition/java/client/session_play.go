package client

import (
	"fmt"

	"github.com/go-logr/logr"

	"go.minekube.com/bot/pkg/edition/java/chunk"
	"go.minekube.com/bot/pkg/edition/java/netmc"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/packet/plugin"
	"go.minekube.com/bot/pkg/util/componentutil"
)

// Distance between the eyes and the feet of a standing player.
const eyeHeight = 1.62

// playSessionHandler keeps the player in the world.
type playSessionHandler struct {
	s   *Session
	log logr.Logger
}

var _ netmc.SessionHandler = (*playSessionHandler)(nil)

func newPlaySessionHandler(s *Session) netmc.SessionHandler {
	return &playSessionHandler{s: s, log: s.log.WithName("playSession")}
}

func (h *playSessionHandler) HandlePacket(pc *proto.PacketContext) {
	switch p := pc.Packet.(type) {
	case *packet.KeepAlive:
		_ = h.s.conn.WritePacket(&packet.KeepAlive{ID: p.ID})
	case *packet.JoinGame:
		h.handleJoinGame(p)
	case *packet.UpdateHealth:
		if p.Health <= 0 {
			h.log.Info("player died, respawning")
			h.respawn()
		}
	case *packet.Respawn:
		h.respawn()
	case *packet.SpawnPosition:
		h.s.mu.Lock()
		h.s.spawn = &Spawn{X: p.X, Y: p.Y, Z: p.Z}
		h.s.mu.Unlock()
	case *packet.PlayerPosLook:
		h.handlePosLook(p)
	case *packet.Chat:
		h.handleChat(p)
	case *packet.PluginMessage:
		h.handlePluginMessage(p)
	case *packet.Disconnect:
		h.s.disconnect(p.Reason)
	case *packet.MapChunkBulk, *packet.ChunkData:
		h.handleChunks(p)
	}
}

func (h *playSessionHandler) handleJoinGame(p *packet.JoinGame) {
	h.s.conn.SetEntityID(p.EntityID)
	h.log.Info("joined game", "entityId", p.EntityID,
		"gamemode", p.Gamemode, "dimension", p.Dimension, "levelType", p.LevelType)

	settings := h.s.client.cfg.Settings
	err := h.s.conn.WritePackets(
		&packet.ClientSettings{
			Locale:       settings.Locale,
			ViewDistance: settings.ViewDistance,
			ChatFlags:    settings.ChatFlags,
			ChatColors:   settings.ChatColors,
			Difficulty:   settings.Difficulty,
			ShowCape:     settings.ShowCape,
		},
		&packet.ClientStatus{Action: packet.ClientStatusRespawn},
	)
	if err != nil {
		return
	}
	h.s.client.event.Fire(&JoinGameEvent{Session: h.s, EntityID: p.EntityID})
}

func (h *playSessionHandler) respawn() {
	_ = h.s.conn.WritePacket(&packet.ClientStatus{Action: packet.ClientStatusRespawn})
}

// handlePosLook confirms a teleport by sending the position back.
func (h *playSessionHandler) handlePosLook(p *packet.PlayerPosLook) {
	pos := Position{
		X: p.X, Y: p.Y - eyeHeight, Z: p.Z,
		Yaw: p.Yaw, Pitch: p.Pitch, OnGround: p.OnGround,
	}
	h.s.mu.Lock()
	h.s.pos = pos
	h.s.hasPos = true
	startMover := !h.s.mover && h.s.client.cfg.Movement.Enabled
	h.s.mover = h.s.mover || startMover
	h.s.mu.Unlock()

	if err := h.s.conn.WritePacket(pos.packet()); err != nil {
		return
	}
	if startMover {
		m := newMover(h.s, pos, h.s.client.cfg.Movement)
		h.s.group.Go(m.run)
	}
}

func (h *playSessionHandler) handleChat(p *packet.Chat) {
	msg, err := componentutil.Parse(p.Message)
	if err != nil {
		h.log.V(1).Info("could not parse chat message", "message", p.Message, "error", err)
		return
	}
	h.s.client.event.Fire(&ChatEvent{Session: h.s, Message: msg})
}

// handlePluginMessage answers the FML server hello
// so that Forge servers treat the client as vanilla.
func (h *playSessionHandler) handlePluginMessage(p *packet.PluginMessage) {
	switch {
	case plugin.IsForgeHandshake(p):
		if !h.s.client.cfg.Forge.ReplyHandshake {
			return
		}
		if len(p.Data) == 0 || p.Data[0] != 0x00 { // ServerHello
			return
		}
		h.log.V(1).Info("answering forge handshake", "data", p.Data)
		_ = h.s.conn.WritePacket(plugin.ForgeHandshakeReply())
	case plugin.IsRegister(p):
		h.log.V(1).Info("server registered channels", "channels", plugin.Channels(p))
	default:
		if brand, ok := plugin.Brand(p); ok {
			h.log.Info("server brand", "brand", brand)
		}
	}
}

func (h *playSessionHandler) handleChunks(p packet.Packet) {
	d := h.s.client.decompressor
	if d == nil {
		return
	}
	d.Decompress(h.s.Context(), p, func(columns []chunk.Column, err error) {
		if err != nil {
			if h.s.Context().Err() == nil {
				h.s.fail(fmt.Errorf("error decompressing chunks: %w", err))
			}
			return
		}
		h.log.V(1).Info("decompressed chunks", "columns", len(columns))
		h.s.client.event.Fire(&ChunksEvent{Session: h.s, Columns: columns})
	})
}

func (h *playSessionHandler) Disconnected() { h.s.disconnected() }
func (h *playSessionHandler) Activated()    {}
func (h *playSessionHandler) Deactivated()  {}
