package client

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"go.minekube.com/bot/pkg/edition/java/auth"
	"go.minekube.com/bot/pkg/edition/java/netmc"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/util/profile"
)

// loginSessionHandler answers the encryption request and
// switches to play when the server accepts the login.
type loginSessionHandler struct {
	s   *Session
	log logr.Logger
}

var _ netmc.SessionHandler = (*loginSessionHandler)(nil)

func newLoginSessionHandler(s *Session) netmc.SessionHandler {
	return &loginSessionHandler{s: s, log: s.log.WithName("loginSession")}
}

func (h *loginSessionHandler) HandlePacket(pc *proto.PacketContext) {
	switch p := pc.Packet.(type) {
	case *packet.EncryptionRequest:
		h.handleEncryptionRequest(p)
	case *packet.LoginSuccess:
		h.handleLoginSuccess(p)
	case *packet.Disconnect:
		h.s.disconnect(p.Reason)
	default:
		h.log.V(1).Info("received unexpected packet while logging in",
			"packetType", reflect.TypeOf(p))
	}
}

func (h *loginSessionHandler) handleEncryptionRequest(p *packet.EncryptionRequest) {
	c := h.s.client
	res, secret, err := auth.RespondEncryption(c.rand, p)
	if err != nil {
		h.s.fail(fmt.Errorf("error responding to encryption request: %w", err))
		return
	}
	// The response is the last packet sent in plain text.
	if err = h.s.conn.WritePacket(res); err != nil {
		h.s.fail(fmt.Errorf("error writing encryption response: %w", err))
		return
	}
	if err = h.s.conn.EnableEncryption(secret); err != nil {
		h.s.fail(fmt.Errorf("error enabling encryption: %w", err))
		return
	}

	if !c.cfg.Auth.OnlineMode || p.ServerID == auth.OfflineServerID {
		h.log.V(1).Info("skipping session server join",
			"onlineMode", c.cfg.Auth.OnlineMode, "serverId", p.ServerID)
		return
	}
	err = c.auth.Join(h.s.Context(), auth.JoinRequest{
		AccessToken:     c.cfg.Auth.AccessToken,
		SelectedProfile: c.profileID,
		ServerID:        auth.GenerateServerID(p.ServerID, secret, p.PublicKey),
	})
	if err != nil {
		h.s.fail(fmt.Errorf("error joining session server: %w", err))
		return
	}
	h.log.V(1).Info("joined session server")
}

func (h *loginSessionHandler) handleLoginSuccess(p *packet.LoginSuccess) {
	gp, err := profile.Parse(p.UUID, p.Username)
	if err != nil {
		h.s.fail(err)
		return
	}
	if err = h.s.conn.SetState(state.Play); err != nil {
		h.s.fail(err)
		return
	}
	h.s.setProfile(gp)
	h.log.Info("logged in", "username", gp.Name, "uuid", gp.Id)
	h.s.conn.SetSessionHandler(newPlaySessionHandler(h.s))
	h.s.client.event.Fire(&LoginEvent{Session: h.s, Profile: gp})
}

func (h *loginSessionHandler) Disconnected() { h.s.disconnected() }
func (h *loginSessionHandler) Activated()    {}
func (h *loginSessionHandler) Deactivated()  {}
