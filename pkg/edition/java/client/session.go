package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"go.minekube.com/common/minecraft/component"
	"golang.org/x/sync/errgroup"

	"go.minekube.com/bot/pkg/edition/java/netmc"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/util/componentutil"
	"go.minekube.com/bot/pkg/util/profile"
)

// DisconnectError is the error of a session the server closed with a reason.
type DisconnectError struct {
	Reason component.Component
}

func (e *DisconnectError) Error() string {
	return "disconnected by server: " + componentutil.PlainText(e.Reason)
}

// ErrConnectionLost is the error of a session whose connection broke.
var ErrConnectionLost = errors.New("connection lost")

// Session is a connection of the client to a server.
type Session struct {
	client *Client
	conn   *netmc.Conn
	log    logr.Logger
	group  *errgroup.Group

	mu      sync.Mutex // protects following fields
	profile *profile.GameProfile
	pos     Position
	hasPos  bool
	spawn   *Spawn
	mover   bool // mover started
	reason  component.Component
	err     error

	done     chan struct{}
	doneOnce sync.Once
}

// Position is the location of the player. Y is the feet position.
type Position struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

// Spawn is the world spawn point sent after joining.
type Spawn struct {
	X, Y, Z int32
}

func newSession(client *Client, conn *netmc.Conn) *Session {
	group, _ := errgroup.WithContext(conn.Context())
	return &Session{
		client: client,
		conn:   conn,
		log:    logr.FromContextOrDiscard(conn.Context()),
		group:  group,
		done:   make(chan struct{}),
	}
}

// Conn returns the session's connection.
func (s *Session) Conn() *netmc.Conn { return s.conn }

// Context is canceled when the session closed.
func (s *Session) Context() context.Context { return s.conn.Context() }

// Profile returns the profile the server assigned, nil before the login completed.
func (s *Session) Profile() *profile.GameProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Position returns the last known position of the player.
func (s *Session) Position() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, s.hasPos
}

// Spawn returns the world spawn point, nil if not received yet.
func (s *Session) Spawn() *Spawn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawn
}

const maxChatLength = 100

// Chat sends a chat message or command.
func (s *Session) Chat(msg string) error {
	if n := utf8.RuneCountInString(msg); n > maxChatLength {
		return fmt.Errorf("chat message exceeds %d characters: %d", maxChatLength, n)
	}
	return s.conn.WritePacket(&packet.Chat{Message: msg})
}

// Close closes the session.
func (s *Session) Close() error { return s.conn.Close() }

// Done is closed after the session closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session closed and all its goroutines returned.
// It returns a *DisconnectError if the server closed the session with a reason,
// ErrConnectionLost if the connection broke and nil after Close.
func (s *Session) Wait() error {
	<-s.done
	if err := s.group.Wait(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// disconnect records the reason the server sent before closing.
func (s *Session) disconnect(reason string) {
	c, err := componentutil.Parse(reason)
	if err != nil {
		s.log.V(1).Info("could not parse disconnect reason", "reason", reason, "error", err)
		c = &component.Text{Content: reason}
	}
	s.mu.Lock()
	s.reason = c
	s.mu.Unlock()
	s.log.Info("disconnected by server", "reason", componentutil.PlainText(c))
	_ = s.conn.Close()
}

// fail closes the session with err.
func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	_ = s.conn.Close()
}

// disconnected is called once by the active session handler.
func (s *Session) disconnected() {
	s.doneOnce.Do(func() {
		s.mu.Lock()
		reason := s.reason
		if s.err == nil {
			switch {
			case reason != nil:
				s.err = &DisconnectError{Reason: reason}
			case !s.conn.KnownDisconnect():
				s.err = ErrConnectionLost
			}
		}
		s.mu.Unlock()
		s.client.event.Fire(&DisconnectEvent{Session: s, Reason: reason})
		close(s.done)
	})
}

func (s *Session) setProfile(p *profile.GameProfile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}
