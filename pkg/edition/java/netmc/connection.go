// Package netmc implements a Minecraft connection: framing, state
// switching, encryption and the read loop driving a SessionHandler.
package netmc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/go-logr/logr"
	"github.com/rs/xid"
	"go.uber.org/atomic"

	"go.minekube.com/bot/pkg/edition/java/auth"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/codec"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/internal/connwrap"
	"go.minekube.com/bot/pkg/util/errs"
)

var (
	// ErrClosedConn indicates a connection is already closed.
	ErrClosedConn = errors.New("connection is closed")
	// ErrAlreadyEncrypted is returned when enabling encryption twice.
	ErrAlreadyEncrypted = errors.New("connection is already encrypted")
)

// SessionHandler handles received packets from the associated connection.
//
// Since connections transition between states packets need to be handled differently,
// this behaviour is divided between sessions by session handlers.
type SessionHandler interface {
	HandlePacket(pc *proto.PacketContext) // Called to handle an incoming packet.
	Disconnected()                        // Called when connection is closing, to teardown the session.

	Activated()   // Called when the connection is now managed by this SessionHandler.
	Deactivated() // Called when the connection is no longer managed by this SessionHandler.
}

// Options configure a new Conn.
type Options struct {
	// Direction is the direction of packets written to the connection.
	// Defaults to proto.ServerBound, a client connected to a server.
	Direction proto.Direction
	// Metrics counts the connection's packets. Created if nil.
	Metrics *Metrics
	// Interceptor is called with every decoded packet before the session handler.
	Interceptor PacketInterceptor
}

// Conn is a Minecraft connection.
// The connection is unusable after Close was called and must be recreated.
type Conn struct {
	c   *connwrap.Conn // underlying connection
	id  xid.ID
	log logr.Logger // connections own logger

	ctx             context.Context // is canceled when connection closed
	cancelCtx       context.CancelFunc
	closeOnce       sync.Once   // Makes sure the connection is closed once, while blocking proceeding calls.
	knownDisconnect atomic.Bool // Silences disconnect (any error is known)
	metrics         *Metrics
	interceptor     PacketInterceptor

	// Locked while decoding a frame, writing packets and
	// switching the stream, never while waiting for bytes.
	mu        sync.Mutex
	readBuf   *bufio.Reader
	writeBuf  *bufio.Writer
	dec       *codec.Decoder
	enc       *codec.Encoder
	encrypted bool
	state     *state.Registry
	entityID  *int32

	sessionHandlerMu struct {
		sync.RWMutex
		SessionHandler // The current session handler.
	}
}

// NewConn returns a new Conn and the func to start the blocking read-loop.
func NewConn(ctx context.Context, base net.Conn, opts Options) (conn *Conn, startReadLoop func()) {
	out := opts.Direction
	if out != proto.ClientBound {
		out = proto.ServerBound
	}
	in := out.Opposite()

	id := xid.New()
	log := logr.FromContextOrDiscard(ctx).WithName("conn").WithValues(
		"remote", base.RemoteAddr(), "id", id.String())
	ctx = logr.NewContext(ctx, log)
	ctx, cancel := context.WithCancel(ctx)

	metrics := opts.Metrics
	if metrics == nil {
		metrics = new(Metrics)
	}

	wrapped := connwrap.New(base)
	readBuf := bufio.NewReader(wrapped)
	writeBuf := bufio.NewWriter(wrapped)
	c := &Conn{
		c:           wrapped,
		id:          id,
		log:         log,
		ctx:         ctx,
		cancelCtx:   cancel,
		metrics:     metrics,
		interceptor: opts.Interceptor,
		readBuf:     readBuf,
		writeBuf:    writeBuf,
		dec:         codec.NewDecoder(readBuf, in, log),
		enc:         codec.NewEncoder(writeBuf, out, log),
		state:       state.Handshake,
	}
	return c, c.startReadLoop
}

// startReadLoop is the main goroutine of this connection and
// reads packets to pass them further to the current SessionHandler.
// Close will be called on method return.
func (c *Conn) startReadLoop() {
	// Make sure to close connection on return, if not already closed
	defer func() { _ = c.closeKnown(false) }()

	for !Closed(c) {
		// Blocks without holding the connection lock.
		payload, err := c.dec.ReadFrame()
		if err != nil {
			c.logReadErr(err)
			return
		}

		c.mu.Lock()
		pc, err := c.dec.DecodePayload(payload)
		c.mu.Unlock()
		if err != nil {
			c.logReadErr(err)
			return
		}
		c.metrics.packetDecoded(len(payload))

		if c.interceptor != nil {
			c.interceptor.InterceptPacket(c.ctx, pc)
		}

		// Handle packet by connection's session handler.
		if h := c.SessionHandler(); h != nil {
			h.HandlePacket(pc)
		}
	}
}

func (c *Conn) logReadErr(err error) {
	if Closed(c) || errs.IsConnClosedErr(err) {
		c.log.V(1).Info("connection closed while reading", "error", err)
		return
	}
	if errs.IsSilent(err) {
		c.log.V(1).Info("error reading packet, closing connection", "error", err)
		return
	}
	c.log.Error(err, "error reading packet, closing connection")
}

// ID returns the unique id of the connection.
func (c *Conn) ID() string { return c.id.String() }

// Context returns the context of the connection.
// This Context is canceled on Close and can be used to attach more context values to a connection.
func (c *Conn) Context() context.Context { return c.ctx }

// Metrics returns the connection's packet counters.
func (c *Conn) Metrics() *Metrics { return c.metrics }

// Closed returns true if the connection is closed.
func Closed(c interface{ Context() context.Context }) bool {
	return c.Context().Err() != nil
}

// WritePacket encodes and writes a packet to the connection.
//
// The connection will be closed on any error encountered!
func (c *Conn) WritePacket(p packet.Packet) (err error) {
	if Closed(c) {
		return ErrClosedConn
	}
	defer func() { c.closeOnErr(err) }()
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.enc.WritePacket(p)
	if err != nil {
		return err
	}
	c.metrics.packetEncoded(n)
	return c.writeBuf.Flush()
}

// WritePackets writes the packets to the connection in order
// with no other packet in between.
func (c *Conn) WritePackets(ps ...packet.Packet) (err error) {
	if Closed(c) {
		return ErrClosedConn
	}
	defer func() { c.closeOnErr(err) }()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range ps {
		n, err := c.enc.WritePacket(p)
		if err != nil {
			return err
		}
		c.metrics.packetEncoded(n)
	}
	return c.writeBuf.Flush()
}

func (c *Conn) closeOnErr(err error) {
	if err == nil {
		return
	}
	_ = c.Close()
	if errors.Is(err, ErrClosedConn) {
		return // Don't log this error
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && errs.IsConnClosedErr(opErr.Err) {
		return // Don't log this error
	}
	if errors.Is(err, codec.ErrWrongDirection) {
		c.log.Error(err, "closing connection")
		return
	}
	c.log.V(1).Info("error writing packet, closing connection", "err", err)
}

// Close closes the connection, if not already, and calls SessionHandler.Disconnected.
// It is okay to call this method multiple times.
func (c *Conn) Close() error {
	return c.closeKnown(true)
}

func (c *Conn) closeKnown(markKnown bool) (err error) {
	alreadyClosed := true
	c.closeOnce.Do(func() {
		alreadyClosed = false
		if markKnown {
			c.knownDisconnect.Store(true)
		}

		c.cancelCtx()
		err = c.c.Close()

		if sh := c.SessionHandler(); sh != nil {
			sh.Disconnected()
		}
		if !c.knownDisconnect.Load() {
			c.log.Info("connection closed unexpectedly")
		}
	})
	if alreadyClosed {
		err = ErrClosedConn
	}
	return err
}

// CloseWith closes the connection after writing the packet.
func (c *Conn) CloseWith(p packet.Packet) (err error) {
	if Closed(c) {
		return ErrClosedConn
	}
	c.knownDisconnect.Store(true)
	_ = c.WritePacket(p)
	return c.Close()
}

// KnownDisconnect returns true if the connection was or will be expectedly closed.
func (c *Conn) KnownDisconnect() bool {
	return c.knownDisconnect.Load()
}

// RemoteAddr returns the remote address of the connection.
func (c *Conn) RemoteAddr() net.Addr {
	return c.c.RemoteAddr()
}

// LocalAddr returns the local address of the connection.
func (c *Conn) LocalAddr() net.Addr {
	return c.c.LocalAddr()
}

// State returns the current state of the connection.
func (c *Conn) State() *state.Registry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState switches the connection's state.
// States only move forward, see proto.State.CanTransition.
func (c *Conn) SetState(s *state.Registry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.State.CanTransition(s.State) {
		return fmt.Errorf("invalid state transition from %s to %s", c.state.State, s.State)
	}
	c.state = s
	c.dec.SetState(s)
	c.enc.SetState(s)
	c.log.V(1).Info("switched state", "state", s.State)
	return nil
}

// EntityID returns the player's entity id once the server sent it.
func (c *Conn) EntityID() (int32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entityID == nil {
		return 0, false
	}
	return *c.entityID, true
}

// SetEntityID records the player's entity id.
func (c *Conn) SetEntityID(id int32) {
	c.mu.Lock()
	c.entityID = &id
	c.mu.Unlock()
}

// SessionHandler returns the session handler of the connection.
func (c *Conn) SessionHandler() SessionHandler {
	c.sessionHandlerMu.RLock()
	defer c.sessionHandlerMu.RUnlock()
	return c.sessionHandlerMu.SessionHandler
}

// SetSessionHandler sets the session handler for this connection
// and calls Deactivated() on the old handler and Activated() on the new handler.
func (c *Conn) SetSessionHandler(handler SessionHandler) {
	c.sessionHandlerMu.Lock()
	defer c.sessionHandlerMu.Unlock()
	if c.sessionHandlerMu.SessionHandler != nil {
		c.sessionHandlerMu.SessionHandler.Deactivated()
	}
	c.sessionHandlerMu.SessionHandler = handler
	handler.Activated()
}

// EnableEncryption takes the secret key negotiated between the client and
// the server to encrypt all further reads and writes. The plain streams
// are only reachable through the cipher afterwards.
//
// It must be called by the session handler, after the packet that
// precedes the encrypted stream was written.
func (c *Conn) EnableEncryption(secret []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.encrypted {
		return ErrAlreadyEncrypted
	}
	if len(secret) != codec.SecretLength {
		return fmt.Errorf("%w: shared secret must be %d bytes, got %d",
			auth.ErrCryptoFailure, codec.SecretLength, len(secret))
	}
	decryptReader, err := codec.NewDecryptReader(c.readBuf, secret)
	if err != nil {
		return fmt.Errorf("%w: %w", auth.ErrCryptoFailure, err)
	}
	encryptWriter, err := codec.NewEncryptWriter(c.writeBuf, secret)
	if err != nil {
		return fmt.Errorf("%w: %w", auth.ErrCryptoFailure, err)
	}
	c.dec.SetReader(decryptReader)
	c.enc.SetWriter(encryptWriter)
	c.encrypted = true
	c.log.V(1).Info("enabled encryption")
	return nil
}

// Encrypted reports whether encryption is enabled.
func (c *Conn) Encrypted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encrypted
}
