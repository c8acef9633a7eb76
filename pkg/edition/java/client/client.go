// Package client connects a bot player to a Minecraft server,
// logs in and keeps the player in the world.
package client

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"go.minekube.com/bot/pkg/edition/java/auth"
	"go.minekube.com/bot/pkg/edition/java/chunk"
	"go.minekube.com/bot/pkg/edition/java/config"
	"go.minekube.com/bot/pkg/edition/java/netmc"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/internal/addrquota"
	"go.minekube.com/bot/pkg/util/netutil"
	"go.minekube.com/bot/pkg/util/uuid"
)

// Options are the options for a new Client.
type Options struct {
	// Config requires a valid configuration.
	Config *config.Config
	// The event manager to use.
	// If none is set, no events are sent.
	Event event.Manager
	// Logger of the client. Connections log with
	// the logger of the context passed to Connect.
	Logger logr.Logger
	// Meter exports the packet counters.
	// If none is set, the global meter provider is used.
	Meter metric.Meter
	// Authenticator joins the session server in online mode.
	// If none is set, one is created for the configured session server.
	Authenticator *auth.Authenticator
	// Dial connects to the server.
	// If none is set, the configured dialer is used.
	Dial func(ctx context.Context, addr string) (net.Conn, error)
	// Rand is the source of shared secrets, defaults to crypto/rand.
	Rand io.Reader
}

// Client connects to the configured server.
type Client struct {
	cfg          *config.Config
	log          logr.Logger
	event        event.Manager
	auth         *auth.Authenticator
	dial         func(ctx context.Context, addr string) (net.Conn, error)
	rand         io.Reader
	profileID    string // undashed
	decompressor *chunk.Decompressor
	quota        *addrquota.Quota
	metrics      *netmc.Metrics
	registration metric.Registration
}

// New returns a new Client.
func New(opts Options) (c *Client, err error) {
	if opts.Config == nil {
		return nil, errors.New("must specify config")
	}
	cfg := opts.Config

	c = &Client{
		cfg:     cfg,
		log:     opts.Logger.WithName("client"),
		event:   opts.Event,
		auth:    opts.Authenticator,
		dial:    opts.Dial,
		rand:    opts.Rand,
		metrics: new(netmc.Metrics),
	}
	if c.event == nil {
		c.event = event.Nop
	}
	if c.rand == nil {
		c.rand = rand.Reader
	}
	if c.dial == nil {
		d := &netutil.Dialer{
			Timeout:       cfg.ConnectTimeout,
			SOCKS5:        cfg.SOCKS5,
			ProxyProtocol: cfg.ProxyProtocol,
		}
		c.dial = d.DialContext
	}
	if c.auth == nil {
		u, err := url.Parse(cfg.Auth.SessionServerURL)
		if err != nil {
			return nil, fmt.Errorf("invalid session server url: %w", err)
		}
		if c.auth, err = auth.New(auth.Options{SessionServerURL: u}); err != nil {
			return nil, err
		}
	}

	if cfg.Auth.ProfileID != "" {
		id, err := uuid.Parse(cfg.Auth.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("invalid profile id: %w", err)
		}
		c.profileID = id.Undashed()
	} else {
		c.profileID = uuid.OfflinePlayerUUID(cfg.Username).Undashed()
	}

	if cfg.Chunks.Decompress {
		c.decompressor = chunk.NewDecompressor(cfg.Chunks.Workers, c.log)
	}
	if cfg.Reconnect.Enabled {
		c.quota = addrquota.NewQuota(cfg.Reconnect.Interval, cfg.Reconnect.Burst, 16)
	}

	meter := opts.Meter
	if meter == nil {
		meter = otel.Meter("bot")
	}
	c.registration, err = c.metrics.Register(meter,
		attribute.String("server.address", cfg.Addr))
	if err != nil {
		return nil, fmt.Errorf("error registering metrics: %w", err)
	}
	return c, nil
}

// Event returns the event manager of the client.
func (c *Client) Event() event.Manager { return c.event }

// Metrics returns the packet counters of all sessions.
func (c *Client) Metrics() *netmc.Metrics { return c.metrics }

// Connect connects to the server and starts the login.
// The returned session is closed when ctx is canceled.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	host, port, err := netutil.SplitHostPort(c.cfg.Addr, netutil.DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	log := logr.FromContextOrDiscard(ctx)
	if log.GetSink() == nil {
		log = c.log
	}
	log = log.WithValues("server", c.cfg.Addr, "username", c.cfg.Username)
	ctx = logr.NewContext(ctx, log)

	base, err := c.dial(ctx, c.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", c.cfg.Addr, err)
	}
	conn, startReadLoop := netmc.NewConn(ctx, base, netmc.Options{
		Direction:   proto.ServerBound,
		Metrics:     c.metrics,
		Interceptor: netmc.NewTelemetryInterceptor(log),
	})
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	s := newSession(c, conn)
	conn.SetSessionHandler(newLoginSessionHandler(s))

	if err = c.login(conn, host, port); err != nil {
		stop()
		_ = conn.Close()
		return nil, err
	}
	s.group.Go(func() error {
		defer stop()
		startReadLoop()
		return nil
	})
	log.Info("connected", "remote", conn.RemoteAddr())
	c.event.Fire(&ConnectedEvent{Session: s})
	return s, nil
}

// login sends the handshake and the login start.
func (c *Client) login(conn *netmc.Conn, host string, port uint16) error {
	err := conn.WritePacket(&packet.Handshake{
		ProtocolVersion: c.cfg.Protocol,
		ServerAddress:   host,
		Port:            port,
		NextState:       packet.NextStateLogin,
	})
	if err != nil {
		return fmt.Errorf("error writing handshake: %w", err)
	}
	if err = conn.SetState(state.Login); err != nil {
		return err
	}
	if err = conn.WritePacket(&packet.LoginStart{Username: c.cfg.Username}); err != nil {
		return fmt.Errorf("error writing login start: %w", err)
	}
	return nil
}

// Run connects and waits for the session to end.
// If reconnecting is enabled the client connects again,
// limited by the configured quota, until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	log := logr.FromContextOrDiscard(ctx)
	for {
		if c.quota != nil {
			if err := c.quota.Wait(ctx, c.cfg.Addr); err != nil {
				return nil // canceled
			}
		}
		s, err := c.Connect(ctx)
		if err == nil {
			err = s.Wait()
		}
		if ctx.Err() != nil {
			return nil
		}
		if c.quota == nil {
			return err
		}
		log.Info("session ended, reconnecting", "error", err)
	}
}

// Close releases the resources of the client.
// Open sessions are not closed.
func (c *Client) Close() error {
	if c.decompressor != nil {
		c.decompressor.Wait()
	}
	return c.registration.Unregister()
}
