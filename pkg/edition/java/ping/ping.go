package ping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-logr/logr"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/codec"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/edition/java/proto/version"
	"go.minekube.com/bot/pkg/internal/cachutil"
	"go.minekube.com/bot/pkg/util/netutil"
)

// Result is the outcome of a status ping.
type Result struct {
	Status *ServerPing
	// Raw is the status JSON as sent by the server.
	Raw string
	// Latency is the round trip time of the ping packet. Servers that
	// close the connection before answering the ping report
	// the round trip time of the status request instead.
	Latency time.Duration
}

// ErrUnexpectedPacket is returned when the server answers with a packet
// other than the one the status exchange expects.
var ErrUnexpectedPacket = errors.New("unexpected packet")

// Ping runs the status exchange on conn. host and port are sent in the handshake.
// conn is closed when ctx is done before the exchange completes.
func Ping(ctx context.Context, conn net.Conn, host string, port uint16) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("ping")

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	enc := codec.NewEncoder(conn, proto.ServerBound, log.V(2))
	dec := codec.NewDecoder(conn, proto.ClientBound, log.V(2))

	_, err := enc.WritePacket(&packet.Handshake{
		ProtocolVersion: int(version.Supported.Protocol),
		ServerAddress:   host,
		Port:            port,
		NextState:       packet.NextStateStatus,
	})
	if err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("failed to write handshake: %w", err))
	}
	enc.SetState(state.Status)
	dec.SetState(state.Status)

	start := time.Now()
	if _, err = enc.WritePacket(&packet.StatusRequest{}); err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("failed to write status request: %w", err))
	}
	pc, err := dec.Decode()
	if err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("failed to decode status response: %w", err))
	}
	res, ok := pc.Packet.(*packet.StatusResponse)
	if !ok {
		return nil, fmt.Errorf("%w: %s, expected %T", ErrUnexpectedPacket, pc, res)
	}
	result := &Result{Raw: res.Status, Latency: time.Since(start)}
	result.Status = new(ServerPing)
	if err = json.Unmarshal([]byte(res.Status), result.Status); err != nil {
		return nil, fmt.Errorf("invalid status response: %w", err)
	}

	if latency, err := pong(enc, dec); err != nil {
		log.V(1).Info("server did not answer ping", "error", err)
	} else {
		result.Latency = latency
	}
	return result, nil
}

func pong(enc *codec.Encoder, dec *codec.Decoder) (time.Duration, error) {
	start := time.Now()
	ping := &packet.StatusPing{RandomID: start.UnixMilli()}
	if _, err := enc.WritePacket(ping); err != nil {
		return 0, err
	}
	pc, err := dec.Decode()
	if err != nil {
		return 0, err
	}
	p, ok := pc.Packet.(*packet.StatusPing)
	if !ok {
		return 0, fmt.Errorf("%w: %s, expected %T", ErrUnexpectedPacket, pc, p)
	}
	if p.RandomID != ping.RandomID {
		return 0, fmt.Errorf("pong id %d does not match ping id %d", p.RandomID, ping.RandomID)
	}
	return time.Since(start), nil
}

// ctxErr prefers the context error over the
// error of a connection closed because of it.
func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

// Pinger pings servers and caches the results.
type Pinger struct {
	dialer  *netutil.Dialer
	timeout time.Duration
	log     logr.Logger
	cache   *ttlcache.Cache[string, *pingResult]
}

type pingResult struct {
	res *Result
	err error
}

// PingerOptions configures a Pinger.
type PingerOptions struct {
	Dialer *netutil.Dialer // Defaults to a plain dialer.
	// Timeout of a single ping. Defaults to 5s.
	Timeout time.Duration
	// TTL results, including failures, are cached for. Defaults to 5s.
	TTL    time.Duration
	Logger logr.Logger
}

// NewPinger returns a started Pinger. Close stops its cache janitor.
func NewPinger(opts PingerOptions) *Pinger {
	if opts.Dialer == nil {
		opts.Dialer = &netutil.Dialer{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Second
	}
	p := &Pinger{
		dialer:  opts.Dialer,
		timeout: opts.Timeout,
		log:     opts.Logger,
	}
	p.cache = ttlcache.New[string, *pingResult](
		cachutil.WithLoader(new(singleflight.Group), opts.TTL, func(addr string) *pingResult {
			res, err := p.ping(addr)
			return &pingResult{res: res, err: err}
		}),
	)
	go p.cache.Start()
	return p
}

// Ping returns the cached result for addr or pings it.
// Concurrent calls for the same address share one ping.
func (p *Pinger) Ping(ctx context.Context, addr string) (*Result, error) {
	addr, err := netutil.JoinHostPort(addr, netutil.DefaultPort)
	if err != nil {
		return nil, err
	}
	done := make(chan *pingResult, 1)
	go func() { done <- p.cache.Get(addr).Value() }()
	select {
	case r := <-done:
		return r.res, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the cache janitor.
func (p *Pinger) Close() { p.cache.Stop() }

func (p *Pinger) ping(addr string) (*Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	ctx = logr.NewContext(ctx, p.log.WithValues("server", addr))

	host, port, err := netutil.SplitHostPort(addr, netutil.DefaultPort)
	if err != nil {
		return nil, err
	}
	conn, err := p.dialer.DialContext(ctx, addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return Ping(ctx, conn, host, port)
}
