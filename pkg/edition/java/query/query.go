// Package query implements the full stat request of the UDP query protocol.
// https://wiki.vg/Query
package query

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	typeHandshake = 0x09
	typeStat      = 0x00

	// DefaultTimeout is used when the context has no deadline.
	DefaultTimeout = 5 * time.Second

	// Bytes before the key value section: type, session id and "splitnum\x00\x80\x00".
	statHeaderLen = 16
	maxPacketSize = 64 * 1024
)

var (
	magic        = []byte{0xFE, 0xFD}
	playerMarker = []byte("\x00\x00\x01player_\x00\x00")

	// ErrInvalidResponse is returned for a malformed server response.
	ErrInvalidResponse = errors.New("invalid query response")
)

// Response is a full stat response.
type Response struct {
	MOTD       string            `json:"motd" yaml:"motd"`
	GameType   string            `json:"gameType" yaml:"gameType"`
	GameID     string            `json:"gameId" yaml:"gameId"`
	Version    string            `json:"version" yaml:"version"`
	Map        string            `json:"map" yaml:"map"`
	Online     int               `json:"online" yaml:"online"`
	Max        int               `json:"max" yaml:"max"`
	HostIP     string            `json:"hostIp" yaml:"hostIp"`
	HostPort   uint16            `json:"hostPort" yaml:"hostPort"`
	Plugins    string            `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	PluginList []string          `json:"pluginList,omitempty" yaml:"pluginList,omitempty"`
	Players    []string          `json:"players" yaml:"players"`
	Raw        map[string]string `json:"-" yaml:"-"` // all key values
}

// Query runs a full stat request against the query port at addr.
// The exchange fails when ctx is done or, without a deadline, after DefaultTimeout.
func Query(ctx context.Context, addr string) (*Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("error dialing query port: %w", err)
	}
	defer conn.Close()
	return Do(ctx, conn)
}

// Do runs a full stat request on a connected packet conn.
func Do(ctx context.Context, conn net.Conn) (*Response, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("query")
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Unix(1, 0)) })
	defer stop()

	session := rand.Int32() & 0x0F0F0F0F
	buf := make([]byte, maxPacketSize)

	if _, err := conn.Write(request(typeHandshake, session, nil)); err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("error writing handshake: %w", err))
	}
	n, err := conn.Read(buf)
	if err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("error reading handshake response: %w", err))
	}
	token, err := parseChallenge(buf[:n])
	if err != nil {
		return nil, err
	}
	log.V(1).Info("received challenge token", "token", token)

	payload := make([]byte, 8) // token + padding requesting full stat
	binary.BigEndian.PutUint32(payload, uint32(token))
	if _, err = conn.Write(request(typeStat, session, payload)); err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("error writing stat request: %w", err))
	}
	n, err = conn.Read(buf)
	if err != nil {
		return nil, ctxErr(ctx, fmt.Errorf("error reading stat response: %w", err))
	}
	return ParseStat(buf[:n])
}

func request(typ byte, session int32, payload []byte) []byte {
	b := make([]byte, 0, 7+len(payload))
	b = append(b, magic...)
	b = append(b, typ)
	b = binary.BigEndian.AppendUint32(b, uint32(session))
	return append(b, payload...)
}

// parseChallenge reads the token of a handshake response,
// a null terminated decimal string after the type and session id.
func parseChallenge(b []byte) (int32, error) {
	if len(b) < 5 || b[0] != typeHandshake {
		return 0, fmt.Errorf("%w: bad handshake response", ErrInvalidResponse)
	}
	s, _, _ := bytes.Cut(b[5:], []byte{0})
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, string(s))
	token, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad challenge token %q", ErrInvalidResponse, s)
	}
	return int32(token), nil
}

// ParseStat parses a full stat response packet.
func ParseStat(b []byte) (*Response, error) {
	if len(b) < statHeaderLen || b[0] != typeStat {
		return nil, fmt.Errorf("%w: stat response too short", ErrInvalidResponse)
	}
	data := b[statHeaderLen:]
	i := bytes.Index(data, playerMarker)
	if i < 0 {
		return nil, fmt.Errorf("%w: player section not found", ErrInvalidResponse)
	}
	info, players := data[:i], data[i+len(playerMarker):]

	r := &Response{Raw: map[string]string{}}
	parts := bytes.Split(info, []byte{0})
	for j := 0; j+1 < len(parts); j += 2 {
		r.Raw[strings.ToLower(string(parts[j]))] = string(parts[j+1])
	}
	r.MOTD = r.Raw["hostname"]
	r.GameType = r.Raw["gametype"]
	r.GameID = r.Raw["game_id"]
	r.Version = r.Raw["version"]
	r.Map = r.Raw["map"]
	r.HostIP = r.Raw["hostip"]
	r.Online, _ = strconv.Atoi(r.Raw["numplayers"])
	r.Max, _ = strconv.Atoi(r.Raw["maxplayers"])
	if port, err := strconv.ParseUint(r.Raw["hostport"], 10, 16); err == nil {
		r.HostPort = uint16(port)
	}
	r.Plugins = r.Raw["plugins"]
	r.PluginList = parsePlugins(r.Plugins)

	for _, name := range bytes.Split(players, []byte{0}) {
		if len(name) != 0 {
			r.Players = append(r.Players, string(name))
		}
	}
	return r, nil
}

// parsePlugins splits "<server>: a; b" into its plugins.
func parsePlugins(s string) []string {
	_, list, ok := strings.Cut(s, ": ")
	if !ok {
		return nil
	}
	var plugins []string
	for _, p := range strings.Split(list, ";") {
		if p = strings.TrimSpace(p); p != "" {
			plugins = append(plugins, p)
		}
	}
	return plugins
}

func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	// The conn deadline is the context deadline and may fire first.
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}
