// Package auth implements the client side of online mode logins:
// the key exchange with the server and the join request to the session server.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"go.minekube.com/bot/pkg/version"
)

// DefaultSessionServerURL is the base url of Mojang's session server.
const DefaultSessionServerURL = `https://sessionserver.mojang.com/session/minecraft`

// OfflineServerID is sent by servers in offline mode that still encrypt.
const OfflineServerID = "-"

// Options to create a new Authenticator.
type Options struct {
	// The base url of the session server.
	// If not set, DefaultSessionServerURL is used.
	SessionServerURL *url.URL
	// The http client to call the session server.
	// If none is set, a new one is created.
	Client *http.Client
}

// Authenticator tells the session server that a
// user joins a server before the login completes.
type Authenticator struct {
	joinURL string
	cli     *http.Client
}

// New returns a new Authenticator.
func New(options Options) (*Authenticator, error) {
	base := options.SessionServerURL
	if base == nil {
		var err error
		if base, err = url.Parse(DefaultSessionServerURL); err != nil {
			return nil, err
		}
	}
	joinURL := strings.TrimSuffix(base.String(), "/") + "/join"

	cli := options.Client
	if cli == nil {
		cli = &http.Client{
			Timeout: time.Second * 10,
		}
	}
	cli.Transport = otelhttp.NewTransport(cli.Transport)
	cli.Transport = withHeader(cli.Transport, version.UserAgentHeader())

	return &Authenticator{
		joinURL: joinURL,
		cli:     cli,
	}, nil
}

// JoinRequest is the body of a session server join.
type JoinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"` // undashed profile uuid
	ServerID        string `json:"serverId"`        // see GenerateServerID
}

// JoinError is returned when the session server rejects a join.
type JoinError struct {
	StatusCode   int    `json:"-"`
	Err          string `json:"error"`
	ErrorMessage string `json:"errorMessage"`
}

func (e *JoinError) Error() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("session server rejected join (%d): %s: %s", e.StatusCode, e.Err, e.ErrorMessage)
	}
	return fmt.Sprintf("session server rejected join (%d)", e.StatusCode)
}

var tracer = otel.Tracer("java/auth")

// Join announces the join to the session server.
// It returns nil only if the session server accepted it.
func (a *Authenticator) Join(ctx context.Context, r JoinRequest) (err error) {
	ctx, span := tracer.Start(ctx, "Join", trace.WithAttributes(
		attribute.String("server.id", r.ServerID),
		attribute.String("user.profile", r.SelectedProfile),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.joinURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating join request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log := logr.FromContextOrDiscard(ctx).V(1).WithName("sessionJoin")
	log.Info("joining at sessionserver", "url", a.joinURL, "serverId", r.ServerID)

	start := time.Now()
	resp, err := a.cli.Do(req)
	if err != nil {
		return fmt.Errorf("error joining at session server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Info("joined at sessionserver",
			"time", time.Since(start).String(),
			"statusCode", resp.StatusCode)
		return nil
	}

	joinErr := &JoinError{StatusCode: resp.StatusCode}
	if b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024)); len(b) != 0 {
		_ = json.Unmarshal(b, joinErr)
	}
	return joinErr
}

func withHeader(rt http.RoundTripper, header http.Header) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return headerRoundTripper{Header: header, rt: rt}
}

type headerRoundTripper struct {
	http.Header
	rt http.RoundTripper
}

func (h headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range h.Header {
		req.Header[k] = v
	}
	return h.rt.RoundTrip(req)
}
