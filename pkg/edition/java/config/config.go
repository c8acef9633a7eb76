// Package config contains the Java edition client configuration.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"go.minekube.com/bot/pkg/edition/java/auth"
	"go.minekube.com/bot/pkg/edition/java/proto/version"
	"go.minekube.com/bot/pkg/util/configutil"
	"go.minekube.com/bot/pkg/util/uuid"
	"go.minekube.com/bot/pkg/util/validation"
)

// DefaultConfig is a default Config.
var DefaultConfig = Config{
	Addr:           "localhost:25565",
	Username:       "bot",
	Protocol:       int(version.Supported.Protocol),
	ConnectTimeout: 5 * time.Second,
	Auth: Auth{
		OnlineMode:       false,
		SessionServerURL: auth.DefaultSessionServerURL,
	},
	Settings: Settings{
		Locale:       "en_US",
		ViewDistance: 2,
		ChatFlags:    0,
		ChatColors:   true,
		Difficulty:   2,
		ShowCape:     true,
	},
	Movement: Movement{
		Enabled:  true,
		Radius:   5,
		Interval: 100 * time.Millisecond,
	},
	Reconnect: Reconnect{
		Enabled:  false,
		Interval: 5 * time.Second,
		Burst:    3,
	},
	Ping: Ping{
		Timeout:  5 * time.Second,
		CacheTTL: 5 * time.Second,
	},
	Chunks: Chunks{
		Decompress: true,
		Workers:    4,
	},
}

// Config is the configuration of the client.
type Config struct {
	Addr           string        `json:"addr" yaml:"addr"` // The server to connect to, the port defaults to 25565.
	Username       string        `json:"username" yaml:"username"`
	Protocol       int           `json:"protocol" yaml:"protocol"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
	ProxyProtocol  bool          `json:"proxyProtocol" yaml:"proxyProtocol"` // Send a PROXY protocol v2 header.
	SOCKS5         string        `json:"socks5,omitempty" yaml:"socks5,omitempty" mapstructure:"socks5"`

	Auth      Auth      `json:"auth" yaml:"auth"`
	Settings  Settings  `json:"settings" yaml:"settings"`
	Movement  Movement  `json:"movement" yaml:"movement"`
	Forge     Forge     `json:"forge" yaml:"forge"`
	Reconnect Reconnect `json:"reconnect" yaml:"reconnect"`
	Ping      Ping      `json:"ping" yaml:"ping"`
	Chunks    Chunks    `json:"chunks" yaml:"chunks"`
}

type (
	Auth struct {
		// Whether to join the session server when the server requests encryption.
		OnlineMode       bool   `json:"onlineMode" yaml:"onlineMode"`
		AccessToken      string `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
		ProfileID        string `json:"profileId,omitempty" yaml:"profileId,omitempty" mapstructure:"profileId"`
		SessionServerURL string `json:"sessionServerUrl" yaml:"sessionServerUrl" mapstructure:"sessionServerUrl"`
	}
	// Settings are sent to the server after joining the game.
	Settings struct {
		Locale       string `json:"locale" yaml:"locale"`
		ViewDistance int8   `json:"viewDistance" yaml:"viewDistance"` // 0 far, 1 normal, 2 short, 3 tiny
		ChatFlags    int8   `json:"chatFlags" yaml:"chatFlags"`       // 0 enabled, 1 commands only, 2 hidden
		ChatColors   bool   `json:"chatColors" yaml:"chatColors"`
		Difficulty   int8   `json:"difficulty" yaml:"difficulty"` // 0 peaceful to 3 hard
		ShowCape     bool   `json:"showCape" yaml:"showCape"`
	}
	// Movement walks the player on a circle around its spawn position.
	Movement struct {
		Enabled  bool          `json:"enabled" yaml:"enabled"`
		Radius   float64       `json:"radius" yaml:"radius"`
		Interval time.Duration `json:"interval" yaml:"interval"`
	}
	Forge struct {
		// Answer the FML|HS server hello, so Forge servers keep the connection.
		ReplyHandshake bool `json:"replyHandshake" yaml:"replyHandshake"`
	}
	Reconnect struct {
		Enabled  bool          `json:"enabled" yaml:"enabled"`
		Interval time.Duration `json:"interval" yaml:"interval"` // Minimum time between connection attempts.
		Burst    int           `json:"burst" yaml:"burst"`       // Attempts allowed in quick succession.
	}
	Ping struct {
		Timeout  time.Duration `json:"timeout" yaml:"timeout"`
		CacheTTL time.Duration `json:"cacheTtl" yaml:"cacheTtl" mapstructure:"cacheTtl"`
	}
	Chunks struct {
		Decompress bool  `json:"decompress" yaml:"decompress"`
		Workers    int64 `json:"workers" yaml:"workers"`
	}
)

// SetDefaults sets Config defaults used with Viper.
func SetDefaults(i configutil.SetDefault) {
	d := DefaultConfig
	i.SetDefault("addr", d.Addr)
	i.SetDefault("username", d.Username)
	i.SetDefault("protocol", d.Protocol)
	i.SetDefault("connectTimeout", d.ConnectTimeout)
	i.SetDefault("proxyProtocol", d.ProxyProtocol)
	// Empty defaults make the keys known to environment variables.
	i.SetDefault("socks5", d.SOCKS5)

	i.SetDefault("auth.onlineMode", d.Auth.OnlineMode)
	i.SetDefault("auth.accessToken", d.Auth.AccessToken)
	i.SetDefault("auth.profileId", d.Auth.ProfileID)
	i.SetDefault("auth.sessionServerUrl", d.Auth.SessionServerURL)

	i.SetDefault("settings.locale", d.Settings.Locale)
	i.SetDefault("settings.viewDistance", d.Settings.ViewDistance)
	i.SetDefault("settings.chatFlags", d.Settings.ChatFlags)
	i.SetDefault("settings.chatColors", d.Settings.ChatColors)
	i.SetDefault("settings.difficulty", d.Settings.Difficulty)
	i.SetDefault("settings.showCape", d.Settings.ShowCape)

	i.SetDefault("movement.enabled", d.Movement.Enabled)
	i.SetDefault("movement.radius", d.Movement.Radius)
	i.SetDefault("movement.interval", d.Movement.Interval)

	i.SetDefault("forge.replyHandshake", d.Forge.ReplyHandshake)

	i.SetDefault("reconnect.enabled", d.Reconnect.Enabled)
	i.SetDefault("reconnect.interval", d.Reconnect.Interval)
	i.SetDefault("reconnect.burst", d.Reconnect.Burst)

	i.SetDefault("ping.timeout", d.Ping.Timeout)
	i.SetDefault("ping.cacheTtl", d.Ping.CacheTTL)

	i.SetDefault("chunks.decompress", d.Chunks.Decompress)
	i.SetDefault("chunks.workers", d.Chunks.Workers)
}

// Validate validates Config.
func (c *Config) Validate() (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...any) { warns = append(warns, fmt.Errorf(m, args...)) }

	if c == nil {
		e("config must not be nil")
		return
	}

	if c.Addr == "" {
		e("Addr is empty")
	} else if err := validation.ValidHostPort(c.Addr); err != nil {
		e("Invalid addr %q: %v", c.Addr, err)
	}

	if !validation.ValidUsername(c.Username) {
		e("Invalid username %q: %s", c.Username, validation.UsernameErrMsg)
	}

	if p := version.Protocol(c.Protocol); !p.Supported() {
		e("Unsupported protocol %s, only %s is supported", p, version.Protocol(version.Supported.Protocol))
	}

	if c.ConnectTimeout < 0 {
		e("Invalid connect timeout %s: must be >= 0", c.ConnectTimeout)
	}

	if c.SOCKS5 != "" {
		if strings.Contains(c.SOCKS5, "://") {
			if u, err := url.Parse(c.SOCKS5); err != nil || u.Scheme != "socks5" {
				e("Invalid socks5 proxy url %q", c.SOCKS5)
			}
		} else if err := validation.ValidHostPort(c.SOCKS5); err != nil {
			e("Invalid socks5 proxy %q: %v", c.SOCKS5, err)
		}
	}

	if c.Auth.OnlineMode {
		if c.Auth.AccessToken == "" {
			e("Online mode requires an access token")
		}
		if _, err := uuid.Parse(c.Auth.ProfileID); err != nil {
			e("Online mode requires a valid profile id, got %q: %v", c.Auth.ProfileID, err)
		}
	} else {
		w("Client is running in offline mode, online mode servers will reject the login!")
	}
	if u, err := url.Parse(c.Auth.SessionServerURL); err != nil || u.Host == "" {
		e("Invalid session server url %q", c.Auth.SessionServerURL)
	}

	if _, err := language.Parse(c.Settings.Locale); err != nil {
		e("Invalid locale %q: %v", c.Settings.Locale, err)
	}
	if c.Settings.ViewDistance < 0 || c.Settings.ViewDistance > 3 {
		e("Invalid view distance %d: must be 0..3", c.Settings.ViewDistance)
	}
	if c.Settings.ChatFlags < 0 || c.Settings.ChatFlags > 2 {
		e("Invalid chat flags %d: must be 0..2", c.Settings.ChatFlags)
	}
	if c.Settings.Difficulty < 0 || c.Settings.Difficulty > 3 {
		e("Invalid difficulty %d: must be 0..3", c.Settings.Difficulty)
	}

	if c.Movement.Enabled {
		if c.Movement.Radius <= 0 {
			e("Invalid movement radius %v: must be > 0", c.Movement.Radius)
		}
		if c.Movement.Interval <= 0 {
			e("Invalid movement interval %s: must be > 0", c.Movement.Interval)
		} else if c.Movement.Interval < 50*time.Millisecond {
			w("Movement interval %s is shorter than a server tick", c.Movement.Interval)
		}
	}

	if c.Reconnect.Enabled {
		if c.Reconnect.Interval <= 0 {
			e("Invalid reconnect interval %s: must be > 0", c.Reconnect.Interval)
		}
		if c.Reconnect.Burst < 1 {
			e("Invalid reconnect burst %d: must be >= 1", c.Reconnect.Burst)
		}
	}

	if c.Ping.Timeout <= 0 {
		e("Invalid ping timeout %s: must be > 0", c.Ping.Timeout)
	}
	if c.Chunks.Decompress && c.Chunks.Workers < 1 {
		e("Invalid chunk workers %d: must be >= 1", c.Chunks.Workers)
	}
	return
}
