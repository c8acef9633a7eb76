// Package bot runs a Minecraft bot client with a reloadable configuration.
package bot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"

	"go.minekube.com/bot/pkg/edition/java/client"
	"go.minekube.com/bot/pkg/internal/reload"
	"go.minekube.com/bot/pkg/util/errs"
)

// Options are Bot options.
type Options struct {
	// Config requires a valid configuration.
	Config *Config
	// Logger is the logger used for the bot and its clients.
	Logger logr.Logger
	// The event manager to use.
	// If none is set, a new one is created.
	Event event.Manager
	// Dial overrides how clients connect to the server.
	Dial func(ctx context.Context, addr string) (net.Conn, error)
}

// Bot runs a client for the current config and
// restarts it when the config is updated.
type Bot struct {
	log   logr.Logger
	event event.Manager
	dial  func(ctx context.Context, addr string) (net.Conn, error)

	mu      sync.Mutex // protects following fields
	cfg     *Config
	restart context.CancelFunc
}

// New returns a new Bot. The given Options requires a validated Config.
func New(options Options) (*Bot, error) {
	if options.Config == nil {
		return nil, errs.ErrMissingConfig
	}
	mgr := options.Event
	if mgr == nil {
		mgr = event.New()
	}
	return &Bot{
		log:   options.Logger.WithName("bot"),
		event: mgr,
		dial:  options.Dial,
		cfg:   options.Config,
	}, nil
}

// Event returns the event manager of the bot.
func (b *Bot) Event() event.Manager { return b.event }

// Config returns the current config.
func (b *Bot) Config() *Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

var errRestart = errors.New("config updated")

// Start runs the client until ctx is canceled or
// the client stops without a config update.
func (b *Bot) Start(ctx context.Context) error {
	unsubscribe := reload.Subscribe(b.event, b.onConfigUpdate)
	defer unsubscribe()

	for {
		runCtx, cancel := context.WithCancelCause(ctx)
		b.mu.Lock()
		cfg := b.cfg
		b.restart = func() { cancel(errRestart) }
		b.mu.Unlock()

		err := b.run(runCtx, cfg)
		restarted := errors.Is(context.Cause(runCtx), errRestart)
		cancel(nil)
		if ctx.Err() != nil {
			return nil
		}
		if !restarted {
			return err
		}
		b.log.Info("restarting client with updated config")
	}
}

func (b *Bot) run(ctx context.Context, cfg *Config) error {
	c, err := client.New(client.Options{
		Config: &cfg.Java,
		Event:  b.event,
		Logger: b.log,
		Dial:   b.dial,
	})
	if err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}
	defer func() { _ = c.Close() }()
	return c.Run(logr.NewContext(ctx, b.log))
}

func (b *Bot) onConfigUpdate(e *reload.ConfigUpdateEvent[Config]) {
	if e.Config == nil {
		return
	}
	b.mu.Lock()
	b.cfg = e.Config
	restart := b.restart
	b.mu.Unlock()
	if restart != nil {
		restart()
	}
}
