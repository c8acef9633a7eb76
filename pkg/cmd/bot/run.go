package bot

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"
	"github.com/urfave/cli/v2"

	"go.minekube.com/bot/pkg/bot"
	"go.minekube.com/bot/pkg/edition/java/client"
	"go.minekube.com/bot/pkg/internal/reload"
	"go.minekube.com/bot/pkg/telemetry"
	"go.minekube.com/bot/pkg/util/componentutil"
)

func runCommand(configFile *string) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Connect to the configured server and stay online",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Reconnect with the new config when the config file changes",
				EnvVars: []string{"BOT_WATCH"},
			},
			&cli.BoolFlag{
				Name:    "reconnect",
				Aliases: []string{"r"},
				Usage:   "Connect again when the session ends, overrides java.reconnect.enabled",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			log := logr.FromContextOrDiscard(ctx)

			v, cfg, err := loadConfig(log, *configFile)
			if err != nil {
				return cli.Exit(err, 1)
			}

			if c.Bool("reconnect") {
				v.Set("java.reconnect.enabled", true)
				cfg.Java.Reconnect.Enabled = true
			}

			if telemetry.Enabled() {
				shutdown, err := telemetry.Init()
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer shutdown()
			}

			mgr := event.New()
			instr, err := telemetry.New()
			if err != nil {
				return cli.Exit(fmt.Errorf("error creating instruments: %w", err), 1)
			}
			defer instr.Subscribe(mgr)()
			defer logChat(log.WithName("chat"), mgr)()

			if c.Bool("watch") && v.ConfigFileUsed() != "" && fileExists(v.ConfigFileUsed()) {
				path := v.ConfigFileUsed()
				err = reload.WatchConfig(ctx, mgr, path, func() (*bot.Config, error) {
					if err := v.ReadInConfig(); err != nil {
						return nil, err
					}
					return bot.LoadConfig(v, log)
				})
				if err != nil {
					return cli.Exit(fmt.Errorf("error watching config file %q: %w", path, err), 1)
				}
				log.Info("watching config file for changes", "path", path)
			}

			b, err := bot.New(bot.Options{
				Config: cfg,
				Logger: log,
				Event:  mgr,
			})
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err = b.Start(ctx); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

// logChat logs received chat messages as plain text.
func logChat(log logr.Logger, mgr event.Manager) (unsubscribe func()) {
	return event.Subscribe(mgr, 0, func(e *client.ChatEvent) {
		log.Info(componentutil.PlainText(e.Message), "type", "chat")
	})
}
