// Package bot is the command line interface of the bot.
package bot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/gookit/color"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.minekube.com/bot/pkg/bot"
	"go.minekube.com/bot/pkg/util/interrupt"
	"go.minekube.com/bot/pkg/version"
)

// Main runs the bot command line app and exits on error.
func Main() {
	if err := App().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.Red.Sprint(err))
		os.Exit(1)
	}
}

// App returns the bot command line app.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "bot"
	app.Usage = "A Minecraft 1.7 bot client."
	app.Description = `A bot that logs into Minecraft servers speaking protocol version 5 (1.7.6 to 1.7.10).

Every config option can also be set by environment variables
prefixed with BOT_, e.g. BOT_JAVA_ADDR=play.example.com:25565.`
	app.Version = version.String()
	// -v is the verbosity flag.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
	app.EnableBashCompletion = true

	var (
		configFile string
		debug      bool
		verbosity  int
		stop       = func() {}
	)
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       `config file (default: ./config.yml)`,
			EnvVars:     []string{"BOT_CONFIG"},
			Destination: &configFile,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "Enable debug mode and highest log verbosity",
			EnvVars:     []string{"BOT_DEBUG"},
			Destination: &debug,
		},
		&cli.IntFlag{
			Name:        "verbosity",
			Aliases:     []string{"v"},
			Usage:       "The higher the verbosity the more logs are shown",
			EnvVars:     []string{"BOT_VERBOSITY"},
			Destination: &verbosity,
		},
	}
	app.Before = func(c *cli.Context) error {
		if debug {
			verbosity = 2
		}
		log, err := newLogger(debug, verbosity)
		if err != nil {
			return cli.Exit(fmt.Errorf("error creating zap logger: %w", err), 1)
		}
		c.Context, stop = interrupt.TerminationContext(logr.NewContext(c.Context, log))
		return nil
	}
	app.After = func(*cli.Context) error {
		stop()
		return nil
	}
	app.Commands = []*cli.Command{
		runCommand(&configFile),
		statusCommand(&configFile),
		queryCommand(),
		configCommand(),
	}
	app.DefaultCommand = "run"
	return app
}

// newLogger returns a colored console logger.
// Higher verbosity enables more V(n) logs.
func newLogger(debug bool, verbosity int) (logr.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !debug

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// newViper returns a viper instance with the bot defaults,
// environment variables and the config file.
// A missing config file is only an error if it was set explicitly.
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	bot.SetDefaults(v)
	v.SetEnvPrefix("BOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	explicit := configFile != ""
	if !explicit {
		configFile = "config.yml"
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %q: %w", configFile, err)
		}
	}
	return v, nil
}

// loadConfig reads and validates the config.
func loadConfig(log logr.Logger, configFile string) (*viper.Viper, *bot.Config, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, nil, err
	}
	if used := v.ConfigFileUsed(); used != "" && fileExists(used) {
		log.Info("using config file", "config", used)
	}
	cfg, err := bot.LoadConfig(v, log)
	if err != nil {
		return nil, nil, err
	}
	return v, cfg, nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
