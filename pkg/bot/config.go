package bot

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"

	jconfig "go.minekube.com/bot/pkg/edition/java/config"
	"go.minekube.com/bot/pkg/util/configutil"
)

// DefaultConfig is a default Config.
var DefaultConfig = Config{
	Java: jconfig.DefaultConfig,
}

// Config is the root configuration of the bot
// for reading in files and environment variables with Viper.
type Config struct {
	// Java edition client config.
	Java jconfig.Config `json:"java" yaml:"java"`
}

// SetDefaults sets Config defaults to use with Viper.
func SetDefaults(i configutil.SetDefault) {
	jconfig.SetDefaults(configutil.Prefix(i, "java"))
}

// Validate validates the Config.
func (c *Config) Validate() (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	if c == nil {
		e("config must not be nil")
		return
	}
	w, es := c.Java.Validate()
	for _, err := range w {
		warns = append(warns, fmt.Errorf("java: %w", err))
	}
	for _, err := range es {
		errs = append(errs, fmt.Errorf("java: %w", err))
	}
	return
}

// LoadConfig unmarshals the Config from v and validates it.
// Warnings are logged, errors are returned.
func LoadConfig(v *viper.Viper, log logr.Logger) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	warns, errs := cfg.Validate()
	for _, w := range warns {
		log.Info("config validation warning", "warning", w)
	}
	if len(errs) != 0 {
		return nil, &InvalidConfigError{Errs: errs}
	}
	return &cfg, nil
}

// InvalidConfigError is returned for a Config with validation errors.
type InvalidConfigError struct {
	Errs []error
}

func (e *InvalidConfigError) Error() string {
	if len(e.Errs) == 1 {
		return fmt.Sprintf("invalid config: %v", e.Errs[0])
	}
	return fmt.Sprintf("invalid config: %v (and %d more errors)", e.Errs[0], len(e.Errs)-1)
}
