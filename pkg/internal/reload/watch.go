package reload

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/knadh/koanf/providers/file"
	"github.com/robinbraemer/event"
)

// DebounceDuration is the time to wait for more writes to the
// file before the config is reloaded.
var DebounceDuration = 100 * time.Millisecond

// Watch calls load whenever the file at path changed until ctx is canceled.
// Bursts of writes are debounced to a single call.
func Watch(ctx context.Context, path string, load func() error) error {
	if ctx.Err() != nil {
		return nil
	}
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return file.Provider(path).Watch(func(_ any, err error) {
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Info("failed watching config", "error", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(DebounceDuration, func() {
			mu.Lock()
			defer mu.Unlock()
			if ctx.Err() != nil {
				return
			}

			log.Info("auto-reloading config")
			start := time.Now()
			if err := load(); err != nil {
				log.Info("failed to reload config", "error", err)
				return
			}
			log.Info("reloaded config successfully",
				"duration", time.Since(start).Round(time.Millisecond).String())
		})
	})
}

// WatchConfig reloads the config at path with load and
// fires a ConfigUpdateEvent for every successfully loaded config.
func WatchConfig[T any](ctx context.Context, mgr event.Manager, path string, load func() (*T, error)) error {
	return Watch(ctx, path, func() error {
		cfg, err := load()
		if err != nil {
			return err
		}
		FireConfigUpdate(mgr, cfg)
		return nil
	})
}
