// Package reload watches the config file and announces updated configs.
package reload

import (
	"github.com/robinbraemer/event"
)

// ConfigUpdateEvent is fired when the config file changed
// and the new config was loaded successfully.
type ConfigUpdateEvent[T any] struct {
	// Config is the new config.
	Config *T
}

// Subscribe subscribes handler to updates of config type T.
func Subscribe[T any](mgr event.Manager, handler func(*ConfigUpdateEvent[T])) func() {
	return event.Subscribe(mgr, 0, handler)
}

// FireConfigUpdate fires the config update event.
func FireConfigUpdate[T any](mgr event.Manager, config *T) {
	mgr.Fire(&ConfigUpdateEvent[T]{Config: config})
}
