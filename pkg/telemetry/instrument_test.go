package telemetry

import (
	"testing"

	"github.com/robinbraemer/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/bot/pkg/edition/java/chunk"
	"go.minekube.com/bot/pkg/edition/java/client"
	"go.minekube.com/bot/pkg/util/profile"
)

func TestInstrumentationOnline(t *testing.T) {
	i, err := New()
	require.NoError(t, err)

	mgr := event.New()
	unsubscribe := i.Subscribe(mgr)

	a, b := new(client.Session), new(client.Session)
	mgr.Fire(&client.LoginEvent{Session: a, Profile: profile.NewOffline("a")})
	mgr.Fire(&client.LoginEvent{Session: b, Profile: profile.NewOffline("b")})
	assert.Equal(t, int64(2), i.Online())

	mgr.Fire(&client.ChatEvent{Session: a, Message: &component.Text{Content: "hi"}})
	mgr.Fire(&client.ChunksEvent{Session: a, Columns: make([]chunk.Column, 3)})

	mgr.Fire(&client.DisconnectEvent{Session: a, Reason: &component.Text{Content: "kicked"}})
	mgr.Fire(&client.DisconnectEvent{Session: a})
	assert.Equal(t, int64(1), i.Online())

	// Sessions that never logged in are not counted.
	mgr.Fire(&client.DisconnectEvent{Session: new(client.Session)})
	assert.Equal(t, int64(1), i.Online())

	unsubscribe()
	mgr.Fire(&client.DisconnectEvent{Session: b})
	assert.Equal(t, int64(1), i.Online())
}

func TestEnabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	assert.False(t, Enabled())
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "localhost:4317")
	assert.True(t, Enabled())
}
