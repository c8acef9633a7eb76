package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"go.minekube.com/bot/pkg/configs"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/codec"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/version"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := App()
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"bot"}, args...))
	return out.String(), err
}

func TestAppFlags(t *testing.T) {
	app := App()
	assert.Equal(t, version.String(), app.Version)

	flags := make(map[string]bool)
	for _, flag := range append(app.Flags, cli.VersionFlag) {
		for _, name := range flag.Names() {
			assert.False(t, flags[name], "flag conflict: %s", name)
			flags[name] = true
		}
	}
	for _, name := range []string{"config", "c", "debug", "d", "verbosity", "v", "version", "V"} {
		assert.True(t, flags[name], "missing flag %s", name)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runApp(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version.String())
}

func TestConfigCommand(t *testing.T) {
	out, err := runApp(t, "config")
	require.NoError(t, err)
	assert.Equal(t, string(configs.DefaultConfigBytes), out)
}

func TestConfigCommandWrite(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runApp(t, "config", "--write")
	require.NoError(t, err)
	b, err := os.ReadFile("config.yml")
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultConfigBytes, b)

	_, err = runApp(t, "config", "--write")
	assert.Error(t, err)
}

func TestNewViperEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BOT_JAVA_ADDR", "env.example.com:25570")
	t.Setenv("BOT_JAVA_AUTH_ACCESSTOKEN", "secret")

	_, cfg, err := loadConfig(logr.Discard(), "")
	require.NoError(t, err)
	assert.Equal(t, "env.example.com:25570", cfg.Java.Addr)
	assert.Equal(t, "secret", cfg.Java.Auth.AccessToken)
}

func TestNewViperMissingExplicitConfig(t *testing.T) {
	_, err := newViper(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yml")
	require.NoError(t, os.WriteFile(path, []byte("java:\n  username: Alex\n"), 0o644))
	_, cfg, err := loadConfig(logr.Discard(), path)
	require.NoError(t, err)
	assert.Equal(t, "Alex", cfg.Java.Username)
}

func TestQueryCommandRequiresAddress(t *testing.T) {
	_, err := runApp(t, "query")
	assert.Error(t, err)
}

// statusServer answers a single status ping.
func statusServer(t *testing.T) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		dec := codec.NewDecoder(conn, proto.ServerBound, logr.Discard())
		enc := codec.NewEncoder(conn, proto.ClientBound, logr.Discard())
		if _, err = dec.Decode(); err != nil { // handshake
			return
		}
		dec.SetState(state.Status)
		enc.SetState(state.Status)
		if _, err = dec.Decode(); err != nil { // request
			return
		}
		status, _ := json.Marshal(map[string]any{
			"version":     map[string]any{"name": "1.7.10", "protocol": 5},
			"players":     map[string]any{"online": 3, "max": 20},
			"description": "A Minecraft Server",
		})
		_, _ = enc.WritePacket(&packet.StatusResponse{Status: string(status)})
		pc, err := dec.Decode()
		if err != nil {
			return
		}
		_, _ = enc.WritePacket(pc.Packet)
	}()
	return ln.Addr().String()
}

func TestStatusCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	addr := statusServer(t)
	out, err := runApp(t, "status", addr)
	require.NoError(t, err)
	assert.Contains(t, out, "1.7.10 (protocol 5)")
	assert.Contains(t, out, "3/20")
	assert.Contains(t, out, "A Minecraft Server")
}

func TestStatusCommandJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	addr := statusServer(t)
	out, err := runApp(t, "status", "--json", addr)
	require.NoError(t, err)
	assert.Contains(t, out, `"protocol":5`)
}
