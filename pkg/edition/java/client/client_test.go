package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/klauspost/compress/zlib"
	"github.com/robinbraemer/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/bot/pkg/edition/java/auth"
	"go.minekube.com/bot/pkg/edition/java/chunk"
	"go.minekube.com/bot/pkg/edition/java/config"
	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/codec"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
	"go.minekube.com/bot/pkg/edition/java/proto/state"
	"go.minekube.com/bot/pkg/util/componentutil"
)

const testUUID = "069a79f4-44e9-4726-a5be-fca90e38aaf5"

// server is the test peer speaking the server side of the protocol.
type server struct {
	t   *testing.T
	c   net.Conn
	dec *codec.Decoder
	enc *codec.Encoder
}

func newServer(t *testing.T, c net.Conn) *server {
	_ = c.SetDeadline(time.Now().Add(10 * time.Second))
	return &server{
		t:   t,
		c:   c,
		dec: codec.NewDecoder(c, proto.ServerBound, logr.Discard()),
		enc: codec.NewEncoder(c, proto.ClientBound, logr.Discard()),
	}
}

func (s *server) setState(r *state.Registry) {
	s.dec.SetState(r)
	s.enc.SetState(r)
}

func (s *server) read() packet.Packet {
	ctx, err := s.dec.Decode()
	require.NoError(s.t, err)
	return ctx.Packet
}

func (s *server) write(p packet.Packet) {
	_, err := s.enc.WritePacket(p)
	require.NoError(s.t, err)
}

func (s *server) encrypt(secret []byte) {
	r, err := codec.NewDecryptReader(s.c, secret)
	require.NoError(s.t, err)
	w, err := codec.NewEncryptWriter(s.c, secret)
	require.NoError(s.t, err)
	s.dec.SetReader(r)
	s.enc.SetWriter(w)
}

// acceptLogin reads the handshake and login start.
func (s *server) acceptLogin(username string) {
	hs, ok := s.read().(*packet.Handshake)
	require.True(s.t, ok)
	assert.Equal(s.t, 5, hs.ProtocolVersion)
	assert.Equal(s.t, "example.com", hs.ServerAddress)
	assert.Equal(s.t, uint16(25566), hs.Port)
	assert.Equal(s.t, packet.NextStateLogin, hs.NextState)
	s.setState(state.Login)

	ls, ok := s.read().(*packet.LoginStart)
	require.True(s.t, ok)
	assert.Equal(s.t, username, ls.Username)
}

func (s *server) loginSuccess() {
	s.write(&packet.LoginSuccess{UUID: testUUID, Username: "bot"})
	s.setState(state.Play)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig
	cfg.Addr = "example.com:25566"
	cfg.Movement.Enabled = false
	cfg.Chunks.Decompress = false
	return &cfg
}

// connect returns a connected session and the server side of it.
func connect(t *testing.T, cfg *config.Config, mgr event.Manager, opts ...func(*Options)) (*Session, *server) {
	a, b := net.Pipe()
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })

	o := Options{
		Config: cfg,
		Event:  mgr,
		Dial: func(ctx context.Context, addr string) (net.Conn, error) {
			assert.Equal(t, cfg.Addr, addr)
			return a, nil
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	c, err := New(o)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	type result struct {
		s   *Session
		err error
	}
	results := make(chan result, 1)
	go func() {
		s, err := c.Connect(ctx)
		results <- result{s, err}
	}()

	srv := newServer(t, b)
	srv.acceptLogin(cfg.Username)
	r := <-results
	require.NoError(t, r.err)
	return r.s, srv
}

// subscribe returns a channel receiving events of type T.
func subscribe[T any](mgr event.Manager) <-chan *T {
	ch := make(chan *T, 16)
	event.Subscribe(mgr, 0, func(e *T) { ch <- e })
	return ch
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	var zero T
	return zero
}

func TestClientOfflineLogin(t *testing.T) {
	mgr := event.New()
	logins := subscribe[LoginEvent](mgr)
	joins := subscribe[JoinGameEvent](mgr)
	chats := subscribe[ChatEvent](mgr)
	disconnects := subscribe[DisconnectEvent](mgr)

	cfg := testConfig()
	s, srv := connect(t, cfg, mgr)

	srv.loginSuccess()
	login := receive(t, logins)
	assert.Equal(t, "bot", login.Profile.Name)
	assert.Equal(t, testUUID, login.Profile.Id.String())
	assert.Equal(t, login.Profile, s.Profile())

	srv.write(&packet.JoinGame{EntityID: 42, Gamemode: 1, LevelType: "default"})
	settings, ok := srv.read().(*packet.ClientSettings)
	require.True(t, ok)
	assert.Equal(t, "en_US", settings.Locale)
	assert.Equal(t, int8(2), settings.ViewDistance)
	assert.True(t, settings.ChatColors)
	assert.Equal(t, &packet.ClientStatus{Action: packet.ClientStatusRespawn}, srv.read())
	assert.Equal(t, int32(42), receive(t, joins).EntityID)
	id, ok := s.Conn().EntityID()
	assert.True(t, ok)
	assert.Equal(t, int32(42), id)

	srv.write(&packet.KeepAlive{ID: 1234})
	assert.Equal(t, &packet.KeepAlive{ID: 1234}, srv.read())

	srv.write(&packet.Chat{Message: `{"text":"hello ","extra":[{"text":"world"}]}`})
	assert.Equal(t, "hello world", componentutil.PlainText(receive(t, chats).Message))

	srv.write(&packet.UpdateHealth{Health: 0})
	assert.Equal(t, &packet.ClientStatus{Action: packet.ClientStatusRespawn}, srv.read())

	srv.write(&packet.SpawnPosition{X: 1, Y: 64, Z: -3})
	require.NoError(t, s.Chat("/help"))
	assert.Equal(t, &packet.Chat{Message: "/help"}, srv.read())
	assert.Eventually(t, func() bool { return s.Spawn() != nil }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, &Spawn{X: 1, Y: 64, Z: -3}, s.Spawn())

	srv.write(&packet.Disconnect{Reason: `{"text":"bye"}`})
	err := s.Wait()
	var de *DisconnectError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "bye", componentutil.PlainText(de.Reason))
	assert.Equal(t, "bye", componentutil.PlainText(receive(t, disconnects).Reason))
}

func TestClientLoginDisconnect(t *testing.T) {
	s, srv := connect(t, testConfig(), nil)
	srv.write(&packet.Disconnect{Reason: `"You are banned"`})
	var de *DisconnectError
	require.ErrorAs(t, s.Wait(), &de)
	assert.Equal(t, "disconnected by server: You are banned", de.Error())
}

func TestClientConnectionLost(t *testing.T) {
	s, srv := connect(t, testConfig(), nil)
	require.NoError(t, srv.c.Close())
	assert.ErrorIs(t, s.Wait(), ErrConnectionLost)
}

func TestClientClose(t *testing.T) {
	s, _ := connect(t, testConfig(), nil)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Wait())
	select {
	case <-s.Done():
	default:
		t.Fatal("session not done")
	}
}

func TestClientChatTooLong(t *testing.T) {
	s, _ := connect(t, testConfig(), nil)
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, s.Chat(string(long)))
}

// encryptionServer answers the encryption request like a server.
func encryptionServer(t *testing.T, srv *server, serverID string) (secret, der []byte) {
	private, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err = x509.MarshalPKIXPublicKey(private.Public())
	require.NoError(t, err)

	token := []byte{1, 2, 3, 4}
	srv.write(&packet.EncryptionRequest{ServerID: serverID, PublicKey: der, VerifyToken: token})
	res, ok := srv.read().(*packet.EncryptionResponse)
	require.True(t, ok)

	secret, err = rsa.DecryptPKCS1v15(rand.Reader, private, res.SharedSecret)
	require.NoError(t, err)
	gotToken, err := rsa.DecryptPKCS1v15(rand.Reader, private, res.VerifyToken)
	require.NoError(t, err)
	assert.Equal(t, token, gotToken)
	srv.encrypt(secret)
	return secret, der
}

func sessionServer(t *testing.T, status int, joins chan<- auth.JoinRequest) func(*Options) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session/minecraft/join", r.URL.Path)
		var req auth.JoinRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		joins <- req
		w.WriteHeader(status)
	}))
	t.Cleanup(hs.Close)
	u, err := url.Parse(hs.URL + "/session/minecraft")
	require.NoError(t, err)
	a, err := auth.New(auth.Options{SessionServerURL: u})
	require.NoError(t, err)
	return func(o *Options) { o.Authenticator = a }
}

func onlineConfig() *config.Config {
	cfg := testConfig()
	cfg.Auth.OnlineMode = true
	cfg.Auth.AccessToken = "token"
	cfg.Auth.ProfileID = testUUID
	return cfg
}

func TestClientOnlineLogin(t *testing.T) {
	mgr := event.New()
	logins := subscribe[LoginEvent](mgr)
	joins := make(chan auth.JoinRequest, 1)

	s, srv := connect(t, onlineConfig(), mgr, sessionServer(t, http.StatusNoContent, joins))
	secret, der := encryptionServer(t, srv, "")

	join := receive(t, joins)
	assert.Equal(t, "token", join.AccessToken)
	assert.Equal(t, "069a79f444e94726a5befca90e38aaf5", join.SelectedProfile)
	assert.Equal(t, auth.GenerateServerID("", secret, der), join.ServerID)

	srv.loginSuccess()
	receive(t, logins)
	assert.True(t, s.Conn().Encrypted())

	srv.write(&packet.KeepAlive{ID: 7})
	assert.Equal(t, &packet.KeepAlive{ID: 7}, srv.read())
}

func TestClientJoinFailureAborts(t *testing.T) {
	joins := make(chan auth.JoinRequest, 1)
	s, srv := connect(t, onlineConfig(), nil, sessionServer(t, http.StatusForbidden, joins))
	encryptionServer(t, srv, "")
	receive(t, joins)

	err := s.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "joining session server")
}

func TestClientOfflineServerSkipsJoin(t *testing.T) {
	mgr := event.New()
	logins := subscribe[LoginEvent](mgr)
	joins := make(chan auth.JoinRequest, 1)

	_, srv := connect(t, onlineConfig(), mgr, sessionServer(t, http.StatusNoContent, joins))
	encryptionServer(t, srv, auth.OfflineServerID)
	srv.loginSuccess()
	receive(t, logins)
	assert.Empty(t, joins)
}

func TestClientPositionAndMover(t *testing.T) {
	cfg := testConfig()
	cfg.Movement.Enabled = true
	cfg.Movement.Interval = 10 * time.Millisecond
	s, srv := connect(t, cfg, nil)
	srv.loginSuccess()

	srv.write(&packet.PlayerPosLook{X: 10, Y: 65.62, Z: -4, Yaw: 90, OnGround: true})
	echo, ok := srv.read().(*packet.ClientPosLook)
	require.True(t, ok)
	assert.Equal(t, 10.0, echo.X)
	assert.InDelta(t, 64, echo.FeetY, 1e-9)
	assert.InDelta(t, 65.62, echo.HeadY, 1e-9)
	assert.Equal(t, float32(90), echo.Yaw)

	for range 3 {
		step, ok := srv.read().(*packet.ClientPosLook)
		require.True(t, ok)
		assert.InDelta(t, 64, step.FeetY, 1e-9)
		assert.InDelta(t, 10, step.X, 2*cfg.Movement.Radius)
		assert.InDelta(t, -4, step.Z, cfg.Movement.Radius)
		assert.True(t, step.OnGround)
	}

	pos, ok := s.Position()
	assert.True(t, ok)
	assert.InDelta(t, 64, pos.Y, 1e-9)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Wait())
}

func TestClientForgeHandshake(t *testing.T) {
	cfg := testConfig()
	cfg.Forge.ReplyHandshake = true
	_, srv := connect(t, cfg, nil)
	srv.loginSuccess()

	srv.write(&packet.PluginMessage{Channel: "FML|HS", Data: []byte{0x00, 0x02}})
	assert.Equal(t, &packet.PluginMessage{Channel: "FML|HS", Data: []byte{0x00}}, srv.read())
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNewInvalidProfileID(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.ProfileID = "nope"
	_, err := New(Options{Config: cfg})
	assert.Error(t, err)
}

func TestMoverCircle(t *testing.T) {
	start := Position{X: 0, Y: 64, Z: 0}
	m := &mover{center: start, radius: 5}
	for range 200 {
		p := m.next()
		// Distance to the circle center at (-radius, 0).
		dx, dz := p.X+5, p.Z
		assert.InDelta(t, 25, dx*dx+dz*dz, 1e-6)
		assert.Equal(t, 64.0, p.Y)
	}
}

func TestRunWithoutReconnect(t *testing.T) {
	cfg := testConfig()
	a, b := net.Pipe()
	defer b.Close()
	c, err := New(Options{
		Config: cfg,
		Dial: func(context.Context, string) (net.Conn, error) {
			return a, nil
		},
	})
	require.NoError(t, err)
	defer c.Close()

	errc := make(chan error, 1)
	go func() { errc <- c.Run(context.Background()) }()

	srv := newServer(t, b)
	srv.acceptLogin(cfg.Username)
	srv.write(&packet.Disconnect{Reason: `"maintenance"`})

	var de *DisconnectError
	require.ErrorAs(t, receive(t, errc), &de)
}

func compressChunks(t *testing.T, size int) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(make([]byte, size))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func chunkConfig() *config.Config {
	cfg := testConfig()
	cfg.Chunks.Decompress = true
	cfg.Chunks.Workers = 2
	return cfg
}

func TestClientChunkBulk(t *testing.T) {
	mgr := event.New()
	chunks := subscribe[ChunksEvent](mgr)
	s, srv := connect(t, chunkConfig(), mgr)
	srv.loginSuccess()

	size := chunk.ColumnSize(1, 0, true)
	require.Equal(t, 10496, size)
	srv.write(&packet.MapChunkBulk{
		SkyLight: true,
		Data:     compressChunks(t, 2*size),
		Meta: []packet.ChunkMeta{
			{X: 0, Z: 0, PrimaryBitMask: 1},
			{X: 1, Z: -1, PrimaryBitMask: 1},
		},
	})
	e := receive(t, chunks)
	assert.Same(t, s, e.Session)
	require.Len(t, e.Columns, 2)
	assert.Equal(t, int32(1), e.Columns[1].X)
	assert.Equal(t, int32(-1), e.Columns[1].Z)
	assert.Len(t, e.Columns[1].Data, size)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Wait())
}

func TestClientTruncatedChunksAbort(t *testing.T) {
	s, srv := connect(t, chunkConfig(), nil)
	srv.loginSuccess()

	srv.write(&packet.MapChunkBulk{
		SkyLight: true,
		Data:     compressChunks(t, 0),
		Meta:     []packet.ChunkMeta{{PrimaryBitMask: 1}},
	})
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session not closed")
	}
	assert.ErrorIs(t, s.Wait(), chunk.ErrTruncatedChunkData)
}
