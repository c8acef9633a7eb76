package auth

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

func TestGenerateServerID(t *testing.T) {
	for _, e := range []struct {
		name, expected string
	}{
		{name: "Notch", expected: "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{name: "jeb_", expected: "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{name: "simon", expected: "88e16a1019277b15d58faf0541e11910eb756f6"},
	} {
		require.Equal(t, e.expected, GenerateServerID(e.name, nil, nil))
	}
}

func TestHexDigest(t *testing.T) {
	assert.Equal(t, "0", hexDigest(make([]byte, 20)))
	assert.Equal(t, "1", hexDigest(append(make([]byte, 19), 1)))
	minusOne := bytes.Repeat([]byte{0xff}, 20)
	assert.Equal(t, "-1", hexDigest(minusOne))
}

// The server id concatenates server id, secret and key.
func TestGenerateServerIDParts(t *testing.T) {
	assert.Equal(t,
		GenerateServerID("ab", []byte("cd"), []byte("ef")),
		GenerateServerID("", nil, []byte("abcdef")))
}

func TestGenerateSharedSecret(t *testing.T) {
	s, err := GenerateSharedSecret(nil)
	require.NoError(t, err)
	assert.Len(t, s, SharedSecretLength)

	_, err = GenerateSharedSecret(bytes.NewReader([]byte{1, 2, 3}))
	require.ErrorIs(t, err, ErrCryptoFailure)
}

func TestRespondEncryption(t *testing.T) {
	private, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(private.Public())
	require.NoError(t, err)

	req := &packet.EncryptionRequest{ServerID: "", PublicKey: der, VerifyToken: []byte{9, 8, 7, 6}}
	res, secret, err := RespondEncryption(nil, req)
	require.NoError(t, err)
	assert.Len(t, secret, SharedSecretLength)

	gotSecret, err := rsa.DecryptPKCS1v15(rand.Reader, private, res.SharedSecret)
	require.NoError(t, err)
	assert.Equal(t, secret, gotSecret)

	gotToken, err := rsa.DecryptPKCS1v15(rand.Reader, private, res.VerifyToken)
	require.NoError(t, err)
	assert.Equal(t, req.VerifyToken, gotToken)
}

func TestEncryptWithPublicKeyInvalid(t *testing.T) {
	_, err := EncryptWithPublicKey([]byte("not a key"), []byte("x"))
	require.ErrorIs(t, err, ErrCryptoFailure)
}

func newTestAuthenticator(t *testing.T, h http.HandlerFunc) *Authenticator {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL + "/session/minecraft")
	require.NoError(t, err)
	a, err := New(Options{SessionServerURL: u})
	require.NoError(t, err)
	return a
}

func TestJoin(t *testing.T) {
	want := JoinRequest{
		AccessToken:     "token",
		SelectedProfile: "069a79f444e94726a5befca90e38aaf5",
		ServerID:        "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1",
	}
	a := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/session/minecraft/join", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Minekube-Bot/")
		var got JoinRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, want, got)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, a.Join(context.Background(), want))
}

func TestJoinRejected(t *testing.T) {
	a := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"ForbiddenOperationException","errorMessage":"Invalid token"}`))
	})
	err := a.Join(context.Background(), JoinRequest{})
	require.Error(t, err)
	var joinErr *JoinError
	require.True(t, errors.As(err, &joinErr))
	assert.Equal(t, http.StatusForbidden, joinErr.StatusCode)
	assert.Equal(t, "Invalid token", joinErr.ErrorMessage)
}
