package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// ErrCryptoFailure is returned when the key exchange can not be completed.
var ErrCryptoFailure = errors.New("crypto failure")

// SharedSecretLength is the length of the AES key the client chooses.
const SharedSecretLength = 16

// GenerateSharedSecret reads a new random shared secret from rnd.
// If rnd is nil crypto/rand is used.
func GenerateSharedSecret(rnd io.Reader) ([]byte, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	secret := make([]byte, SharedSecretLength)
	if _, err := io.ReadFull(rnd, secret); err != nil {
		return nil, fmt.Errorf("%w: error generating shared secret: %w", ErrCryptoFailure, err)
	}
	return secret, nil
}

// EncryptWithPublicKey encrypts each of data with the PKIX, ASN.1 DER
// encoded RSA public key der using PKCS #1 v1.5.
func EncryptWithPublicKey(der []byte, data ...[]byte) ([][]byte, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing server public key: %w", ErrCryptoFailure, err)
	}
	public, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: server public key is %T, not RSA", ErrCryptoFailure, key)
	}
	encrypted := make([][]byte, len(data))
	for i, d := range data {
		encrypted[i], err = rsa.EncryptPKCS1v15(rand.Reader, public, d)
		if err != nil {
			return nil, fmt.Errorf("%w: error encrypting: %w", ErrCryptoFailure, err)
		}
	}
	return encrypted, nil
}

// RespondEncryption creates the response to an encryption request:
// a new shared secret and the secret and verify token encrypted with the
// server's public key. The returned secret enables encryption once the
// response is sent.
func RespondEncryption(rnd io.Reader, req *packet.EncryptionRequest) (res *packet.EncryptionResponse, secret []byte, err error) {
	secret, err = GenerateSharedSecret(rnd)
	if err != nil {
		return nil, nil, err
	}
	encrypted, err := EncryptWithPublicKey(req.PublicKey, secret, req.VerifyToken)
	if err != nil {
		return nil, nil, err
	}
	return &packet.EncryptionResponse{
		SharedSecret: encrypted[0],
		VerifyToken:  encrypted[1],
	}, secret, nil
}

// GenerateServerID returns the hash identifying a join at the session server.
// It is the SHA-1 of serverID, the shared secret and the server's public key
// formatted as a signed hexadecimal number without leading zeros.
func GenerateServerID(serverID string, secret, publicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(secret)
	h.Write(publicKey)
	return hexDigest(h.Sum(nil))
}

func hexDigest(hash []byte) string {
	var s strings.Builder
	// Check for negative hash
	if (hash[0] & 0x80) == 0x80 {
		hash = twosComplement(hash)
		s.WriteRune('-')
	}
	digits := strings.TrimLeft(hex.EncodeToString(hash), "0")
	if digits == "" {
		return "0"
	}
	s.WriteString(digits)
	return s.String()
}

// big endian!
func twosComplement(p []byte) []byte {
	carry := true
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = ^p[i]
		if carry {
			carry = p[i] == 0xff
			p[i]++
		}
	}
	return p
}
