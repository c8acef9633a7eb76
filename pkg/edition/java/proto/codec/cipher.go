package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	cfb8 "github.com/Tnze/go-mc/net/CFB8"
)

// SecretLength is the length of the shared secret in bytes.
const SecretLength = 16

// NewDecryptReader returns a reader decrypting r with AES/CFB8
// using secret as both key and initialization vector.
func NewDecryptReader(r io.Reader, secret []byte) (reader io.Reader, err error) {
	cfb, err := newCFB8FromSecret(secret, true)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamReader{S: cfb, R: r}, nil
}

// NewEncryptWriter returns a writer encrypting to w with AES/CFB8
// using secret as both key and initialization vector.
func NewEncryptWriter(w io.Writer, secret []byte) (wr io.Writer, err error) {
	cfb, err := newCFB8FromSecret(secret, false)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamWriter{S: cfb, W: w}, nil
}

func newCFB8FromSecret(secret []byte, decrypt bool) (cipher.Stream, error) {
	if len(secret) != SecretLength {
		return nil, fmt.Errorf("shared secret must be %d bytes, got %d", SecretLength, len(secret))
	}
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	// The cipher keeps its own copy of the IV.
	iv := append([]byte(nil), secret...)
	if decrypt {
		return cfb8.NewCFB8Decrypt(block, iv), nil
	}
	return cfb8.NewCFB8Encrypt(block, iv), nil
}
