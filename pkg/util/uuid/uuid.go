// Package uuid wraps github.com/google/uuid with the encodings used by the
// Minecraft protocol and the session server.
package uuid

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	guuid "github.com/google/uuid"
)

type UUID guuid.UUID

// Nil is the empty UUID, all zeros.
var Nil = UUID(guuid.Nil)

// String returns the dashed form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (i UUID) String() string {
	return guuid.UUID(i).String()
}

// Undashed returns the undashed form used by the session server.
func (i UUID) Undashed() string {
	return hex.EncodeToString(i[:])
}

// Halves returns the most and least significant 64 bits.
func (i UUID) Halves() (msb, lsb uint64) {
	return binary.BigEndian.Uint64(i[:8]), binary.BigEndian.Uint64(i[8:])
}

// FromHalves builds a UUID from its most and least significant 64 bits.
func FromHalves(msb, lsb uint64) (id UUID) {
	binary.BigEndian.PutUint64(id[:8], msb)
	binary.BigEndian.PutUint64(id[8:], lsb)
	return id
}

func (i UUID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(i.String())), nil
}

func (i *UUID) UnmarshalJSON(b []byte) (err error) {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("expected quoted uuid, but got %s: %w", b, err)
	}
	*i, err = Parse(s)
	return
}

// Parse decodes s into a UUID. Both the dashed and the raw hex
// forms are accepted.
func Parse(s string) (UUID, error) {
	id, err := guuid.Parse(s)
	return UUID(id), err
}

// OfflinePlayerUUID returns the name based UUID v3 an offline mode
// server assigns to username.
func OfflinePlayerUUID(username string) UUID {
	const version = 3
	id := md5.Sum([]byte("OfflinePlayer:" + username))
	id[6] = (id[6] & 0x0f) | uint8((version&0xf)<<4)
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// New creates a new random UUID or panics.
func New() UUID { return UUID(guuid.New()) }
