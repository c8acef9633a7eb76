package util

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/require"

	"go.minekube.com/bot/pkg/util/uuid"
)

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Notch",
		"§bA Minecraft Server",
		"日本語のテキスト",
		"emoji 🎮",
		strings.Repeat("a", DefaultMaxStringSize),
		faker.Sentence(),
		faker.Paragraph(),
	}
	for _, s := range inputs {
		var buf bytes.Buffer
		require.NoError(t, WriteString(&buf, s))
		got, err := ReadString(&buf)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestReadStringInvalid(t *testing.T) {
	t.Run("negative length", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, -1))
		_, err := ReadString(&buf)
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})
	t.Run("too long", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteString(&buf, "hello world"))
		_, err := ReadStringMax(&buf, 2)
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})
	t.Run("bad utf8", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBytes(&buf, []byte{0xff, 0xfe, 0xfd}))
		_, err := ReadString(&buf)
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})
	t.Run("short read", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, 10))
		buf.WriteString("abc")
		_, err := ReadString(&buf)
		require.Error(t, err)
	})
}

func TestByteArrayPrefixes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	tests := []struct {
		name   string
		write  func(*bytes.Buffer) error
		read   func(*bytes.Reader) ([]byte, error)
		prefix []byte
	}{
		{"varint", func(b *bytes.Buffer) error { return WriteBytes(b, data) },
			func(r *bytes.Reader) ([]byte, error) { return ReadBytes(r) }, []byte{5}},
		{"short", func(b *bytes.Buffer) error { return WriteBytes16(b, data) },
			func(r *bytes.Reader) ([]byte, error) { return ReadBytes16(r) }, []byte{0, 5}},
		{"int", func(b *bytes.Buffer) error { return WriteBytes32(b, data) },
			func(r *bytes.Reader) ([]byte, error) { return ReadBytes32(r) }, []byte{0, 0, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.write(&buf))
			require.Equal(t, append(append([]byte{}, tt.prefix...), data...), buf.Bytes())
			got, err := tt.read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestReadBytesBounds(t *testing.T) {
	_, err := ReadBytes16(bytes.NewReader([]byte{0xff, 0xff}))
	require.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = ReadBytes32(bytes.NewReader([]byte{0x00, 0x00, 0x10, 0x00, 1, 2}))
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestFixedWidthBigEndian(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt16(&buf, -2))
	require.NoError(t, WriteUint16(&buf, 25565))
	require.NoError(t, WriteInt32(&buf, 0x01020304))
	require.NoError(t, WriteInt64(&buf, -1))
	require.NoError(t, WriteFloat32(&buf, 1.5))
	require.NoError(t, WriteFloat64(&buf, math.Pi))
	require.NoError(t, WriteBool(&buf, true))
	require.NoError(t, WriteInt8(&buf, -128))

	require.Equal(t, []byte{0xff, 0xfe, 0x63, 0xdd, 1, 2, 3, 4}, buf.Bytes()[:8])

	// one byte at a time to exercise short reads
	rd := iotest.OneByteReader(bytes.NewReader(buf.Bytes()))
	i16, err := ReadInt16(rd)
	require.NoError(t, err)
	require.Equal(t, int16(-2), i16)
	u16, err := ReadUint16(rd)
	require.NoError(t, err)
	require.Equal(t, uint16(25565), u16)
	i32, err := ReadInt32(rd)
	require.NoError(t, err)
	require.Equal(t, int32(0x01020304), i32)
	i64, err := ReadInt64(rd)
	require.NoError(t, err)
	require.Equal(t, int64(-1), i64)
	f32, err := ReadFloat32(rd)
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f32)
	f64, err := ReadFloat64(rd)
	require.NoError(t, err)
	require.Equal(t, math.Pi, f64)
	b, err := ReadBool(rd)
	require.NoError(t, err)
	require.True(t, b)
	i8, err := ReadInt8(rd)
	require.NoError(t, err)
	require.Equal(t, int8(-128), i8)
}

func TestUUIDWire(t *testing.T) {
	ids := []uuid.UUID{
		uuid.Nil,
		uuid.OfflinePlayerUUID("Notch"),
		uuid.FromHalves(1<<63, 1<<63),
		uuid.FromHalves(math.MaxUint64, 0),
		uuid.FromHalves(0x7fffffffffffffff, 0x8000000000000001),
	}
	for _, id := range ids {
		var buf bytes.Buffer
		require.NoError(t, WriteUUID(&buf, id))
		require.Equal(t, 16, buf.Len())

		msb, lsb := id.Halves()
		require.Equal(t, msb^(1<<63), bigEndian64(buf.Bytes()[:8]))
		require.Equal(t, lsb^(1<<63), bigEndian64(buf.Bytes()[8:]))

		got, err := ReadUUID(&buf)
		require.NoError(t, err)
		require.Equal(t, id, got)
	}
}

func bigEndian64(b []byte) uint64 {
	v, _ := ReadUint64(bytes.NewReader(b))
	return v
}
