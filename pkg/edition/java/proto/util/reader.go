package util

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"go.minekube.com/bot/pkg/util/uuid"
)

var (
	// ErrMalformedVarInt is returned when a VarInt or VarLong
	// does not terminate within its maximum number of groups.
	ErrMalformedVarInt = errors.New("malformed varint")
	// ErrInvalidEncoding is returned for negative or oversized length
	// prefixes and for strings that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// DefaultMaxStringSize is the maximum number of characters
// of a string when no explicit maximum is given.
const DefaultMaxStringSize = 32767

// MaxVarIntLen is the maximum number of bytes of an encoded VarInt.
const MaxVarIntLen = 5

// uuidSignBit is XORed into both halves of a UUID on the wire.
const uuidSignBit = 1 << 63

func ReadString(rd io.Reader) (string, error) {
	return ReadStringMax(rd, DefaultMaxStringSize)
}

func ReadStringMax(rd io.Reader, max int) (string, error) {
	length, err := ReadVarInt(rd)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("%w: negative string length %d", ErrInvalidEncoding, length)
	}
	if length > max*4 { // *4 since UTF8 character has up to 4 bytes
		return "", fmt.Errorf("%w: bad string length (got %d, max. %d)", ErrInvalidEncoding, length, max*4)
	}
	b := make([]byte, length)
	if _, err = io.ReadFull(rd, b); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string is not valid utf-8", ErrInvalidEncoding)
	}
	return string(b), nil
}

// ReadBytes reads a VarInt length-prefixed byte array.
func ReadBytes(rd io.Reader) ([]byte, error) {
	length, err := ReadVarInt(rd)
	if err != nil {
		return nil, err
	}
	return readBytesLen(rd, length)
}

// ReadBytes16 reads a byte array prefixed with a signed 16-bit length.
func ReadBytes16(rd io.Reader) ([]byte, error) {
	length, err := ReadInt16(rd)
	if err != nil {
		return nil, err
	}
	return readBytesLen(rd, int(length))
}

// ReadBytes32 reads a byte array prefixed with a signed 32-bit length.
func ReadBytes32(rd io.Reader) ([]byte, error) {
	length, err := ReadInt32(rd)
	if err != nil {
		return nil, err
	}
	return readBytesLen(rd, int(length))
}

// ReadRawBytes reads exactly n bytes without a length prefix.
func ReadRawBytes(rd io.Reader, n int) ([]byte, error) {
	return readBytesLen(rd, n)
}

// maxUnboundedAlloc limits allocations when the reader does not
// report how many bytes are left.
const maxUnboundedAlloc = 2 << 20

type lenReader interface{ Len() int }

func readBytesLen(rd io.Reader, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative byte array length %d", ErrInvalidEncoding, length)
	}
	limit := maxUnboundedAlloc
	if l, ok := rd.(lenReader); ok {
		limit = l.Len()
	}
	if length > limit {
		return nil, fmt.Errorf("%w: byte array length %d exceeds %d available bytes",
			ErrInvalidEncoding, length, limit)
	}
	b := make([]byte, length)
	_, err := io.ReadFull(rd, b)
	return b, err
}

// ReadVarInt reads a VarInt of at most MaxVarIntLen bytes.
func ReadVarInt(rd io.Reader) (int, error) {
	var n uint32
	for i := 0; ; i++ {
		b, err := ReadUint8(rd)
		if err != nil {
			return 0, err
		}
		if i >= MaxVarIntLen {
			return 0, fmt.Errorf("%w: more than %d bytes", ErrMalformedVarInt, MaxVarIntLen)
		}
		n |= uint32(b&0x7F) << uint32(7*i)
		if b&0x80 == 0 {
			break
		}
	}
	return int(int32(n)), nil
}

// ReadVarLong reads a VarLong of at most 10 bytes.
func ReadVarLong(rd io.Reader) (int64, error) {
	var n uint64
	for i := 0; ; i++ {
		b, err := ReadUint8(rd)
		if err != nil {
			return 0, err
		}
		if i >= 10 {
			return 0, fmt.Errorf("%w: varlong longer than 10 bytes", ErrMalformedVarInt)
		}
		n |= uint64(b&0x7F) << uint64(7*i)
		if b&0x80 == 0 {
			break
		}
	}
	return int64(n), nil
}

func ReadBool(rd io.Reader) (val bool, err error) {
	uval, err := ReadUint8(rd)
	return uval != 0, err
}

func ReadInt8(rd io.Reader) (val int8, err error) {
	uval, err := ReadUint8(rd)
	return int8(uval), err
}

func ReadUint8(rd io.Reader) (val uint8, err error) {
	if br, ok := rd.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var b [1]byte
	_, err = io.ReadFull(rd, b[:])
	return b[0], err
}

func ReadInt16(rd io.Reader) (val int16, err error) {
	uval, err := ReadUint16(rd)
	return int16(uval), err
}

func ReadUint16(rd io.Reader) (val uint16, err error) {
	var b [2]byte
	_, err = io.ReadFull(rd, b[:])
	return binary.BigEndian.Uint16(b[:]), err
}

func ReadInt32(rd io.Reader) (val int32, err error) {
	uval, err := ReadUint32(rd)
	return int32(uval), err
}

func ReadUint32(rd io.Reader) (val uint32, err error) {
	var b [4]byte
	_, err = io.ReadFull(rd, b[:])
	return binary.BigEndian.Uint32(b[:]), err
}

func ReadInt64(rd io.Reader) (val int64, err error) {
	uval, err := ReadUint64(rd)
	return int64(uval), err
}

func ReadUint64(rd io.Reader) (val uint64, err error) {
	var b [8]byte
	_, err = io.ReadFull(rd, b[:])
	return binary.BigEndian.Uint64(b[:]), err
}

func ReadFloat32(rd io.Reader) (val float32, err error) {
	ival, err := ReadUint32(rd)
	return math.Float32frombits(ival), err
}

func ReadFloat64(rd io.Reader) (val float64, err error) {
	ival, err := ReadUint64(rd)
	return math.Float64frombits(ival), err
}

// ReadUUID reads two 64-bit halves and flips their sign bits.
func ReadUUID(rd io.Reader) (uuid.UUID, error) {
	msb, err := ReadUint64(rd)
	if err != nil {
		return uuid.Nil, err
	}
	lsb, err := ReadUint64(rd)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromHalves(msb^uuidSignBit, lsb^uuidSignBit), nil
}
