package util

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"go.minekube.com/bot/pkg/util/uuid"
)

func WriteString(wr io.Writer, val string) error {
	return WriteBytes(wr, []byte(val))
}

func WriteVarInt(wr io.Writer, val int) (err error) {
	uval := uint32(val)
	for uval >= 0x80 {
		if err = WriteUint8(wr, byte(uval)|0x80); err != nil {
			return
		}
		uval >>= 7
	}
	return WriteUint8(wr, byte(uval))
}

func WriteVarLong(wr io.Writer, val int64) (err error) {
	uval := uint64(val)
	for uval >= 0x80 {
		if err = WriteUint8(wr, byte(uval)|0x80); err != nil {
			return
		}
		uval >>= 7
	}
	return WriteUint8(wr, byte(uval))
}

// VarIntLen returns the number of bytes val occupies as a VarInt.
func VarIntLen(val int) int {
	uval := uint32(val)
	n := 1
	for uval >= 0x80 {
		uval >>= 7
		n++
	}
	return n
}

func WriteBool(wr io.Writer, val bool) error {
	if val {
		return WriteUint8(wr, 1)
	}
	return WriteUint8(wr, 0)
}

func WriteInt8(wr io.Writer, val int8) error {
	return WriteUint8(wr, uint8(val))
}

func WriteUint8(wr io.Writer, val uint8) (err error) {
	if bw, ok := wr.(io.ByteWriter); ok {
		return bw.WriteByte(val)
	}
	_, err = wr.Write([]byte{val})
	return
}

func WriteInt16(wr io.Writer, val int16) error {
	return WriteUint16(wr, uint16(val))
}

func WriteUint16(wr io.Writer, val uint16) (err error) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], val)
	_, err = wr.Write(b[:])
	return
}

func WriteInt32(wr io.Writer, val int32) error {
	return WriteUint32(wr, uint32(val))
}

func WriteUint32(wr io.Writer, val uint32) (err error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], val)
	_, err = wr.Write(b[:])
	return
}

func WriteInt64(wr io.Writer, val int64) error {
	return WriteUint64(wr, uint64(val))
}

func WriteUint64(wr io.Writer, val uint64) (err error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], val)
	_, err = wr.Write(b[:])
	return
}

func WriteFloat32(wr io.Writer, val float32) error {
	return WriteUint32(wr, math.Float32bits(val))
}

func WriteFloat64(wr io.Writer, val float64) error {
	return WriteUint64(wr, math.Float64bits(val))
}

// WriteBytes writes a VarInt length-prefixed byte array.
func WriteBytes(wr io.Writer, b []byte) error {
	if err := WriteVarInt(wr, len(b)); err != nil {
		return err
	}
	_, err := wr.Write(b)
	return err
}

// WriteBytes16 writes a byte array prefixed with a signed 16-bit length.
func WriteBytes16(wr io.Writer, b []byte) error {
	if len(b) > math.MaxInt16 {
		return fmt.Errorf("%w: byte array of %d bytes exceeds short length prefix", ErrInvalidEncoding, len(b))
	}
	if err := WriteInt16(wr, int16(len(b))); err != nil {
		return err
	}
	_, err := wr.Write(b)
	return err
}

// WriteBytes32 writes a byte array prefixed with a signed 32-bit length.
func WriteBytes32(wr io.Writer, b []byte) error {
	if err := WriteInt32(wr, int32(len(b))); err != nil {
		return err
	}
	_, err := wr.Write(b)
	return err
}

// WriteUUID writes both 64-bit halves with their sign bits flipped.
func WriteUUID(wr io.Writer, id uuid.UUID) error {
	msb, lsb := id.Halves()
	if err := WriteUint64(wr, msb^uuidSignBit); err != nil {
		return err
	}
	return WriteUint64(wr, lsb^uuidSignBit)
}
