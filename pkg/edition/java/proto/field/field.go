// Package field binds packet struct fields to their wire codecs.
//
// A packet describes itself as an ordered List of named fields. The List
// is the packet's schema: decoding reads the fields in declaration order
// and encoding writes them in the same order.
package field

import (
	"fmt"
	"io"

	"go.minekube.com/bot/pkg/edition/java/proto/util"
	"go.minekube.com/bot/pkg/util/uuid"
)

// Codec reads or writes a single value bound to a packet field.
type Codec interface {
	Decode(rd io.Reader) error
	Encode(wr io.Writer) error
}

// Field is a named wire field.
type Field struct {
	Name  string
	Codec Codec
}

// List is an ordered list of fields.
type List []Field

// Decode decodes all fields in order.
func (l List) Decode(rd io.Reader) error {
	for _, f := range l {
		if err := f.Codec.Decode(rd); err != nil {
			return fmt.Errorf("error decoding field %s: %w", f.Name, err)
		}
	}
	return nil
}

// Encode encodes all fields in order.
func (l List) Encode(wr io.Writer) error {
	for _, f := range l {
		if err := f.Codec.Encode(wr); err != nil {
			return fmt.Errorf("error encoding field %s: %w", f.Name, err)
		}
	}
	return nil
}

// Names returns the field names in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

type value[T any] struct {
	v   *T
	dec func(io.Reader) (T, error)
	enc func(io.Writer, T) error
}

func (c value[T]) Decode(rd io.Reader) (err error) {
	*c.v, err = c.dec(rd)
	return err
}

func (c value[T]) Encode(wr io.Writer) error { return c.enc(wr, *c.v) }

func of[T any](name string, v *T, dec func(io.Reader) (T, error), enc func(io.Writer, T) error) Field {
	return Field{Name: name, Codec: value[T]{v: v, dec: dec, enc: enc}}
}

func Bool(name string, v *bool) Field       { return of(name, v, util.ReadBool, util.WriteBool) }
func Int8(name string, v *int8) Field       { return of(name, v, util.ReadInt8, util.WriteInt8) }
func Uint8(name string, v *uint8) Field     { return of(name, v, util.ReadUint8, util.WriteUint8) }
func Int16(name string, v *int16) Field     { return of(name, v, util.ReadInt16, util.WriteInt16) }
func Uint16(name string, v *uint16) Field   { return of(name, v, util.ReadUint16, util.WriteUint16) }
func Int32(name string, v *int32) Field     { return of(name, v, util.ReadInt32, util.WriteInt32) }
func Uint32(name string, v *uint32) Field   { return of(name, v, util.ReadUint32, util.WriteUint32) }
func Int64(name string, v *int64) Field     { return of(name, v, util.ReadInt64, util.WriteInt64) }
func Float32(name string, v *float32) Field { return of(name, v, util.ReadFloat32, util.WriteFloat32) }
func Float64(name string, v *float64) Field { return of(name, v, util.ReadFloat64, util.WriteFloat64) }
func VarInt(name string, v *int) Field      { return of(name, v, util.ReadVarInt, util.WriteVarInt) }
func String(name string, v *string) Field   { return of(name, v, util.ReadString, util.WriteString) }
func UUID(name string, v *uuid.UUID) Field  { return of(name, v, util.ReadUUID, util.WriteUUID) }

// Bytes is a VarInt length-prefixed byte array.
func Bytes(name string, v *[]byte) Field { return of(name, v, util.ReadBytes, util.WriteBytes) }

// Bytes16 is a 16-bit length-prefixed byte array.
func Bytes16(name string, v *[]byte) Field { return of(name, v, util.ReadBytes16, util.WriteBytes16) }

// Bytes32 is a 32-bit length-prefixed byte array.
func Bytes32(name string, v *[]byte) Field { return of(name, v, util.ReadBytes32, util.WriteBytes32) }

// Remaining captures every byte left in the frame verbatim.
// It must be the last field of a List.
func Remaining(name string, v *[]byte) Field {
	return of(name, v, io.ReadAll, func(wr io.Writer, b []byte) error {
		_, err := wr.Write(b)
		return err
	})
}

type cond struct {
	ok     func() bool
	fields List
}

func (c cond) Decode(rd io.Reader) error {
	if !c.ok() {
		return nil
	}
	return c.fields.Decode(rd)
}

func (c cond) Encode(wr io.Writer) error {
	if !c.ok() {
		return nil
	}
	return c.fields.Encode(wr)
}

// If includes fields only when ok returns true. On decode ok is
// evaluated after all preceding fields have been read.
func If(ok func() bool, fields ...Field) Field {
	return Field{Name: "if(" + fmt.Sprint(List(fields).Names()) + ")", Codec: cond{ok: ok, fields: fields}}
}
