package field

import (
	"fmt"
	"io"

	"go.minekube.com/bot/pkg/edition/java/proto/util"
)

// Count is the encoding of an array's element count.
type Count uint8

// Available array count encodings.
const (
	CountVarInt Count = iota
	CountInt8
	CountUint8
	CountInt16
	CountInt32
)

func (c Count) read(rd io.Reader) (int, error) {
	switch c {
	case CountInt8:
		n, err := util.ReadInt8(rd)
		return int(n), err
	case CountUint8:
		n, err := util.ReadUint8(rd)
		return int(n), err
	case CountInt16:
		n, err := util.ReadInt16(rd)
		return int(n), err
	case CountInt32:
		n, err := util.ReadInt32(rd)
		return int(n), err
	default:
		return util.ReadVarInt(rd)
	}
}

func (c Count) write(wr io.Writer, n int) error {
	switch c {
	case CountInt8:
		return util.WriteInt8(wr, int8(n))
	case CountUint8:
		return util.WriteUint8(wr, uint8(n))
	case CountInt16:
		return util.WriteInt16(wr, int16(n))
	case CountInt32:
		return util.WriteInt32(wr, int32(n))
	default:
		return util.WriteVarInt(wr, n)
	}
}

type array[T any] struct {
	v     *[]T
	count Count
	elem  func(*T) List
}

// maxPrealloc caps the capacity allocated up front from an untrusted count.
const maxPrealloc = 1024

func (a array[T]) Decode(rd io.Reader) error {
	n, err := a.count.read(rd)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative array length %d", util.ErrInvalidEncoding, n)
	}
	s := make([]T, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var e T
		if err = a.elem(&e).Decode(rd); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		s = append(s, e)
	}
	*a.v = s
	return nil
}

func (a array[T]) Encode(wr io.Writer) error {
	if err := a.count.write(wr, len(*a.v)); err != nil {
		return err
	}
	for i := range *a.v {
		if err := a.elem(&(*a.v)[i]).Encode(wr); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Array is a count-prefixed sequence of records. elem returns the
// fields of one element bound to the given pointer.
func Array[T any](name string, v *[]T, count Count, elem func(*T) List) Field {
	return Field{Name: name, Codec: array[T]{v: v, count: count, elem: elem}}
}

type length struct {
	n     *int
	count Count
	of    func() int
}

func (l length) Decode(rd io.Reader) (err error) {
	*l.n, err = l.count.read(rd)
	if err == nil && *l.n < 0 {
		err = fmt.Errorf("%w: negative length %d", util.ErrInvalidEncoding, *l.n)
	}
	return err
}

func (l length) Encode(wr io.Writer) error { return l.count.write(wr, l.of()) }

// Len is a length that is sent apart from the data it describes.
// Decoding stores it in n for a later Raw or Fixed field; encoding
// writes the value returned by of.
func Len(name string, count Count, n *int, of func() int) Field {
	return Field{Name: name, Codec: length{n: n, count: count, of: of}}
}

type raw struct {
	v *[]byte
	n *int
}

func (r raw) Decode(rd io.Reader) (err error) {
	*r.v, err = util.ReadRawBytes(rd, *r.n)
	return err
}

func (r raw) Encode(wr io.Writer) error {
	_, err := wr.Write(*r.v)
	return err
}

// Raw is a byte array whose length was decoded by a preceding Len field.
func Raw(name string, v *[]byte, n *int) Field {
	return Field{Name: name, Codec: raw{v: v, n: n}}
}

type fixed[T any] struct {
	v    *[]T
	n    *int
	elem func(*T) List
}

func (f fixed[T]) Decode(rd io.Reader) error {
	s := make([]T, 0, min(*f.n, maxPrealloc))
	for i := 0; i < *f.n; i++ {
		var e T
		if err := f.elem(&e).Decode(rd); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		s = append(s, e)
	}
	*f.v = s
	return nil
}

func (f fixed[T]) Encode(wr io.Writer) error {
	for i := range *f.v {
		if err := f.elem(&(*f.v)[i]).Encode(wr); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Fixed is a sequence of records whose count was decoded by a preceding Len field.
func Fixed[T any](name string, v *[]T, n *int, elem func(*T) List) Field {
	return Field{Name: name, Codec: fixed[T]{v: v, n: n, elem: elem}}
}

// Strings is a count-prefixed list of strings.
func Strings(name string, v *[]string, count Count) Field {
	return Array(name, v, count, func(s *string) List { return List{String("string", s)} })
}
