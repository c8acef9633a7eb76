package field

import (
	"fmt"
	"io"

	"go.minekube.com/bot/pkg/edition/java/proto/util"
)

// MetadataType is the value type of an entity metadata entry.
type MetadataType uint8

// Entity metadata value types.
const (
	MetadataByte MetadataType = iota
	MetadataShort
	MetadataInt
	MetadataFloat
	MetadataString
	MetadataSlot
	MetadataPosition
)

func (t MetadataType) String() string {
	switch t {
	case MetadataByte:
		return "byte"
	case MetadataShort:
		return "short"
	case MetadataInt:
		return "int"
	case MetadataFloat:
		return "float"
	case MetadataString:
		return "string"
	case MetadataSlot:
		return "slot"
	case MetadataPosition:
		return "position"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// metadataEnd terminates an entity metadata stream.
const metadataEnd = 0x7F

// MetadataEntry is a single entity metadata value.
//
// Value holds int8, int16, int32, float32, string, Slot or [3]int32
// depending on Type.
type MetadataEntry struct {
	Index uint8
	Type  MetadataType
	Value any
}

// Metadata is an entity metadata stream.
type Metadata []MetadataEntry

func ReadMetadata(rd io.Reader) (m Metadata, err error) {
	for {
		header, err := util.ReadUint8(rd)
		if err != nil {
			return nil, err
		}
		if header == metadataEnd {
			return m, nil
		}
		e := MetadataEntry{Index: header & 0x1F, Type: MetadataType(header >> 5)}
		switch e.Type {
		case MetadataByte:
			e.Value, err = util.ReadInt8(rd)
		case MetadataShort:
			e.Value, err = util.ReadInt16(rd)
		case MetadataInt:
			e.Value, err = util.ReadInt32(rd)
		case MetadataFloat:
			e.Value, err = util.ReadFloat32(rd)
		case MetadataString:
			e.Value, err = util.ReadString(rd)
		case MetadataSlot:
			e.Value, err = ReadSlot(rd)
		case MetadataPosition:
			var pos [3]int32
			for i := range pos {
				if pos[i], err = util.ReadInt32(rd); err != nil {
					break
				}
			}
			e.Value = pos
		default:
			return nil, fmt.Errorf("%w: unknown metadata type %d at index %d",
				util.ErrInvalidEncoding, e.Type, e.Index)
		}
		if err != nil {
			return nil, fmt.Errorf("metadata index %d (%s): %w", e.Index, e.Type, err)
		}
		m = append(m, e)
	}
}

func WriteMetadata(wr io.Writer, m Metadata) error {
	for _, e := range m {
		if err := util.WriteUint8(wr, uint8(e.Type)<<5|e.Index&0x1F); err != nil {
			return err
		}
		var err error
		switch v := e.Value.(type) {
		case int8:
			err = util.WriteInt8(wr, v)
		case int16:
			err = util.WriteInt16(wr, v)
		case int32:
			err = util.WriteInt32(wr, v)
		case float32:
			err = util.WriteFloat32(wr, v)
		case string:
			err = util.WriteString(wr, v)
		case Slot:
			err = WriteSlot(wr, v)
		case [3]int32:
			for _, c := range v {
				if err = util.WriteInt32(wr, c); err != nil {
					break
				}
			}
		default:
			err = fmt.Errorf("unsupported metadata value %T", e.Value)
		}
		if err != nil {
			return fmt.Errorf("metadata index %d: %w", e.Index, err)
		}
	}
	return util.WriteUint8(wr, metadataEnd)
}

// EntityMetadata is an entity metadata stream field.
func EntityMetadata(name string, v *Metadata) Field {
	return of(name, v, ReadMetadata, WriteMetadata)
}
