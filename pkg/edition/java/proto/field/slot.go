package field

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"

	"go.minekube.com/bot/pkg/edition/java/proto/util"
)

// Slot is an item stack.
type Slot struct {
	ID     int16 // -1 is an empty slot
	Count  int8
	Damage int16
	// NBT is the gzipped NBT compound as sent on the wire, nil if absent.
	NBT []byte
}

// EmptySlot is a slot without an item.
var EmptySlot = Slot{ID: -1}

// Empty reports whether the slot holds no item.
func (s *Slot) Empty() bool { return s.ID == -1 }

// DecodeNBT decompresses the slot's NBT data into v.
func (s *Slot) DecodeNBT(v any) error {
	if s.NBT == nil {
		return fmt.Errorf("slot %d has no nbt data", s.ID)
	}
	zr, err := gzip.NewReader(bytes.NewReader(s.NBT))
	if err != nil {
		return fmt.Errorf("error opening slot nbt: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("error inflating slot nbt: %w", err)
	}
	return nbt.Unmarshal(raw, v)
}

func ReadSlot(rd io.Reader) (s Slot, err error) {
	if s.ID, err = util.ReadInt16(rd); err != nil || s.Empty() {
		return s, err
	}
	if s.Count, err = util.ReadInt8(rd); err != nil {
		return
	}
	if s.Damage, err = util.ReadInt16(rd); err != nil {
		return
	}
	n, err := util.ReadInt16(rd)
	if err != nil || n == -1 {
		return
	}
	s.NBT, err = util.ReadRawBytes(rd, int(n))
	return
}

func WriteSlot(wr io.Writer, s Slot) error {
	if err := util.WriteInt16(wr, s.ID); err != nil || s.Empty() {
		return err
	}
	if err := util.WriteInt8(wr, s.Count); err != nil {
		return err
	}
	if err := util.WriteInt16(wr, s.Damage); err != nil {
		return err
	}
	if s.NBT == nil {
		return util.WriteInt16(wr, -1)
	}
	return util.WriteBytes16(wr, s.NBT)
}

// Item is a single item stack field.
func Item(name string, v *Slot) Field { return of(name, v, ReadSlot, WriteSlot) }

// Items is a 16-bit count-prefixed list of item stacks.
func Items(name string, v *[]Slot) Field {
	return Array(name, v, CountInt16, func(s *Slot) List { return List{Item("slot", s)} })
}
