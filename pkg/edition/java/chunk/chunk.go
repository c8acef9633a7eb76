// Package chunk decompresses chunk column data and gives access to its blocks.
package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/klauspost/compress/zlib"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// ErrTruncatedChunkData is returned when the inflated data is
// shorter than the bit masks of its columns require.
var ErrTruncatedChunkData = errors.New("truncated chunk data")

// Sizes of the arrays making up a column.
const (
	SectionBlocks = 16 * 16 * 16
	NibbleSize    = SectionBlocks / 2 // metadata, light and add arrays
	SectionSize   = SectionBlocks + 2*NibbleSize // blocks, metadata, block light
	BiomesSize    = 256
	SectionCount  = 16

	// MaxColumnSize is the size of a column with every section,
	// sky light and add arrays present.
	MaxColumnSize = SectionCount*(SectionSize+2*NibbleSize) + BiomesSize
)

// ColumnSize returns the byte length of a column including biomes.
func ColumnSize(primary, add uint16, skyLight bool) int {
	return sectionsSize(primary, add, skyLight) + BiomesSize
}

func sectionsSize(primary, add uint16, skyLight bool) int {
	n := bits.OnesCount16(primary)
	size := SectionSize*n + NibbleSize*bits.OnesCount16(add)
	if skyLight {
		size += NibbleSize * n
	}
	return size
}

// Column is a 16x256x16 column of the world.
type Column struct {
	X, Z           int32
	PrimaryBitMask uint16 // sections present
	AddBitMask     uint16 // sections with add arrays (block ids above 255)
	SkyLight       bool
	Biomes         bool
	Data           []byte // the column's arrays, sliced from the inflated region
}

// ParseBulk inflates the data of a MapChunkBulk and slices it into columns
// in the order of metas.
func ParseBulk(data []byte, skyLight bool, metas []packet.ChunkMeta) ([]Column, error) {
	buf, err := inflate(data, len(metas)*MaxColumnSize)
	if err != nil {
		return nil, err
	}
	columns := make([]Column, len(metas))
	var off int
	for i, m := range metas {
		size := ColumnSize(m.PrimaryBitMask, m.AddBitMask, skyLight)
		if off+size > len(buf) {
			return nil, fmt.Errorf("%w: column %d at (%d,%d) needs %d bytes at offset %d, have %d",
				ErrTruncatedChunkData, i, m.X, m.Z, size, off, len(buf))
		}
		columns[i] = Column{
			X:              m.X,
			Z:              m.Z,
			PrimaryBitMask: m.PrimaryBitMask,
			AddBitMask:     m.AddBitMask,
			SkyLight:       skyLight,
			Biomes:         true,
			Data:           buf[off : off+size : off+size],
		}
		off += size
	}
	return columns, nil
}

// ParseChunkData inflates the data of a single ChunkData packet.
// Chunk data is only sent for the overworld in this protocol
// version, so sky light is always present.
func ParseChunkData(p *packet.ChunkData) (Column, error) {
	size := sectionsSize(p.PrimaryBitMask, p.AddBitMask, true)
	if p.GroundUp {
		size += BiomesSize
	}
	buf, err := inflate(p.Data, size)
	if err != nil {
		return Column{}, err
	}
	if len(buf) < size {
		return Column{}, fmt.Errorf("%w: column at (%d,%d) needs %d bytes, have %d",
			ErrTruncatedChunkData, p.X, p.Z, size, len(buf))
	}
	return Column{
		X:              p.X,
		Z:              p.Z,
		PrimaryBitMask: p.PrimaryBitMask,
		AddBitMask:     p.AddBitMask,
		SkyLight:       true,
		Biomes:         p.GroundUp,
		Data:           buf,
	}, nil
}

// inflate decompresses at most limit bytes of the zlib stream data.
func inflate(data []byte, limit int) ([]byte, error) {
	if limit == 0 {
		return nil, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error reading chunk data: %w", err)
	}
	defer zr.Close()
	buf := bytes.NewBuffer(make([]byte, 0, min(limit, 4*len(data)+BiomesSize)))
	if _, err = buf.ReadFrom(io.LimitReader(zr, int64(limit))); err != nil {
		return nil, fmt.Errorf("error inflating chunk data: %w", err)
	}
	return buf.Bytes(), nil
}

// Block returns the block id and metadata at the column relative
// coordinates x and z in [0,16) and y in [0,256).
// Absent sections are air.
func (c *Column) Block(x, y, z int) (id uint16, meta uint8) {
	section := y >> 4
	if c.PrimaryBitMask&(1<<section) == 0 {
		return 0, 0
	}
	n := bits.OnesCount16(c.PrimaryBitMask)
	idx := bits.OnesCount16(c.PrimaryBitMask & (1<<section - 1))
	i := (y&15)<<8 | (z&15)<<4 | x&15

	id = uint16(c.Data[idx*SectionBlocks+i])
	meta = nibble(c.Data[n*SectionBlocks+idx*NibbleSize:], i)

	if c.AddBitMask&(1<<section) != 0 {
		addOff := n * SectionSize
		if c.SkyLight {
			addOff += n * NibbleSize
		}
		addIdx := bits.OnesCount16(c.AddBitMask & (1<<section - 1))
		id |= uint16(nibble(c.Data[addOff+addIdx*NibbleSize:], i)) << 8
	}
	return id, meta
}

// Biome returns the biome id at x and z or 0 if the column has no biomes.
func (c *Column) Biome(x, z int) uint8 {
	if !c.Biomes {
		return 0
	}
	return c.Data[len(c.Data)-BiomesSize+((z&15)<<4|x&15)]
}

func nibble(b []byte, i int) uint8 {
	if i&1 == 0 {
		return b[i>>1] & 0x0f
	}
	return b[i>>1] >> 4
}
