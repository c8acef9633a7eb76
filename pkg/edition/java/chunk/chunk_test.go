package chunk

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

func compress(t *testing.T, b []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestColumnSize(t *testing.T) {
	tests := []struct {
		primary, add uint16
		sky          bool
		want         int
	}{
		{0x0001, 0x0000, true, 2048*4*1 + 256 + 0 + 2048*1},
		{0x0001, 0x0000, true, 10496},
		{0x0000, 0x0000, true, 256},
		{0x0000, 0x0000, false, 256},
		{0x0003, 0x0001, false, 2048*4*2 + 256 + 2048},
		{0xffff, 0xffff, true, MaxColumnSize},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnSize(tt.primary, tt.add, tt.sky))
	}
}

// column builds the raw arrays of a column with one section at y 0-15
// where the block at (x,y,z) has the given id and metadata.
func column(x, y, z int, id uint16, meta uint8, sky bool) (data []byte, add uint16) {
	if id > 0xff {
		add = 0x0001
	}
	data = make([]byte, ColumnSize(0x0001, add, sky))
	i := (y&15)<<8 | z<<4 | x
	data[i] = byte(id)
	setNibble(data[SectionBlocks:], i, meta)
	if add != 0 {
		off := SectionSize
		if sky {
			off += NibbleSize
		}
		setNibble(data[off:], i, uint8(id>>8))
	}
	for b := len(data) - BiomesSize; b < len(data); b++ {
		data[b] = 4 // forest
	}
	return data, add
}

func setNibble(b []byte, i int, v uint8) {
	if i&1 == 0 {
		b[i>>1] |= v & 0x0f
	} else {
		b[i>>1] |= v << 4
	}
}

func TestParseBulk(t *testing.T) {
	first, add1 := column(1, 2, 3, 1, 0, true)
	second, add2 := column(15, 15, 15, 0x1A2, 7, true)
	empty := make([]byte, ColumnSize(0, 0, true))
	metas := []packet.ChunkMeta{
		{X: 0, Z: 0, PrimaryBitMask: 0x0001, AddBitMask: add1},
		{X: 0, Z: 1, PrimaryBitMask: 0x0001, AddBitMask: add2},
		{X: 1, Z: 1},
	}
	data := compress(t, bytes.Join([][]byte{first, second, empty}, nil))

	columns, err := ParseBulk(data, true, metas)
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, first, columns[0].Data)
	assert.Equal(t, second, columns[1].Data)
	assert.Len(t, columns[2].Data, BiomesSize)

	id, meta := columns[0].Block(1, 2, 3)
	assert.Equal(t, uint16(1), id)
	assert.Zero(t, meta)

	id, meta = columns[1].Block(15, 15, 15)
	assert.Equal(t, uint16(0x1A2), id)
	assert.Equal(t, uint8(7), meta)

	id, _ = columns[1].Block(15, 100, 15)
	assert.Zero(t, id, "absent section is air")
	assert.Equal(t, uint8(4), columns[0].Biome(5, 5))
	assert.Equal(t, int32(1), columns[2].Z)
}

func TestParseBulkTruncated(t *testing.T) {
	data := compress(t, make([]byte, ColumnSize(0x0001, 0, true)-1))
	_, err := ParseBulk(data, true, []packet.ChunkMeta{{PrimaryBitMask: 0x0001}})
	require.ErrorIs(t, err, ErrTruncatedChunkData)

	// Sky light counts towards the length.
	data = compress(t, make([]byte, ColumnSize(0x0001, 0, false)))
	_, err = ParseBulk(data, true, []packet.ChunkMeta{{PrimaryBitMask: 0x0001}})
	require.ErrorIs(t, err, ErrTruncatedChunkData)
}

func TestParseBulkCorrupt(t *testing.T) {
	_, err := ParseBulk([]byte{1, 2, 3, 4}, true, []packet.ChunkMeta{{}})
	require.Error(t, err)
}

func TestParseChunkData(t *testing.T) {
	raw, add := column(4, 20, 9, 3, 1, true)
	// Move the block into section 1.
	p := &packet.ChunkData{X: 3, Z: -2, GroundUp: true, PrimaryBitMask: 0x0002, AddBitMask: add << 1, Data: compress(t, raw)}
	c, err := ParseChunkData(p)
	require.NoError(t, err)
	id, meta := c.Block(4, 20, 9)
	assert.Equal(t, uint16(3), id)
	assert.Equal(t, uint8(1), meta)

	// Without biomes the data is shorter.
	p = &packet.ChunkData{PrimaryBitMask: 0x0001, Data: compress(t, raw[:len(raw)-BiomesSize])}
	c, err = ParseChunkData(p)
	require.NoError(t, err)
	assert.False(t, c.Biomes)
	assert.Zero(t, c.Biome(0, 0))

	p = &packet.ChunkData{GroundUp: true, PrimaryBitMask: 0x0001, Data: compress(t, raw[:100])}
	_, err = ParseChunkData(p)
	require.ErrorIs(t, err, ErrTruncatedChunkData)
}

func TestDecompressor(t *testing.T) {
	d := NewDecompressor(2, logr.Discard())
	raw := make([]byte, ColumnSize(0x0001, 0, true))
	bulk := &packet.MapChunkBulk{
		SkyLight: true,
		Data:     compress(t, bytes.Repeat(raw, 2)),
		Meta:     []packet.ChunkMeta{{PrimaryBitMask: 1}, {X: 1, PrimaryBitMask: 1}},
	}

	results := make(chan int, 10)
	for i := 0; i < 5; i++ {
		d.Decompress(context.Background(), bulk, func(columns []Column, err error) {
			assert.NoError(t, err)
			results <- len(columns)
		})
	}
	d.Wait()
	close(results)
	var total int
	for n := range results {
		total += n
	}
	assert.Equal(t, 10, total)
}

func TestDecompressorCanceled(t *testing.T) {
	d := NewDecompressor(1, logr.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errc := make(chan error, 1)
	d.Decompress(ctx, &packet.ChunkData{}, func(_ []Column, err error) { errc <- err })
	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}
}

func TestDecompressorRejectsOtherPackets(t *testing.T) {
	d := NewDecompressor(1, logr.Discard())
	errc := make(chan error, 1)
	d.Decompress(context.Background(), &packet.KeepAlive{}, func(_ []Column, err error) { errc <- err })
	d.Wait()
	require.Error(t, <-errc)
}
