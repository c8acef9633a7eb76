package field

import (
	"bytes"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/bot/pkg/edition/java/proto/util"
	"go.minekube.com/bot/pkg/util/uuid"
)

type record struct {
	ID      int
	Name    string
	HasData bool
	Data    []byte
	Rest    []byte
}

func (r *record) Fields() List {
	return List{
		VarInt("id", &r.ID),
		String("name", &r.Name),
		Bool("hasData", &r.HasData),
		If(func() bool { return r.HasData }, Bytes16("data", &r.Data)),
		Remaining("rest", &r.Rest),
	}
}

func TestListOrder(t *testing.T) {
	r := &record{ID: 300, Name: "abc", HasData: true, Data: []byte{9, 8}, Rest: []byte{1, 2, 3}}
	var buf bytes.Buffer
	require.NoError(t, r.Fields().Encode(&buf))
	require.Equal(t, []byte{
		0xac, 0x02, // id
		0x03, 'a', 'b', 'c', // name
		0x01,             // hasData
		0x00, 0x02, 9, 8, // data
		1, 2, 3, // rest
	}, buf.Bytes())

	got := new(record)
	require.NoError(t, got.Fields().Decode(bytes.NewReader(buf.Bytes())))
	require.Equal(t, r, got)
}

func TestIfSkipsWhenFalse(t *testing.T) {
	r := &record{ID: 1, Name: "x", Rest: []byte{}}
	var buf bytes.Buffer
	require.NoError(t, r.Fields().Encode(&buf))
	require.Equal(t, []byte{0x01, 0x01, 'x', 0x00}, buf.Bytes())

	got := new(record)
	require.NoError(t, got.Fields().Decode(bytes.NewReader(buf.Bytes())))
	assert.Nil(t, got.Data)
	assert.Empty(t, got.Rest)
}

func TestDecodeErrorNamesField(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, util.WriteVarInt(&buf, 1))
	require.NoError(t, util.WriteVarInt(&buf, -5)) // bad string length
	err := new(record).Fields().Decode(&buf)
	require.ErrorIs(t, err, util.ErrInvalidEncoding)
	require.Contains(t, err.Error(), "field name")
}

func TestSlot(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		wire []byte
	}{
		{"empty", EmptySlot, []byte{0xff, 0xff}},
		{"no nbt", Slot{ID: 1, Count: 64, Damage: 0}, []byte{0, 1, 64, 0, 0, 0xff, 0xff}},
		{"nbt", Slot{ID: 276, Count: 1, Damage: 3, NBT: []byte{0x1f, 0x8b}},
			[]byte{0x01, 0x14, 1, 0, 3, 0, 2, 0x1f, 0x8b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSlot(&buf, tt.slot))
			require.Equal(t, tt.wire, buf.Bytes())

			got, err := ReadSlot(bytes.NewReader(tt.wire))
			require.NoError(t, err)
			require.Equal(t, tt.slot, got)
		})
	}
}

func TestEmptySlotReadsNothingMore(t *testing.T) {
	rd := bytes.NewReader([]byte{0xff, 0xff, 0x42})
	s, err := ReadSlot(rd)
	require.NoError(t, err)
	require.True(t, s.Empty())
	require.Equal(t, 1, rd.Len())
}

func TestSlotDecodeNBT(t *testing.T) {
	type display struct {
		Name string `nbt:"Name"`
	}
	type tag struct {
		Display display `nbt:"display"`
	}
	raw, err := nbt.Marshal(tag{Display: display{Name: "Excalibur"}})
	require.NoError(t, err)

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	s := Slot{ID: 276, Count: 1, NBT: gz.Bytes()}
	var got tag
	require.NoError(t, s.DecodeNBT(&got))
	require.Equal(t, "Excalibur", got.Display.Name)

	require.Error(t, (&Slot{ID: 1}).DecodeNBT(&got))
}

func TestItems(t *testing.T) {
	items := []Slot{EmptySlot, {ID: 3, Count: 2}, EmptySlot}
	var buf bytes.Buffer
	require.NoError(t, Items("items", &items).Codec.Encode(&buf))
	require.Equal(t, []byte{0, 3}, buf.Bytes()[:2])

	var got []Slot
	require.NoError(t, Items("items", &got).Codec.Decode(&buf))
	require.Equal(t, items, got)
}

func TestArrayNegativeCount(t *testing.T) {
	var got []Slot
	err := Items("items", &got).Codec.Decode(bytes.NewReader([]byte{0xff, 0xfe}))
	require.ErrorIs(t, err, util.ErrInvalidEncoding)
}

func TestProperties(t *testing.T) {
	props := []Property{
		{Name: "textures", Value: "eyJ0aW1lc3RhbXAiOjF9", Signature: "c2ln"},
		{Name: "empty"},
	}
	var buf bytes.Buffer
	require.NoError(t, Properties("props", &props).Codec.Encode(&buf))
	require.Equal(t, byte(2), buf.Bytes()[0])

	var got []Property
	require.NoError(t, Properties("props", &got).Codec.Decode(&buf))
	require.Equal(t, props, got)
}

func TestEntityProperties(t *testing.T) {
	props := []EntityProperty{
		{Key: "generic.movementSpeed", Value: 0.1, Modifiers: []Modifier{
			{UUID: uuid.OfflinePlayerUUID("sprint"), Amount: 0.3, Operation: 2},
		}},
		{Key: "generic.maxHealth", Value: 20, Modifiers: []Modifier{}},
	}
	var buf bytes.Buffer
	require.NoError(t, EntityProperties("props", &props).Codec.Encode(&buf))
	require.Equal(t, []byte{0, 0, 0, 2}, buf.Bytes()[:4])

	var got []EntityProperty
	require.NoError(t, EntityProperties("props", &got).Codec.Decode(&buf))
	require.Equal(t, props, got)
	require.Zero(t, buf.Len())
}

func TestMetadata(t *testing.T) {
	m := Metadata{
		{Index: 0, Type: MetadataByte, Value: int8(0x02)},
		{Index: 1, Type: MetadataShort, Value: int16(300)},
		{Index: 6, Type: MetadataFloat, Value: float32(20)},
		{Index: 7, Type: MetadataInt, Value: int32(-1)},
		{Index: 10, Type: MetadataString, Value: "Steve"},
		{Index: 10, Type: MetadataSlot, Value: Slot{ID: 1, Count: 1}},
		{Index: 31, Type: MetadataPosition, Value: [3]int32{1, -2, 3}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMetadata(&buf, m))
	require.Equal(t, byte(0x00), buf.Bytes()[0])
	require.Equal(t, byte(0x7f), buf.Bytes()[buf.Len()-1])

	got, err := ReadMetadata(&buf)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestMetadataEmptyAndUnknownType(t *testing.T) {
	got, err := ReadMetadata(bytes.NewReader([]byte{0x7f}))
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = ReadMetadata(bytes.NewReader([]byte{0xe0, 0x00}))
	require.ErrorIs(t, err, util.ErrInvalidEncoding)
}

type bulk struct {
	Sky  bool
	Data []byte
	Meta []int32
}

func (b *bulk) Fields() List {
	var count, size int
	return List{
		Len("count", CountInt16, &count, func() int { return len(b.Meta) }),
		Len("size", CountInt32, &size, func() int { return len(b.Data) }),
		Bool("sky", &b.Sky),
		Raw("data", &b.Data, &size),
		Fixed("meta", &b.Meta, &count, func(v *int32) List { return List{Int32("v", v)} }),
	}
}

func TestLenRawFixed(t *testing.T) {
	b := &bulk{Sky: true, Data: []byte{7, 7, 7}, Meta: []int32{1, 2}}
	var buf bytes.Buffer
	require.NoError(t, b.Fields().Encode(&buf))
	require.Equal(t, []byte{
		0, 2, // count
		0, 0, 0, 3, // size
		1,       // sky
		7, 7, 7, // data
		0, 0, 0, 1, 0, 0, 0, 2, // meta
	}, buf.Bytes())

	got := new(bulk)
	require.NoError(t, got.Fields().Decode(&buf))
	require.Equal(t, b, got)
}

func TestStrings(t *testing.T) {
	in := []string{"/help", "/home"}
	var buf bytes.Buffer
	require.NoError(t, Strings("s", &in, CountVarInt).Codec.Encode(&buf))
	var out []string
	require.NoError(t, Strings("s", &out, CountVarInt).Codec.Decode(&buf))
	require.Equal(t, in, out)
}
