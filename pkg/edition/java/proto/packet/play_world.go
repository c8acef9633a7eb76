package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// ChunkData is a single zlib compressed chunk column.
type ChunkData struct {
	base
	X, Z           int32
	GroundUp       bool // full column including biomes
	PrimaryBitMask uint16
	AddBitMask     uint16
	Data           []byte
}

func (p *ChunkData) Fields() field.List {
	return field.List{
		field.Int32("chunkX", &p.X),
		field.Int32("chunkZ", &p.Z),
		field.Bool("groundUpContinuous", &p.GroundUp),
		field.Uint16("primaryBitMask", &p.PrimaryBitMask),
		field.Uint16("addBitMask", &p.AddBitMask),
		field.Bytes32("compressedData", &p.Data),
	}
}

// ChunkMeta locates a column of a MapChunkBulk.
type ChunkMeta struct {
	X, Z           int32
	PrimaryBitMask uint16
	AddBitMask     uint16
}

// MapChunkBulk holds several chunk columns compressed as one zlib stream.
// The column lengths are derived from the bit masks in Meta.
type MapChunkBulk struct {
	base
	SkyLight bool
	Data     []byte
	Meta     []ChunkMeta
}

func (p *MapChunkBulk) Fields() field.List {
	var columns, size int
	return field.List{
		field.Len("chunkColumnCount", field.CountInt16, &columns, func() int { return len(p.Meta) }),
		field.Len("dataLength", field.CountInt32, &size, func() int { return len(p.Data) }),
		field.Bool("skyLightSent", &p.SkyLight),
		field.Raw("data", &p.Data, &size),
		field.Fixed("meta", &p.Meta, &columns, func(m *ChunkMeta) field.List {
			return field.List{
				field.Int32("chunkX", &m.X),
				field.Int32("chunkZ", &m.Z),
				field.Uint16("primaryBitMask", &m.PrimaryBitMask),
				field.Uint16("addBitMask", &m.AddBitMask),
			}
		}),
	}
}

// BlockRecord is a packed MultiBlockChange record:
// metadata (4 bits), block id (12), y (8), z (4), x (4) from low to high bits.
type BlockRecord uint32

func (r BlockRecord) X() uint8        { return uint8(r >> 28 & 0xF) }
func (r BlockRecord) Z() uint8        { return uint8(r >> 24 & 0xF) }
func (r BlockRecord) Y() uint8        { return uint8(r >> 16) }
func (r BlockRecord) BlockID() uint16 { return uint16(r >> 4 & 0xFFF) }
func (r BlockRecord) Metadata() uint8 { return uint8(r & 0xF) }

type MultiBlockChange struct {
	base
	ChunkX, ChunkZ int32
	Records        []BlockRecord
}

func (p *MultiBlockChange) Fields() field.List {
	var count, size int
	return field.List{
		field.Int32("chunkX", &p.ChunkX),
		field.Int32("chunkZ", &p.ChunkZ),
		field.Len("recordCount", field.CountInt16, &count, func() int { return len(p.Records) }),
		field.Len("dataSize", field.CountInt32, &size, func() int { return 4 * len(p.Records) }),
		field.Fixed("records", &p.Records, &count, func(r *BlockRecord) field.List {
			return field.List{field.Uint32("record", (*uint32)(r))}
		}),
	}
}

type BlockChange struct {
	base
	X        int32
	Y        uint8
	Z        int32
	BlockID  int
	Metadata uint8
}

func (p *BlockChange) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Uint8("y", &p.Y),
		field.Int32("z", &p.Z),
		field.VarInt("blockType", &p.BlockID),
		field.Uint8("blockMetadata", &p.Metadata),
	}
}

type BlockAction struct {
	base
	X            int32
	Y            int16
	Z            int32
	Byte1, Byte2 uint8
	BlockType    int
}

func (p *BlockAction) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Int16("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Uint8("byte1", &p.Byte1),
		field.Uint8("byte2", &p.Byte2),
		field.VarInt("blockType", &p.BlockType),
	}
}

type BlockBreakAnimation struct {
	base
	EntityID     int
	X, Y, Z      int32
	DestroyStage int8
}

func (p *BlockBreakAnimation) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("destroyStage", &p.DestroyStage),
	}
}

// ExplosionRecord is a destroyed block relative to the explosion center.
type ExplosionRecord struct {
	DX, DY, DZ int8
}

type Explosion struct {
	base
	X, Y, Z                   float32
	Radius                    float32
	Records                   []ExplosionRecord
	MotionX, MotionY, MotionZ float32
}

func (p *Explosion) Fields() field.List {
	return field.List{
		field.Float32("x", &p.X),
		field.Float32("y", &p.Y),
		field.Float32("z", &p.Z),
		field.Float32("radius", &p.Radius),
		field.Array("records", &p.Records, field.CountInt32, func(r *ExplosionRecord) field.List {
			return field.List{
				field.Int8("dx", &r.DX),
				field.Int8("dy", &r.DY),
				field.Int8("dz", &r.DZ),
			}
		}),
		field.Float32("playerMotionX", &p.MotionX),
		field.Float32("playerMotionY", &p.MotionY),
		field.Float32("playerMotionZ", &p.MotionZ),
	}
}

type Effect struct {
	base
	EffectID              int32
	X                     int32
	Y                     int8
	Z                     int32
	Data                  int32
	DisableRelativeVolume bool
}

func (p *Effect) Fields() field.List {
	return field.List{
		field.Int32("effectId", &p.EffectID),
		field.Int32("x", &p.X),
		field.Int8("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int32("data", &p.Data),
		field.Bool("disableRelativeVolume", &p.DisableRelativeVolume),
	}
}

type SoundEffect struct {
	base
	Name    string
	X, Y, Z int32
	Volume  float32
	Pitch   uint8
}

func (p *SoundEffect) Fields() field.List {
	return field.List{
		field.String("soundName", &p.Name),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Float32("volume", &p.Volume),
		field.Uint8("pitch", &p.Pitch),
	}
}

type Particle struct {
	base
	Name                      string
	X, Y, Z                   float32
	OffsetX, OffsetY, OffsetZ float32
	Speed                     float32
	Count                     int32
}

func (p *Particle) Fields() field.List {
	return field.List{
		field.String("particleName", &p.Name),
		field.Float32("x", &p.X),
		field.Float32("y", &p.Y),
		field.Float32("z", &p.Z),
		field.Float32("offsetX", &p.OffsetX),
		field.Float32("offsetY", &p.OffsetY),
		field.Float32("offsetZ", &p.OffsetZ),
		field.Float32("particleSpeed", &p.Speed),
		field.Int32("count", &p.Count),
	}
}

type Maps struct {
	base
	ItemDamage int
	Data       []byte
}

func (p *Maps) Fields() field.List {
	return field.List{
		field.VarInt("itemDamage", &p.ItemDamage),
		field.Bytes16("data", &p.Data),
	}
}

type UpdateTileEntity struct {
	base
	X      int32
	Y      int16
	Z      int32
	Action uint8
	NBT    []byte // gzipped
}

func (p *UpdateTileEntity) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Int16("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Uint8("action", &p.Action),
		field.Bytes16("nbtData", &p.NBT),
	}
}

type SignEditorOpen struct {
	base
	X, Y, Z int32
}

func (p *SignEditorOpen) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
	}
}

var (
	_ Packet = (*ChunkData)(nil)
	_ Packet = (*MapChunkBulk)(nil)
	_ Packet = (*MultiBlockChange)(nil)
	_ Packet = (*BlockChange)(nil)
	_ Packet = (*BlockAction)(nil)
	_ Packet = (*BlockBreakAnimation)(nil)
	_ Packet = (*Explosion)(nil)
	_ Packet = (*Effect)(nil)
	_ Packet = (*SoundEffect)(nil)
	_ Packet = (*Particle)(nil)
	_ Packet = (*Maps)(nil)
	_ Packet = (*UpdateTileEntity)(nil)
	_ Packet = (*SignEditorOpen)(nil)
)
