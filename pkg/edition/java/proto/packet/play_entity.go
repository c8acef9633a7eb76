package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// Positions in entity packets are fixed-point numbers (absolute * 32)
// and angles are steps of 1/256 of a full turn.

type EntityEquipment struct {
	base
	EntityID int32
	Slot     int16
	Item     field.Slot
}

func (p *EntityEquipment) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int16("slot", &p.Slot),
		field.Item("item", &p.Item),
	}
}

type UseBed struct {
	base
	EntityID int32
	X        int32
	Y        uint8
	Z        int32
}

func (p *UseBed) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int32("x", &p.X),
		field.Uint8("y", &p.Y),
		field.Int32("z", &p.Z),
	}
}

type Animation struct {
	base
	EntityID  int
	Animation uint8
}

func (p *Animation) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Uint8("animation", &p.Animation),
	}
}

type SpawnPlayer struct {
	base
	EntityID    int
	UUID        string
	Name        string
	Properties  []field.Property
	X, Y, Z     int32
	Yaw, Pitch  int8
	CurrentItem int16
	Metadata    field.Metadata
}

func (p *SpawnPlayer) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.String("uuid", &p.UUID),
		field.String("name", &p.Name),
		field.Properties("properties", &p.Properties),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("yaw", &p.Yaw),
		field.Int8("pitch", &p.Pitch),
		field.Int16("currentItem", &p.CurrentItem),
		field.EntityMetadata("metadata", &p.Metadata),
	}
}

type CollectItem struct {
	base
	CollectedID int32
	CollectorID int32
}

func (p *CollectItem) Fields() field.List {
	return field.List{
		field.Int32("collectedEntityId", &p.CollectedID),
		field.Int32("collectorEntityId", &p.CollectorID),
	}
}

// SpawnObject spawns a vehicle or other object. The velocity
// is only present when Data is not zero.
type SpawnObject struct {
	base
	EntityID                        int
	Type                            int8
	X, Y, Z                         int32
	Pitch, Yaw                      int8
	Data                            int32
	VelocityX, VelocityY, VelocityZ int16
}

func (p *SpawnObject) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Int8("type", &p.Type),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("pitch", &p.Pitch),
		field.Int8("yaw", &p.Yaw),
		field.Int32("data", &p.Data),
		field.If(func() bool { return p.Data != 0 },
			field.Int16("velocityX", &p.VelocityX),
			field.Int16("velocityY", &p.VelocityY),
			field.Int16("velocityZ", &p.VelocityZ),
		),
	}
}

type SpawnMob struct {
	base
	EntityID                        int
	Type                            uint8
	X, Y, Z                         int32
	Pitch, HeadPitch, Yaw           int8
	VelocityX, VelocityY, VelocityZ int16
	Metadata                        field.Metadata
}

func (p *SpawnMob) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Uint8("type", &p.Type),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("pitch", &p.Pitch),
		field.Int8("headPitch", &p.HeadPitch),
		field.Int8("yaw", &p.Yaw),
		field.Int16("velocityX", &p.VelocityX),
		field.Int16("velocityY", &p.VelocityY),
		field.Int16("velocityZ", &p.VelocityZ),
		field.EntityMetadata("metadata", &p.Metadata),
	}
}

type SpawnPainting struct {
	base
	EntityID  int
	Title     string
	X, Y, Z   int32
	Direction int32
}

func (p *SpawnPainting) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.String("title", &p.Title),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int32("direction", &p.Direction),
	}
}

type SpawnExperienceOrb struct {
	base
	EntityID int
	X, Y, Z  int32
	Count    int16
}

func (p *SpawnExperienceOrb) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int16("count", &p.Count),
	}
}

type SpawnGlobalEntity struct {
	base
	EntityID int
	Type     int8
	X, Y, Z  int32
}

func (p *SpawnGlobalEntity) Fields() field.List {
	return field.List{
		field.VarInt("entityId", &p.EntityID),
		field.Int8("type", &p.Type),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
	}
}

type EntityVelocity struct {
	base
	EntityID                        int32
	VelocityX, VelocityY, VelocityZ int16
}

func (p *EntityVelocity) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int16("velocityX", &p.VelocityX),
		field.Int16("velocityY", &p.VelocityY),
		field.Int16("velocityZ", &p.VelocityZ),
	}
}

type DestroyEntities struct {
	base
	EntityIDs []int32
}

func (p *DestroyEntities) Fields() field.List {
	return field.List{
		field.Array("entityIds", &p.EntityIDs, field.CountInt8, func(id *int32) field.List {
			return field.List{field.Int32("entityId", id)}
		}),
	}
}

// Entity is sent when an entity did not move.
type Entity struct {
	base
	EntityID int32
}

func (p *Entity) Fields() field.List {
	return field.List{field.Int32("entityId", &p.EntityID)}
}

type EntityRelMove struct {
	base
	EntityID   int32
	DX, DY, DZ int8
}

func (p *EntityRelMove) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("dx", &p.DX),
		field.Int8("dy", &p.DY),
		field.Int8("dz", &p.DZ),
	}
}

type EntityLook struct {
	base
	EntityID   int32
	Yaw, Pitch int8
}

func (p *EntityLook) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("yaw", &p.Yaw),
		field.Int8("pitch", &p.Pitch),
	}
}

type EntityLookAndRelMove struct {
	base
	EntityID   int32
	DX, DY, DZ int8
	Yaw, Pitch int8
}

func (p *EntityLookAndRelMove) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("dx", &p.DX),
		field.Int8("dy", &p.DY),
		field.Int8("dz", &p.DZ),
		field.Int8("yaw", &p.Yaw),
		field.Int8("pitch", &p.Pitch),
	}
}

type EntityTeleport struct {
	base
	EntityID   int32
	X, Y, Z    int32
	Yaw, Pitch int8
}

func (p *EntityTeleport) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("yaw", &p.Yaw),
		field.Int8("pitch", &p.Pitch),
	}
}

type EntityHeadLook struct {
	base
	EntityID int32
	HeadYaw  int8
}

func (p *EntityHeadLook) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("headYaw", &p.HeadYaw),
	}
}

type EntityStatus struct {
	base
	EntityID int32
	Status   int8
}

func (p *EntityStatus) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("entityStatus", &p.Status),
	}
}

type AttachEntity struct {
	base
	EntityID  int32
	VehicleID int32
	Leash     bool
}

func (p *AttachEntity) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int32("vehicleId", &p.VehicleID),
		field.Bool("leash", &p.Leash),
	}
}

type EntityMetadata struct {
	base
	EntityID int32
	Metadata field.Metadata
}

func (p *EntityMetadata) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.EntityMetadata("metadata", &p.Metadata),
	}
}

type EntityEffect struct {
	base
	EntityID  int32
	EffectID  int8
	Amplifier int8
	Duration  int16
}

func (p *EntityEffect) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("effectId", &p.EffectID),
		field.Int8("amplifier", &p.Amplifier),
		field.Int16("duration", &p.Duration),
	}
}

type RemoveEntityEffect struct {
	base
	EntityID int32
	EffectID int8
}

func (p *RemoveEntityEffect) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("effectId", &p.EffectID),
	}
}

type EntityProperties struct {
	base
	EntityID   int32
	Properties []field.EntityProperty
}

func (p *EntityProperties) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.EntityProperties("properties", &p.Properties),
	}
}

var (
	_ Packet = (*EntityEquipment)(nil)
	_ Packet = (*UseBed)(nil)
	_ Packet = (*Animation)(nil)
	_ Packet = (*SpawnPlayer)(nil)
	_ Packet = (*CollectItem)(nil)
	_ Packet = (*SpawnObject)(nil)
	_ Packet = (*SpawnMob)(nil)
	_ Packet = (*SpawnPainting)(nil)
	_ Packet = (*SpawnExperienceOrb)(nil)
	_ Packet = (*SpawnGlobalEntity)(nil)
	_ Packet = (*EntityVelocity)(nil)
	_ Packet = (*DestroyEntities)(nil)
	_ Packet = (*Entity)(nil)
	_ Packet = (*EntityRelMove)(nil)
	_ Packet = (*EntityLook)(nil)
	_ Packet = (*EntityLookAndRelMove)(nil)
	_ Packet = (*EntityTeleport)(nil)
	_ Packet = (*EntityHeadLook)(nil)
	_ Packet = (*EntityStatus)(nil)
	_ Packet = (*AttachEntity)(nil)
	_ Packet = (*EntityMetadata)(nil)
	_ Packet = (*EntityEffect)(nil)
	_ Packet = (*RemoveEntityEffect)(nil)
	_ Packet = (*EntityProperties)(nil)
)
