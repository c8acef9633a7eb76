package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// Packets in this file share their layout in both directions.

// KeepAlive must be echoed back with the same ID.
type KeepAlive struct {
	base
	ID int32
}

func (p *KeepAlive) Fields() field.List {
	return field.List{field.Int32("keepAliveId", &p.ID)}
}

// Chat is a JSON chat component when sent by the server
// and a plain message or command when sent by the client.
type Chat struct {
	base
	Message string
}

func (p *Chat) Fields() field.List {
	return field.List{field.String("message", &p.Message)}
}

// PluginMessage is a custom payload on a named channel.
type PluginMessage struct {
	base
	Channel string
	Data    []byte
}

func (p *PluginMessage) Fields() field.List {
	return field.List{
		field.String("channel", &p.Channel),
		field.Bytes16("data", &p.Data),
	}
}

type CloseWindow struct {
	base
	WindowID uint8
}

func (p *CloseWindow) Fields() field.List {
	return field.List{field.Uint8("windowId", &p.WindowID)}
}

type ConfirmTransaction struct {
	base
	WindowID     uint8
	ActionNumber int16
	Accepted     bool
}

func (p *ConfirmTransaction) Fields() field.List {
	return field.List{
		field.Uint8("windowId", &p.WindowID),
		field.Int16("actionNumber", &p.ActionNumber),
		field.Bool("accepted", &p.Accepted),
	}
}

type UpdateSign struct {
	base
	X     int32
	Y     int16
	Z     int32
	Lines [4]string
}

func (p *UpdateSign) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Int16("y", &p.Y),
		field.Int32("z", &p.Z),
		field.String("line1", &p.Lines[0]),
		field.String("line2", &p.Lines[1]),
		field.String("line3", &p.Lines[2]),
		field.String("line4", &p.Lines[3]),
	}
}

// PlayerAbilities flags.
const (
	AbilityInvulnerable = 0x01
	AbilityFlying       = 0x02
	AbilityAllowFlying  = 0x04
	AbilityCreativeMode = 0x08
)

type PlayerAbilities struct {
	base
	Flags        int8
	FlyingSpeed  float32
	WalkingSpeed float32
}

func (p *PlayerAbilities) Fields() field.List {
	return field.List{
		field.Int8("flags", &p.Flags),
		field.Float32("flyingSpeed", &p.FlyingSpeed),
		field.Float32("walkingSpeed", &p.WalkingSpeed),
	}
}

var (
	_ Packet = (*KeepAlive)(nil)
	_ Packet = (*Chat)(nil)
	_ Packet = (*PluginMessage)(nil)
	_ Packet = (*CloseWindow)(nil)
	_ Packet = (*ConfirmTransaction)(nil)
	_ Packet = (*UpdateSign)(nil)
	_ Packet = (*PlayerAbilities)(nil)
)
