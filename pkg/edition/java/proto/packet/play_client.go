package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// Packets in this file are only sent by the client.

type UseEntity struct {
	base
	Target int32
	Mouse  int8 // 0 right click, 1 left click
}

func (p *UseEntity) Fields() field.List {
	return field.List{
		field.Int32("target", &p.Target),
		field.Int8("mouse", &p.Mouse),
	}
}

// ClientOnGround is the player packet sent when neither
// position nor look changed.
type ClientOnGround struct {
	base
	OnGround bool
}

func (p *ClientOnGround) Fields() field.List {
	return field.List{field.Bool("onGround", &p.OnGround)}
}

// ClientPosition moves the player. HeadY is the stance, FeetY + 1.62 when standing.
type ClientPosition struct {
	base
	X, FeetY, HeadY, Z float64
	OnGround           bool
}

func (p *ClientPosition) Fields() field.List {
	return field.List{
		field.Float64("x", &p.X),
		field.Float64("feetY", &p.FeetY),
		field.Float64("headY", &p.HeadY),
		field.Float64("z", &p.Z),
		field.Bool("onGround", &p.OnGround),
	}
}

type ClientLook struct {
	base
	Yaw, Pitch float32
	OnGround   bool
}

func (p *ClientLook) Fields() field.List {
	return field.List{
		field.Float32("yaw", &p.Yaw),
		field.Float32("pitch", &p.Pitch),
		field.Bool("onGround", &p.OnGround),
	}
}

// ClientPosLook moves and turns the player.
type ClientPosLook struct {
	base
	X, FeetY, HeadY, Z float64
	Yaw, Pitch         float32
	OnGround           bool
}

func (p *ClientPosLook) Fields() field.List {
	return field.List{
		field.Float64("x", &p.X),
		field.Float64("feetY", &p.FeetY),
		field.Float64("headY", &p.HeadY),
		field.Float64("z", &p.Z),
		field.Float32("yaw", &p.Yaw),
		field.Float32("pitch", &p.Pitch),
		field.Bool("onGround", &p.OnGround),
	}
}

type PlayerDigging struct {
	base
	Status int8
	X      int32
	Y      uint8
	Z      int32
	Face   int8
}

func (p *PlayerDigging) Fields() field.List {
	return field.List{
		field.Int8("status", &p.Status),
		field.Int32("x", &p.X),
		field.Uint8("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("face", &p.Face),
	}
}

type BlockPlacement struct {
	base
	X                         int32
	Y                         uint8
	Z                         int32
	Direction                 int8
	HeldItem                  field.Slot
	CursorX, CursorY, CursorZ int8
}

func (p *BlockPlacement) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Uint8("y", &p.Y),
		field.Int32("z", &p.Z),
		field.Int8("direction", &p.Direction),
		field.Item("heldItem", &p.HeldItem),
		field.Int8("cursorX", &p.CursorX),
		field.Int8("cursorY", &p.CursorY),
		field.Int8("cursorZ", &p.CursorZ),
	}
}

type ClientHeldItemChange struct {
	base
	Slot int16
}

func (p *ClientHeldItemChange) Fields() field.List {
	return field.List{field.Int16("slot", &p.Slot)}
}

type ClientAnimation struct {
	base
	EntityID  int32
	Animation int8
}

func (p *ClientAnimation) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("animation", &p.Animation),
	}
}

type EntityAction struct {
	base
	EntityID  int32
	Action    int8
	JumpBoost int32
}

func (p *EntityAction) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Int8("actionId", &p.Action),
		field.Int32("jumpBoost", &p.JumpBoost),
	}
}

type SteerVehicle struct {
	base
	Sideways, Forward float32
	Jump, Unmount     bool
}

func (p *SteerVehicle) Fields() field.List {
	return field.List{
		field.Float32("sideways", &p.Sideways),
		field.Float32("forward", &p.Forward),
		field.Bool("jump", &p.Jump),
		field.Bool("unmount", &p.Unmount),
	}
}

type ClickWindow struct {
	base
	WindowID     int8
	Slot         int16
	Button       int8
	ActionNumber int16
	Mode         int8
	ClickedItem  field.Slot
}

func (p *ClickWindow) Fields() field.List {
	return field.List{
		field.Int8("windowId", &p.WindowID),
		field.Int16("slot", &p.Slot),
		field.Int8("button", &p.Button),
		field.Int16("actionNumber", &p.ActionNumber),
		field.Int8("mode", &p.Mode),
		field.Item("clickedItem", &p.ClickedItem),
	}
}

type CreativeInventoryAction struct {
	base
	Slot        int16
	ClickedItem field.Slot
}

func (p *CreativeInventoryAction) Fields() field.List {
	return field.List{
		field.Int16("slot", &p.Slot),
		field.Item("clickedItem", &p.ClickedItem),
	}
}

type EnchantItem struct {
	base
	WindowID    int8
	Enchantment int8
}

func (p *EnchantItem) Fields() field.List {
	return field.List{
		field.Int8("windowId", &p.WindowID),
		field.Int8("enchantment", &p.Enchantment),
	}
}

type TabCompleteRequest struct {
	base
	Text string
}

func (p *TabCompleteRequest) Fields() field.List {
	return field.List{field.String("text", &p.Text)}
}

// ClientSettings chat flags.
const (
	ChatEnabled      = 0
	ChatCommandsOnly = 1
	ChatHidden       = 2
)

type ClientSettings struct {
	base
	Locale       string
	ViewDistance int8
	ChatFlags    int8
	ChatColors   bool
	Difficulty   int8
	ShowCape     bool
}

func (p *ClientSettings) Fields() field.List {
	return field.List{
		field.String("locale", &p.Locale),
		field.Int8("viewDistance", &p.ViewDistance),
		field.Int8("chatFlags", &p.ChatFlags),
		field.Bool("chatColors", &p.ChatColors),
		field.Int8("difficulty", &p.Difficulty),
		field.Bool("showCape", &p.ShowCape),
	}
}

// ClientStatus actions.
const (
	ClientStatusRespawn       = 0
	ClientStatusRequestStats  = 1
	ClientStatusOpenInventory = 2
)

type ClientStatus struct {
	base
	Action int8
}

func (p *ClientStatus) Fields() field.List {
	return field.List{field.Int8("actionId", &p.Action)}
}

var (
	_ Packet = (*UseEntity)(nil)
	_ Packet = (*ClientOnGround)(nil)
	_ Packet = (*ClientPosition)(nil)
	_ Packet = (*ClientLook)(nil)
	_ Packet = (*ClientPosLook)(nil)
	_ Packet = (*PlayerDigging)(nil)
	_ Packet = (*BlockPlacement)(nil)
	_ Packet = (*ClientHeldItemChange)(nil)
	_ Packet = (*ClientAnimation)(nil)
	_ Packet = (*EntityAction)(nil)
	_ Packet = (*SteerVehicle)(nil)
	_ Packet = (*ClickWindow)(nil)
	_ Packet = (*CreativeInventoryAction)(nil)
	_ Packet = (*EnchantItem)(nil)
	_ Packet = (*TabCompleteRequest)(nil)
	_ Packet = (*ClientSettings)(nil)
	_ Packet = (*ClientStatus)(nil)
)
