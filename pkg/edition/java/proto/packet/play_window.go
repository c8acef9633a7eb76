package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// inventoryTypeHorse is the OpenWindow type that carries an entity id.
const inventoryTypeHorse = 11

type OpenWindow struct {
	base
	WindowID      uint8
	InventoryType uint8
	Title         string
	SlotCount     uint8
	UseTitle      bool
	EntityID      int32 // only for horse windows
}

func (p *OpenWindow) Fields() field.List {
	return field.List{
		field.Uint8("windowId", &p.WindowID),
		field.Uint8("inventoryType", &p.InventoryType),
		field.String("windowTitle", &p.Title),
		field.Uint8("numberOfSlots", &p.SlotCount),
		field.Bool("useProvidedTitle", &p.UseTitle),
		field.If(func() bool { return p.InventoryType == inventoryTypeHorse },
			field.Int32("entityId", &p.EntityID)),
	}
}

type SetSlot struct {
	base
	WindowID int8
	Slot     int16
	Item     field.Slot
}

func (p *SetSlot) Fields() field.List {
	return field.List{
		field.Int8("windowId", &p.WindowID),
		field.Int16("slot", &p.Slot),
		field.Item("slotData", &p.Item),
	}
}

type WindowItems struct {
	base
	WindowID uint8
	Items    []field.Slot
}

func (p *WindowItems) Fields() field.List {
	return field.List{
		field.Uint8("windowId", &p.WindowID),
		field.Items("slotData", &p.Items),
	}
}

type WindowProperty struct {
	base
	WindowID uint8
	Property int16
	Value    int16
}

func (p *WindowProperty) Fields() field.List {
	return field.List{
		field.Uint8("windowId", &p.WindowID),
		field.Int16("property", &p.Property),
		field.Int16("value", &p.Value),
	}
}

var (
	_ Packet = (*OpenWindow)(nil)
	_ Packet = (*SetSlot)(nil)
	_ Packet = (*WindowItems)(nil)
	_ Packet = (*WindowProperty)(nil)
)
