package state

import (
	"fmt"

	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// Schema declares a packet: its id, the direction it travels,
// the state it is valid in and how to create a zero value of it.
// The packet's fields are given by its Fields method.
type Schema struct {
	ID        proto.PacketID
	Direction proto.Direction
	State     proto.State
	New       func() packet.Packet
}

func (s Schema) String() string {
	return fmt.Sprintf("%s %s %s %T", s.State, s.Direction, s.ID, s.New())
}

// Registry stores the server and client bound packets of a state.
type Registry struct {
	proto.State
	ServerBound *PacketRegistry
	ClientBound *PacketRegistry
}

// NewRegistry returns a Registry for state holding the given schemas.
// It panics if the schemas are inconsistent.
func NewRegistry(state proto.State, schemas ...Schema) *Registry {
	r := &Registry{
		State:       state,
		ServerBound: newPacketRegistry(state, proto.ServerBound),
		ClientBound: newPacketRegistry(state, proto.ClientBound),
	}
	for _, s := range schemas {
		s.State = state
		r.Direction(s.Direction).Register(s)
	}
	return r
}

// Direction returns the packets bound to direction d.
func (r *Registry) Direction(d proto.Direction) *PacketRegistry {
	if d == proto.ServerBound {
		return r.ServerBound
	}
	return r.ClientBound
}

// PacketRegistry stores the packets of one state and direction.
type PacketRegistry struct {
	State       proto.State
	Direction   proto.Direction
	PacketIDs   map[proto.PacketID]Schema
	PacketTypes map[proto.PacketType]proto.PacketID
}

func newPacketRegistry(state proto.State, direction proto.Direction) *PacketRegistry {
	return &PacketRegistry{
		State:       state,
		Direction:   direction,
		PacketIDs:   map[proto.PacketID]Schema{},
		PacketTypes: map[proto.PacketType]proto.PacketID{},
	}
}

// Register adds a schema. It panics when the schema is declared for another
// direction or state or conflicts with an already registered packet.
func (p *PacketRegistry) Register(s Schema) {
	if s.Direction != p.Direction || s.State != p.State {
		panic(fmt.Sprintf("schema %s registered in %s %s registry", s, p.State, p.Direction))
	}
	packetType := proto.TypeOf(s.New())
	if _, ok := p.PacketIDs[s.ID]; ok {
		panic(fmt.Sprintf("can not register packet type %s with id %s in %s %s: "+
			"another packet is already registered", packetType, s.ID, p.State, p.Direction))
	}
	if _, ok := p.PacketTypes[packetType]; ok {
		panic(fmt.Sprintf("%s is already registered in %s %s", packetType, p.State, p.Direction))
	}
	p.PacketIDs[s.ID] = s
	p.PacketTypes[packetType] = s.ID
}

// Schema returns the schema registered for id.
func (p *PacketRegistry) Schema(id proto.PacketID) (Schema, bool) {
	s, ok := p.PacketIDs[id]
	return s, ok
}

// PacketID gets the packet id by the registered packet type.
func (p *PacketRegistry) PacketID(of packet.Packet) (id proto.PacketID, found bool) {
	id, found = p.PacketTypes[proto.TypeOf(of)]
	return
}

// CreatePacket returns a new zero valued instance of the packet
// registered for id or nil if not found.
func (p *PacketRegistry) CreatePacket(id proto.PacketID) packet.Packet {
	s, ok := p.PacketIDs[id]
	if !ok {
		return nil
	}
	return s.New()
}

// schema builds a Schema for packet type T.
func schema[T any, P interface {
	*T
	packet.Packet
}](id proto.PacketID, d proto.Direction) Schema {
	return Schema{ID: id, Direction: d, New: func() packet.Packet { return P(new(T)) }}
}

// cb declares a client bound packet.
func cb[T any, P interface {
	*T
	packet.Packet
}](id proto.PacketID) Schema {
	return schema[T, P](id, proto.ClientBound)
}

// sb declares a server bound packet.
func sb[T any, P interface {
	*T
	packet.Packet
}](id proto.PacketID) Schema {
	return schema[T, P](id, proto.ServerBound)
}
