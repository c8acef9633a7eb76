package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// Handshake selects the state the connection continues in.
// https://wiki.vg/index.php?title=Protocol&oldid=6003#Handshake
type Handshake struct {
	base
	ProtocolVersion int
	ServerAddress   string
	Port            uint16
	NextState       int
}

// Handshake next states.
const (
	NextStateStatus = 1
	NextStateLogin  = 2
)

func (p *Handshake) Fields() field.List {
	return field.List{
		field.VarInt("protocolVersion", &p.ProtocolVersion),
		field.String("serverAddress", &p.ServerAddress),
		field.Uint16("port", &p.Port),
		field.VarInt("nextState", &p.NextState),
	}
}

var _ Packet = (*Handshake)(nil)
