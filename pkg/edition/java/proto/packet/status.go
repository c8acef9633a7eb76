package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// StatusRequest asks for the server list ping response.
type StatusRequest struct{ base }

func (p *StatusRequest) Fields() field.List { return nil }

// StatusResponse carries the server list ping JSON.
type StatusResponse struct {
	base
	Status string
}

func (p *StatusResponse) Fields() field.List {
	return field.List{field.String("status", &p.Status)}
}

// StatusPing is sent by the client and echoed back by the server.
type StatusPing struct {
	base
	RandomID int64
}

func (p *StatusPing) Fields() field.List {
	return field.List{field.Int64("randomId", &p.RandomID)}
}

var (
	_ Packet = (*StatusRequest)(nil)
	_ Packet = (*StatusResponse)(nil)
	_ Packet = (*StatusPing)(nil)
)
