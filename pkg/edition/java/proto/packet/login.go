package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// LoginStart starts the login with the player's name.
type LoginStart struct {
	base
	Username string
}

func (p *LoginStart) Fields() field.List {
	return field.List{field.String("username", &p.Username)}
}

// EncryptionRequest asks the client to enable encryption.
type EncryptionRequest struct {
	base
	ServerID    string
	PublicKey   []byte // DER encoded PKIX public key
	VerifyToken []byte
}

func (p *EncryptionRequest) Fields() field.List {
	return field.List{
		field.String("serverId", &p.ServerID),
		field.Bytes16("publicKey", &p.PublicKey),
		field.Bytes16("verifyToken", &p.VerifyToken),
	}
}

// EncryptionResponse carries the shared secret and verify token,
// both encrypted with the server's public key.
type EncryptionResponse struct {
	base
	SharedSecret []byte
	VerifyToken  []byte
}

func (p *EncryptionResponse) Fields() field.List {
	return field.List{
		field.Bytes16("sharedSecret", &p.SharedSecret),
		field.Bytes16("verifyToken", &p.VerifyToken),
	}
}

// LoginSuccess completes the login, the connection continues in play state.
type LoginSuccess struct {
	base
	UUID     string // dashed form
	Username string
}

func (p *LoginSuccess) Fields() field.List {
	return field.List{
		field.String("uuid", &p.UUID),
		field.String("username", &p.Username),
	}
}

// Disconnect closes the connection with a JSON chat reason.
// It is used in both login and play state.
type Disconnect struct {
	base
	Reason string
}

func (p *Disconnect) Fields() field.List {
	return field.List{field.String("reason", &p.Reason)}
}

var (
	_ Packet = (*LoginStart)(nil)
	_ Packet = (*EncryptionRequest)(nil)
	_ Packet = (*EncryptionResponse)(nil)
	_ Packet = (*LoginSuccess)(nil)
	_ Packet = (*Disconnect)(nil)
)
