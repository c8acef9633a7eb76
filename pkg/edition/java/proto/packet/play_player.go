package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

// JoinGame is the first packet in play state.
type JoinGame struct {
	base
	EntityID   int32
	Gamemode   uint8
	Dimension  int8
	Difficulty uint8
	MaxPlayers uint8
	LevelType  string
}

func (p *JoinGame) Fields() field.List {
	return field.List{
		field.Int32("entityId", &p.EntityID),
		field.Uint8("gamemode", &p.Gamemode),
		field.Int8("dimension", &p.Dimension),
		field.Uint8("difficulty", &p.Difficulty),
		field.Uint8("maxPlayers", &p.MaxPlayers),
		field.String("levelType", &p.LevelType),
	}
}

type TimeUpdate struct {
	base
	WorldAge  int64
	TimeOfDay int64
}

func (p *TimeUpdate) Fields() field.List {
	return field.List{
		field.Int64("worldAge", &p.WorldAge),
		field.Int64("timeOfDay", &p.TimeOfDay),
	}
}

type SpawnPosition struct {
	base
	X, Y, Z int32
}

func (p *SpawnPosition) Fields() field.List {
	return field.List{
		field.Int32("x", &p.X),
		field.Int32("y", &p.Y),
		field.Int32("z", &p.Z),
	}
}

type UpdateHealth struct {
	base
	Health         float32
	Food           int16
	FoodSaturation float32
}

func (p *UpdateHealth) Fields() field.List {
	return field.List{
		field.Float32("health", &p.Health),
		field.Int16("food", &p.Food),
		field.Float32("foodSaturation", &p.FoodSaturation),
	}
}

type Respawn struct {
	base
	Dimension  int32
	Difficulty uint8
	Gamemode   uint8
	LevelType  string
}

func (p *Respawn) Fields() field.List {
	return field.List{
		field.Int32("dimension", &p.Dimension),
		field.Uint8("difficulty", &p.Difficulty),
		field.Uint8("gamemode", &p.Gamemode),
		field.String("levelType", &p.LevelType),
	}
}

// PlayerPosLook teleports the player. Y is the eye position.
type PlayerPosLook struct {
	base
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

func (p *PlayerPosLook) Fields() field.List {
	return field.List{
		field.Float64("x", &p.X),
		field.Float64("y", &p.Y),
		field.Float64("z", &p.Z),
		field.Float32("yaw", &p.Yaw),
		field.Float32("pitch", &p.Pitch),
		field.Bool("onGround", &p.OnGround),
	}
}

type HeldItemChange struct {
	base
	Slot int8
}

func (p *HeldItemChange) Fields() field.List {
	return field.List{field.Int8("slot", &p.Slot)}
}

type SetExperience struct {
	base
	Bar        float32
	Level      int16
	TotalLevel int16
}

func (p *SetExperience) Fields() field.List {
	return field.List{
		field.Float32("experienceBar", &p.Bar),
		field.Int16("level", &p.Level),
		field.Int16("totalExperience", &p.TotalLevel),
	}
}

// ChangeGameState reasons.
const (
	GameStateInvalidBed   = 0
	GameStateBeginRaining = 1
	GameStateEndRaining   = 2
	GameStateGamemode     = 3
	GameStateCredits      = 4
)

type ChangeGameState struct {
	base
	Reason uint8
	Value  float32
}

func (p *ChangeGameState) Fields() field.List {
	return field.List{
		field.Uint8("reason", &p.Reason),
		field.Float32("value", &p.Value),
	}
}

type Statistic struct {
	Name  string
	Value int
}

type Statistics struct {
	base
	Entries []Statistic
}

func (p *Statistics) Fields() field.List {
	return field.List{
		field.Array("entries", &p.Entries, field.CountVarInt, func(s *Statistic) field.List {
			return field.List{
				field.String("name", &s.Name),
				field.VarInt("value", &s.Value),
			}
		}),
	}
}

type PlayerListItem struct {
	base
	Name   string
	Online bool
	Ping   int16
}

func (p *PlayerListItem) Fields() field.List {
	return field.List{
		field.String("playerName", &p.Name),
		field.Bool("online", &p.Online),
		field.Int16("ping", &p.Ping),
	}
}

type TabComplete struct {
	base
	Matches []string
}

func (p *TabComplete) Fields() field.List {
	return field.List{field.Strings("matches", &p.Matches, field.CountVarInt)}
}

var (
	_ Packet = (*JoinGame)(nil)
	_ Packet = (*TimeUpdate)(nil)
	_ Packet = (*SpawnPosition)(nil)
	_ Packet = (*UpdateHealth)(nil)
	_ Packet = (*Respawn)(nil)
	_ Packet = (*PlayerPosLook)(nil)
	_ Packet = (*HeldItemChange)(nil)
	_ Packet = (*SetExperience)(nil)
	_ Packet = (*ChangeGameState)(nil)
	_ Packet = (*Statistics)(nil)
	_ Packet = (*PlayerListItem)(nil)
	_ Packet = (*TabComplete)(nil)
)
