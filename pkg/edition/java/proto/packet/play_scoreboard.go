package packet

import "go.minekube.com/bot/pkg/edition/java/proto/field"

type ScoreboardObjective struct {
	base
	Name  string
	Value string
	Mode  int8 // 0 create, 1 remove, 2 update
}

func (p *ScoreboardObjective) Fields() field.List {
	return field.List{
		field.String("objectiveName", &p.Name),
		field.String("objectiveValue", &p.Value),
		field.Int8("createRemove", &p.Mode),
	}
}

// UpdateScore removes the item when Action is 1,
// ScoreName and Value are absent then.
type UpdateScore struct {
	base
	ItemName  string
	Action    int8
	ScoreName string
	Value     int32
}

func (p *UpdateScore) Fields() field.List {
	return field.List{
		field.String("itemName", &p.ItemName),
		field.Int8("updateRemove", &p.Action),
		field.If(func() bool { return p.Action != 1 },
			field.String("scoreName", &p.ScoreName),
			field.Int32("value", &p.Value),
		),
	}
}

type DisplayScoreboard struct {
	base
	Position  int8
	ScoreName string
}

func (p *DisplayScoreboard) Fields() field.List {
	return field.List{
		field.Int8("position", &p.Position),
		field.String("scoreName", &p.ScoreName),
	}
}

// Team modes.
const (
	TeamCreate        = 0
	TeamRemove        = 1
	TeamUpdate        = 2
	TeamAddPlayers    = 3
	TeamRemovePlayers = 4
)

type Teams struct {
	base
	Name         string
	Mode         int8
	DisplayName  string
	Prefix       string
	Suffix       string
	FriendlyFire int8
	Players      []string
}

func (p *Teams) Fields() field.List {
	return field.List{
		field.String("teamName", &p.Name),
		field.Int8("mode", &p.Mode),
		field.If(func() bool { return p.Mode == TeamCreate || p.Mode == TeamUpdate },
			field.String("teamDisplayName", &p.DisplayName),
			field.String("teamPrefix", &p.Prefix),
			field.String("teamSuffix", &p.Suffix),
			field.Int8("friendlyFire", &p.FriendlyFire),
		),
		field.If(func() bool {
			return p.Mode == TeamCreate || p.Mode == TeamAddPlayers || p.Mode == TeamRemovePlayers
		}, field.Strings("players", &p.Players, field.CountInt16)),
	}
}

var (
	_ Packet = (*ScoreboardObjective)(nil)
	_ Packet = (*UpdateScore)(nil)
	_ Packet = (*DisplayScoreboard)(nil)
	_ Packet = (*Teams)(nil)
)
