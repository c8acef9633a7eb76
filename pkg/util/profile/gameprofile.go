// Package profile contains the Mojang game profile of a player.
package profile

import (
	"encoding/json"
	"fmt"

	"go.minekube.com/bot/pkg/util/uuid"
)

// GameProfile is a Mojang game profile.
type GameProfile struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (g *GameProfile) String() string {
	return fmt.Sprintf("GameProfile{Id:%s,Name:%s}", g.Id, g.Name)
}

// NewOffline returns the GameProfile of an offline mode player.
func NewOffline(username string) *GameProfile {
	return &GameProfile{
		Name: username,
		Id:   uuid.OfflinePlayerUUID(username),
	}
}

// Parse returns the profile of a LoginSuccess packet.
// id may be dashed or undashed.
func Parse(id, username string) (*GameProfile, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", id, err)
	}
	return &GameProfile{Id: u, Name: username}, nil
}

// MarshalJSON writes the id undashed like the session server does.
func (g *GameProfile) MarshalJSON() ([]byte, error) {
	type Embed GameProfile
	return json.Marshal(&struct {
		Id string `json:"id"`
		*Embed
	}{
		Id:    g.Id.Undashed(),
		Embed: (*Embed)(g),
	})
}

func (g *GameProfile) UnmarshalJSON(data []byte) (err error) {
	type Embed GameProfile
	s := &struct {
		Id string `json:"id"`
		*Embed
	}{
		Embed: (*Embed)(g),
	}
	if err = json.Unmarshal(data, &s); err != nil {
		return err
	}
	g.Id, err = uuid.Parse(s.Id)
	return
}
