// Package ping implements the server list ping of the Java edition status state.
package ping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec/legacy"
	"gopkg.in/yaml.v3"

	"go.minekube.com/bot/pkg/edition/java/proto"
	"go.minekube.com/bot/pkg/util/componentutil"
	"go.minekube.com/bot/pkg/util/favicon"
	"go.minekube.com/bot/pkg/util/modinfo"
	"go.minekube.com/bot/pkg/util/uuid"
)

// ServerPing is the status response of a server.
type ServerPing struct {
	Version     Version          `json:"version,omitempty" yaml:"version,omitempty"`
	Players     *Players         `json:"players,omitempty" yaml:"players,omitempty"`
	Description *component.Text  `json:"description" yaml:"description"`
	Favicon     favicon.Favicon  `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	ModInfo     *modinfo.ModInfo `json:"modinfo,omitempty" yaml:"modinfo,omitempty"`
}

// Make sure ServerPing implements the interfaces at compile time.
var (
	_ json.Marshaler   = (*ServerPing)(nil)
	_ json.Unmarshaler = (*ServerPing)(nil)

	_ yaml.Marshaler = (*ServerPing)(nil)
)

func (p *ServerPing) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	desc := p.Description
	if desc == nil {
		desc = &component.Text{}
	}
	if err := componentutil.JsonCodec.Marshal(b, desc); err != nil {
		return nil, err
	}

	type Alias ServerPing
	return json.Marshal(&struct {
		Description json.RawMessage `json:"description"`
		*Alias
	}{
		Description: b.Bytes(),
		Alias:       (*Alias)(p),
	})
}

// UnmarshalJSON accepts a description that is either a
// chat component or a plain string with legacy formatting codes.
func (p *ServerPing) UnmarshalJSON(data []byte) error {
	type Alias ServerPing
	out := &struct {
		Alias
		Description json.RawMessage `json:"description"` // override description type
	}{}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding json: %w", err)
	}

	if len(out.Description) == 0 || string(out.Description) == "null" {
		out.Alias.Description = &component.Text{}
	} else {
		var err error
		out.Alias.Description, err = componentutil.ParseTextComponent(string(out.Description))
		if err != nil {
			return fmt.Errorf("error decoding description: %w", err)
		}
	}

	*p = ServerPing(out.Alias)
	return nil
}

// MarshalYAML writes the description as legacy formatted text.
func (p *ServerPing) MarshalYAML() (any, error) {
	b := new(strings.Builder)
	if p.Description != nil {
		if err := (&legacy.Legacy{}).Marshal(b, p.Description); err != nil {
			return nil, fmt.Errorf("error encoding description: %w", err)
		}
	}

	type yamlPlayers struct {
		Online int               `yaml:"online"`
		Max    int               `yaml:"max"`
		Sample map[string]string `yaml:"sample,omitempty"` // name to id
	}
	out := &struct {
		Version     Version          `yaml:"version"`
		Players     *yamlPlayers     `yaml:"players,omitempty"`
		Description string           `yaml:"description"`
		Favicon     bool             `yaml:"favicon"`
		ModInfo     *modinfo.ModInfo `yaml:"modinfo,omitempty"`
	}{
		Version:     p.Version,
		Description: b.String(),
		Favicon:     p.Favicon != "",
		ModInfo:     p.ModInfo,
	}
	if p.Players != nil {
		out.Players = &yamlPlayers{Online: p.Players.Online, Max: p.Players.Max}
		for _, s := range p.Players.Sample {
			if out.Players.Sample == nil {
				out.Players.Sample = make(map[string]string, len(p.Players.Sample))
			}
			out.Players.Sample[s.Name] = s.ID.String()
		}
	}
	return out, nil
}

// PlainDescription returns the description without formatting.
func (p *ServerPing) PlainDescription() string {
	if p.Description == nil {
		return ""
	}
	return componentutil.PlainText(p.Description)
}

type Version struct {
	Protocol proto.Protocol `json:"protocol" yaml:"protocol"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
}

type Players struct {
	Online int            `json:"online" yaml:"online"`
	Max    int            `json:"max" yaml:"max"`
	Sample []SamplePlayer `json:"sample,omitempty" yaml:"sample,omitempty"`
}

type SamplePlayer struct {
	Name string    `json:"name" yaml:"name"`
	ID   uuid.UUID `json:"id" yaml:"id"`
}
