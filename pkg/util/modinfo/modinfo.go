// Package modinfo contains the Forge mod list of a server list ping.
package modinfo

// ModInfo is the "modinfo" object Forge servers add to the ping response.
type ModInfo struct {
	Type string `json:"type" yaml:"type"`
	Mods []Mod  `json:"modList" yaml:"modList"`
}

// Mod is an installed mod.
type Mod struct {
	ID      string `json:"modid" yaml:"modid"`
	Version string `json:"version" yaml:"version"`
}

// Forge reports whether the server announced a Forge mod list.
func (m *ModInfo) Forge() bool {
	return m != nil && m.Type == "FML"
}
