// Package version contains the Minecraft Java edition versions this client speaks.
package version

import (
	"fmt"

	"go.minekube.com/bot/pkg/edition/java/proto"
)

var (
	Minecraft_1_7_2 = &proto.Version{Protocol: 4, Names: s("1.7.2", "1.7.3", "1.7.4", "1.7.5")}
	Minecraft_1_7_6 = &proto.Version{Protocol: 5, Names: s("1.7.6", "1.7.7", "1.7.8", "1.7.9", "1.7.10")}

	// Supported is the version whose packet table this client implements.
	Supported = Minecraft_1_7_6
)

// Protocol is proto.Protocol with additional methods for Java edition.
type Protocol proto.Protocol

// Version gets the Version by protocol number or nil if unknown.
func (p Protocol) Version() *proto.Version {
	for _, v := range []*proto.Version{Minecraft_1_7_2, Minecraft_1_7_6} {
		if v.Protocol == proto.Protocol(p) {
			return v
		}
	}
	return nil
}

func (p Protocol) String() string {
	if v := p.Version(); v != nil {
		return fmt.Sprintf("%s(%d)", v, int(p))
	}
	return fmt.Sprintf("%d", int(p))
}

// Supported reports whether p uses the packet table of Supported.
func (p Protocol) Supported() bool {
	return proto.Protocol(p) == Supported.Protocol
}

// helper func
func s(s ...string) []string { return s }
