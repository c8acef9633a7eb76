// Package componentutil parses and renders chat components as sent by 1.7 servers.
package componentutil

import (
	"encoding/json"
	"errors"
	"strings"

	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec"
	"go.minekube.com/common/minecraft/component/codec/legacy"
)

// JsonCodec is the component codec of protocol version 5.
var JsonCodec = &codec.Json{}

// Parse parses a chat component. s may be a JSON object, a JSON array,
// a JSON string or text with legacy § formatting codes.
func Parse(s string) (component.Component, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "{"):
		return JsonCodec.Unmarshal([]byte(s))
	case strings.HasPrefix(s, "["):
		// A list is a text component with the elements as children.
		return JsonCodec.Unmarshal([]byte(`{"text":"","extra":` + s + `}`))
	case strings.HasPrefix(s, `"`):
		var text string
		if err := json.Unmarshal([]byte(s), &text); err != nil {
			return nil, err
		}
		s = text
	}
	return (&legacy.Legacy{}).Unmarshal([]byte(s))
}

// ParseTextComponent is like Parse but requires a text component.
func ParseTextComponent(s string) (t *component.Text, err error) {
	c, err := Parse(s)
	if err != nil {
		return nil, err
	}
	t, ok := c.(*component.Text)
	if !ok {
		return nil, errors.New("invalid text component")
	}
	return t, nil
}

// PlainText renders c without formatting.
func PlainText(c component.Component) string {
	if c == nil {
		return ""
	}
	b := new(strings.Builder)
	if err := (&codec.Plain{}).Marshal(b, c); err != nil {
		return ""
	}
	return b.String()
}

// PlainString parses s and renders it without formatting.
// If s can not be parsed it is returned as is.
func PlainString(s string) string {
	c, err := Parse(s)
	if err != nil {
		return s
	}
	return PlainText(c)
}
