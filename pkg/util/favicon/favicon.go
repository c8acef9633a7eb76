// Package favicon handles the data uri icon of a server list ping.
package favicon

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/gookit/color"
	"github.com/nfnt/resize"
	"gopkg.in/yaml.v3"
)

// Favicon is 64x64 sized data uri image sent in a server list ping response.
// Refer to https://en.wikipedia.org/wiki/Data_URI_scheme for details.
// Example: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAEAAAAABCAYAAABubagXAAAAEElEQVR42mP8z8BQzzCCAQB+lAGA+H8KEAAAAABJRU5ErkJggg=="
type Favicon string

// Make sure Favicon implements the interfaces at compile time.
var (
	_ yaml.Unmarshaler = (*Favicon)(nil)
	_ json.Unmarshaler = (*Favicon)(nil)
)

// ErrInvalidFavicon is returned when parsing a value that is not an image data uri.
var ErrInvalidFavicon = errors.New("favicon: not an image data uri")

// UnmarshalJSON implements json.Unmarshaler.
func (f *Favicon) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f, err = Parse(s)
	return err
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Favicon) UnmarshalYAML(value *yaml.Node) (err error) {
	var s string
	if err = value.Decode(&s); err != nil {
		return err
	}
	*f, err = Parse(s)
	return err
}

const (
	dataImagePrefix = "data:image/"
	dataFullPrefix  = dataImagePrefix + "png;base64,"
	size            = 64
)

// Parse validates a data uri. Servers send any image
// type, only the prefix is checked. The empty string is no favicon.
func Parse(s string) (Favicon, error) {
	if s == "" || strings.HasPrefix(s, dataImagePrefix) {
		return Favicon(s), nil
	}
	return "", ErrInvalidFavicon
}

// FromImage converts an image.Image to Favicon.
func FromImage(img image.Image) (Favicon, error) {
	if img.Bounds().Dx() > size || img.Bounds().Dy() > size {
		img = resize.Resize(size, size, img, resize.NearestNeighbor)
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return "", err
	}
	return FromBytes(buf.Bytes()), nil
}

// FromBytes takes the png bytes of an image and converts it to Favicon.
func FromBytes(b []byte) Favicon {
	return Favicon(dataFullPrefix + base64.StdEncoding.EncodeToString(b))
}

// Bytes returns the decoded image bytes or nil if f is not a base64 data uri.
func (f Favicon) Bytes() []byte {
	_, data, ok := strings.Cut(string(f), ";base64,")
	if !ok {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	return b
}

// Image decodes the favicon.
func (f Favicon) Image() (image.Image, error) {
	b := f.Bytes()
	if b == nil {
		return nil, ErrInvalidFavicon
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("favicon: %w", err)
	}
	return img, nil
}

// Preview renders the favicon for a true color terminal, width characters wide.
// Each character is two vertically stacked pixels.
func (f Favicon) Preview(width uint) (string, error) {
	img, err := f.Image()
	if err != nil {
		return "", err
	}
	if width == 0 {
		width = size / 2
	}
	img = resize.Resize(width, width, img, resize.Bilinear)

	b := img.Bounds()
	sb := new(strings.Builder)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := rgb(img, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = rgb(img, x, y+1)
			}
			sb.WriteString(color.NewRGBStyle(top, bottom).Sprint("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func rgb(img image.Image, x, y int) color.RGBColor {
	r, g, b, _ := img.At(x, y).RGBA()
	return color.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
