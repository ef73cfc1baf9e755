package images

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ColorType identifies how the bytes of a pixel map to channels.
type ColorType uint8

// ColorType constants. The zero value is Gray.
const (
	// Gray is a single luminance channel.
	Gray ColorType = iota
	// RGB is red, green and blue, in that order.
	RGB
	// RGBAlpha is red, green, blue and a straight (non-premultiplied) alpha.
	RGBAlpha
	// GrayAlpha is luminance followed by alpha.
	GrayAlpha
)

// colorTypeInfo holds the fixed properties of each supported layout.
var colorTypeInfo = [...]struct {
	name     string
	channels int
	alpha    bool
}{
	Gray:      {name: "gray", channels: 1},
	RGB:       {name: "rgb", channels: 3},
	RGBAlpha:  {name: "rgba", channels: 4, alpha: true},
	GrayAlpha: {name: "grayalpha", channels: 2, alpha: true},
}

// ColorTypes lists every supported layout in declaration order.
var ColorTypes = []ColorType{Gray, RGB, RGBAlpha, GrayAlpha}

// Valid reports whether c is one of the four supported layouts.
func (c ColorType) Valid() bool {
	return int(c) < len(colorTypeInfo)
}

// Channels returns the number of 8-bit channels per pixel. It is the only
// place channel counts are defined; row and buffer sizes derive from it.
// Invalid values report 0.
func (c ColorType) Channels() int {
	if !c.Valid() {
		return 0
	}
	return colorTypeInfo[c].channels
}

// HasAlpha reports whether the layout carries an alpha channel.
func (c ColorType) HasAlpha() bool {
	return c.Valid() && colorTypeInfo[c].alpha
}

// String returns the canonical lower-case name.
func (c ColorType) String() string {
	if !c.Valid() {
		return "ColorType(" + strconv.Itoa(int(c)) + ")"
	}
	return colorTypeInfo[c].name
}

// ParseColorType parses a color type name. Matching is case-insensitive and
// accepts a few common aliases ("rgbalpha", "ga", "grey").
//
// Arguments:
// - s: The name to parse.
//
// Returns:
// - The matching ColorType.
// - ErrUnsupportedColorType if the name is unknown.
func ParseColorType(s string) (ColorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gray", "grey", "g":
		return Gray, nil
	case "rgb":
		return RGB, nil
	case "rgba", "rgbalpha":
		return RGBAlpha, nil
	case "grayalpha", "greyalpha", "ga":
		return GrayAlpha, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedColorType, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c ColorType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ColorType) UnmarshalText(text []byte) error {
	parsed, err := ParseColorType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

