package images

import (
	"image/color"

	"github.com/pkg/errors"
)

// Pixel is a single decoded pixel. Exactly four implementations exist, one
// per ColorType: GrayPixel, RGBPixel, RGBAlphaPixel and GrayAlphaPixel.
// A Pixel owns no buffer; it is read from an Image on demand.
//
// Every Pixel is also a color.Color, so it can be handed to the standard
// image packages directly.
type Pixel interface {
	color.Color
	// ColorType returns the layout this pixel belongs to.
	ColorType() ColorType
	// Channels returns the channel values in declaration order.
	Channels() []uint8
	// Convert returns the pixel expressed in the target layout. The target
	// must be valid: an unknown ColorType returns the pixel unchanged. Use
	// ConvertPixel when the target comes from outside the package.
	Convert(target ColorType) Pixel

	pixel()
}

// GrayPixel is a Gray pixel.
type GrayPixel struct {
	Y uint8
}

// RGBPixel is an RGB pixel.
type RGBPixel struct {
	R, G, B uint8
}

// RGBAlphaPixel is an RGBAlpha pixel with straight alpha.
type RGBAlphaPixel struct {
	R, G, B, A uint8
}

// GrayAlphaPixel is a GrayAlpha pixel with straight alpha.
type GrayAlphaPixel struct {
	Y, A uint8
}

const opaque = 0xff

func (GrayPixel) pixel()      {}
func (RGBPixel) pixel()       {}
func (RGBAlphaPixel) pixel()  {}
func (GrayAlphaPixel) pixel() {}

// ColorType implements Pixel.
func (GrayPixel) ColorType() ColorType { return Gray }

// ColorType implements Pixel.
func (RGBPixel) ColorType() ColorType { return RGB }

// ColorType implements Pixel.
func (RGBAlphaPixel) ColorType() ColorType { return RGBAlpha }

// ColorType implements Pixel.
func (GrayAlphaPixel) ColorType() ColorType { return GrayAlpha }

// Channels implements Pixel.
func (p GrayPixel) Channels() []uint8 { return []uint8{p.Y} }

// Channels implements Pixel.
func (p RGBPixel) Channels() []uint8 { return []uint8{p.R, p.G, p.B} }

// Channels implements Pixel.
func (p RGBAlphaPixel) Channels() []uint8 { return []uint8{p.R, p.G, p.B, p.A} }

// Channels implements Pixel.
func (p GrayAlphaPixel) Channels() []uint8 { return []uint8{p.Y, p.A} }

// RGBA implements color.Color.
func (p GrayPixel) RGBA() (r, g, b, a uint32) {
	return color.Gray{Y: p.Y}.RGBA()
}

// RGBA implements color.Color.
func (p RGBPixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: opaque}.RGBA()
}

// RGBA implements color.Color.
func (p RGBAlphaPixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// RGBA implements color.Color.
func (p GrayAlphaPixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.Y, G: p.Y, B: p.Y, A: p.A}.RGBA()
}

// Convert implements Pixel.
func (p GrayPixel) Convert(target ColorType) Pixel {
	switch target {
	case RGB:
		return RGBPixel{R: p.Y, G: p.Y, B: p.Y}
	case RGBAlpha:
		return RGBAlphaPixel{R: p.Y, G: p.Y, B: p.Y, A: opaque}
	case GrayAlpha:
		return GrayAlphaPixel{Y: p.Y, A: opaque}
	}
	return p
}

// Convert implements Pixel.
func (p RGBPixel) Convert(target ColorType) Pixel {
	switch target {
	case Gray:
		return GrayPixel{Y: Luminance(p.R, p.G, p.B)}
	case RGBAlpha:
		return RGBAlphaPixel{R: p.R, G: p.G, B: p.B, A: opaque}
	case GrayAlpha:
		return GrayAlphaPixel{Y: Luminance(p.R, p.G, p.B), A: opaque}
	}
	return p
}

// Convert implements Pixel. Alpha is discarded, never composited, when the
// target has no alpha channel.
func (p RGBAlphaPixel) Convert(target ColorType) Pixel {
	switch target {
	case Gray:
		return GrayPixel{Y: Luminance(p.R, p.G, p.B)}
	case RGB:
		return RGBPixel{R: p.R, G: p.G, B: p.B}
	case GrayAlpha:
		return GrayAlphaPixel{Y: Luminance(p.R, p.G, p.B), A: p.A}
	}
	return p
}

// Convert implements Pixel.
func (p GrayAlphaPixel) Convert(target ColorType) Pixel {
	switch target {
	case Gray:
		return GrayPixel{Y: p.Y}
	case RGB:
		return RGBPixel{R: p.Y, G: p.Y, B: p.Y}
	case RGBAlpha:
		return RGBAlphaPixel{R: p.Y, G: p.Y, B: p.Y, A: p.A}
	}
	return p
}

// Luminance weights in hundredths.
const (
	redWeight   = 30
	greenWeight = 59
	blueWeight  = 11
)

// Luminance returns floor(0.30*r + 0.59*g + 0.11*b).
//
// The sum is evaluated exactly in hundredths rather than in binary floating
// point, where values such as 0.30*7+0.59*7+0.11*7 land just below 7 and
// truncate to 6. Equal channels therefore always map back to themselves.
//
// Arguments:
// - r, g, b: The 8-bit channel values.
//
// Returns:
// - The 8-bit luminance.
//
// @example
// Luminance(255, 0, 0) // 76
// Luminance(0, 255, 0) // 150
func Luminance(r, g, b uint8) uint8 {
	sum := redWeight*uint32(r) + greenWeight*uint32(g) + blueWeight*uint32(b)
	return uint8(sum / 100)
}

// PixelFromChannels tags a channel slice as a Pixel of the given layout. The
// slice is copied.
//
// Arguments:
// - ct: The layout of the channels.
// - ch: Exactly ct.Channels() values in declaration order.
//
// Returns:
// - The Pixel.
// - ErrUnsupportedColorType for an unknown layout, ErrInvalidArgument if the
//   channel count does not match.
func PixelFromChannels(ct ColorType, ch []uint8) (Pixel, error) {
	if !ct.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(ct))
	}
	if len(ch) != ct.Channels() {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s pixel needs %d channels, got %d", ct, ct.Channels(), len(ch))
	}
	return pixelAt(ct, ch), nil
}

// ConvertPixel converts p to target, rejecting targets outside the four
// supported layouts instead of returning p unchanged.
//
// Arguments:
// - p: The pixel to convert.
// - target: The layout of the result.
//
// Returns:
// - The converted pixel.
// - ErrUnsupportedColorType for an unknown target, ErrInvalidArgument for a nil pixel.
//
// @example
// g, err := images.ConvertPixel(images.RGBPixel{R: 255}, images.Gray) // GrayPixel{Y: 76}
func ConvertPixel(p Pixel, target ColorType) (Pixel, error) {
	if p == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil pixel")
	}
	if !target.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(target))
	}
	return p.Convert(target), nil
}

// pixelAt reads one pixel from the front of ch without validation.
func pixelAt(ct ColorType, ch []uint8) Pixel {
	switch ct {
	case RGB:
		return RGBPixel{R: ch[0], G: ch[1], B: ch[2]}
	case RGBAlpha:
		return RGBAlphaPixel{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	case GrayAlpha:
		return GrayAlphaPixel{Y: ch[0], A: ch[1]}
	}
	return GrayPixel{Y: ch[0]}
}

// putPixel writes p's channels to the front of dst and returns the number of
// bytes written.
func putPixel(dst []uint8, p Pixel) int {
	switch v := p.(type) {
	case GrayPixel:
		dst[0] = v.Y
		return 1
	case RGBPixel:
		dst[0], dst[1], dst[2] = v.R, v.G, v.B
		return 3
	case RGBAlphaPixel:
		dst[0], dst[1], dst[2], dst[3] = v.R, v.G, v.B, v.A
		return 4
	case GrayAlphaPixel:
		dst[0], dst[1] = v.Y, v.A
		return 2
	}
	return copy(dst, p.Channels())
}
