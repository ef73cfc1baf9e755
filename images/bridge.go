package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ToImage exposes the image through the standard library's image.Image.
// Gray images become *image.Gray; every other layout becomes *image.NRGBA
// (straight alpha, 255 where the source has none). The pixel data is
// copied.
func (img *Image) ToImage() (image.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.ColorType == Gray {
		dst := image.NewGray(rect)
		copy(dst.Pix, img.Data)
		return dst, nil
	}

	dst := image.NewNRGBA(rect)
	ch := img.ColorType.Channels()
	Parallel(img.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			src := img.Row(y)
			row := dst.Pix[y*dst.Stride : y*dst.Stride+img.Width*4]
			for x := 0; x < img.Width; x++ {
				putPixel(row[x*4:], pixelAt(img.ColorType, src[x*ch:]).Convert(RGBAlpha))
			}
		}
	})
	return dst, nil
}

// FromImage packs any image.Image into a new Image of the given color type.
// Each source pixel is read as 8-bit straight-alpha RGBA and then converted
// with Pixel.Convert, so a color source converted to Gray uses the same
// luminance rule as Image.Convert. *image.NRGBA, *image.NRGBA64 and
// *image.Gray16 samples are read straight from Pix, the 16-bit ones keeping
// their high byte; other sources go through color.NRGBAModel.
//
// Arguments:
// - src: The source image; its bounds need not start at the origin.
// - ct: The color type of the result.
//
// Returns:
// - The packed image.
// - ErrUnsupportedColorType for an unknown ct, ErrInvalidArgument for a nil source.
func FromImage(src image.Image, ct ColorType) (*Image, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil source image")
	}
	if !ct.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(ct))
	}

	bounds := src.Bounds()
	out, err := NewBlank(bounds.Dx(), bounds.Dy(), ct)
	if err != nil {
		return nil, err
	}

	// Fast path: the standard 8-bit gray layout is already packed.
	if g, ok := src.(*image.Gray); ok && ct == Gray {
		for y := 0; y < out.Height; y++ {
			off := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Data[y*out.RowSize():], g.Pix[off:off+out.Width])
		}
		return out, nil
	}

	at := straightReader(src)
	ch := ct.Channels()
	rs := out.RowSize()
	Parallel(out.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := out.Data[y*rs : (y+1)*rs]
			for x := 0; x < out.Width; x++ {
				putPixel(row[x*ch:], at(bounds.Min.X+x, bounds.Min.Y+y).Convert(ct))
			}
		}
	})

	return out, nil
}

// straightReader returns a function reading the 8-bit straight-alpha pixel
// at (x, y) of src.
func straightReader(src image.Image) func(x, y int) RGBAlphaPixel {
	switch s := src.(type) {
	case *image.NRGBA:
		return func(x, y int) RGBAlphaPixel {
			i := s.PixOffset(x, y)
			return RGBAlphaPixel{R: s.Pix[i], G: s.Pix[i+1], B: s.Pix[i+2], A: s.Pix[i+3]}
		}
	case *image.NRGBA64:
		return func(x, y int) RGBAlphaPixel {
			i := s.PixOffset(x, y)
			return RGBAlphaPixel{R: s.Pix[i], G: s.Pix[i+2], B: s.Pix[i+4], A: s.Pix[i+6]}
		}
	case *image.Gray16:
		return func(x, y int) RGBAlphaPixel {
			v := s.Pix[s.PixOffset(x, y)]
			return RGBAlphaPixel{R: v, G: v, B: v, A: opaque}
		}
	}
	return func(x, y int) RGBAlphaPixel {
		c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
		return RGBAlphaPixel{R: c.R, G: c.G, B: c.B, A: c.A}
	}
}

