package images

import "github.com/pkg/errors"

// Convert returns a copy of the image in another color type. Every pixel is
// converted independently with Pixel.Convert and re-packed in row-major
// order; rows are processed in parallel.
//
// Arguments:
// - target: The color type of the result.
//
// Returns:
// - A new image with the same dimensions.
// - ErrUnsupportedColorType for an unknown target, or the receiver's
//   validation error.
//
// @example
// gray, err := img.Convert(Gray)
func (img *Image) Convert(target ColorType) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "convert target %d", uint8(target))
	}

	out := &Image{
		Width:     img.Width,
		Height:    img.Height,
		ColorType: target,
		Data:      make([]byte, img.Width*img.Height*target.Channels()),
	}

	if target == img.ColorType {
		copy(out.Data, img.Data)
		return out, nil
	}

	srcCh := img.ColorType.Channels()
	dstCh := target.Channels()
	dstRowSize := out.RowSize()

	Parallel(img.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			src := img.Row(y)
			dst := out.Data[y*dstRowSize : (y+1)*dstRowSize]
			for x := 0; x < img.Width; x++ {
				p := pixelAt(img.ColorType, src[x*srcCh:])
				putPixel(dst[x*dstCh:], p.Convert(target))
			}
		}
	})

	return out, nil
}

// FlipVertical returns a copy with the row order reversed: output row
// Height-1-y is input row y. Whole rows are copied, so the result does not
// depend on the color type.
func (img *Image) FlipVertical() (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	out := img.withData(make([]byte, len(img.Data)))
	rs := img.RowSize()
	for y := 0; y < img.Height; y++ {
		dst := img.Height - 1 - y
		copy(out.Data[dst*rs:(dst+1)*rs], img.Row(y))
	}

	return out, nil
}

// FlipHorizontal returns a copy in which the bytes of every row are reversed
// as a whole. For multi-channel images this also reverses the channel order
// inside each pixel (an RGB row becomes B,G,R triplets read right to left).
// This matches the byte-level flip existing callers rely on; use
// MirrorHorizontal for a flip that keeps pixels intact.
func (img *Image) FlipHorizontal() (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	out := img.withData(make([]byte, len(img.Data)))
	rs := img.RowSize()
	for y := 0; y < img.Height; y++ {
		src := img.Row(y)
		dst := out.Data[y*rs : (y+1)*rs]
		for i, j := 0, rs-1; j >= 0; i, j = i+1, j-1 {
			dst[i] = src[j]
		}
	}

	return out, nil
}

// MirrorHorizontal returns a copy with the pixel order of every row reversed,
// keeping the channels of each pixel in place.
func (img *Image) MirrorHorizontal() (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	out := img.withData(make([]byte, len(img.Data)))
	ch := img.ColorType.Channels()
	rs := img.RowSize()
	for y := 0; y < img.Height; y++ {
		src := img.Row(y)
		dst := out.Data[y*rs : (y+1)*rs]
		for x := 0; x < img.Width; x++ {
			mx := img.Width - 1 - x
			copy(dst[mx*ch:(mx+1)*ch], src[x*ch:(x+1)*ch])
		}
	}

	return out, nil
}

// Crop removes top rows, then bottom rows, then left columns, then right
// columns. A direction whose amount is greater than or equal to the extent
// remaining along that axis is skipped rather than producing an empty image.
//
// Arguments:
// - left, right: Columns to remove from the start and end of each row.
// - top, bottom: Rows to remove from the start and end of the image.
//
// Returns:
// - The cropped copy.
// - ErrInvalidArgument for negative amounts, or the receiver's validation
//   error.
//
// @example
// cropped, err := img.Crop(10, 10, 0, 0) // drop a 10px border left and right
func (img *Image) Crop(left, right, top, bottom int) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if left < 0 || right < 0 || top < 0 || bottom < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative crop (%d, %d, %d, %d)", left, right, top, bottom)
	}

	// Rows first: trimming them before columns leaves fewer rows to rebuild.
	y0, height := 0, img.Height
	if top < height {
		y0, height = top, height-top
	}
	if bottom < height {
		height -= bottom
	}
	x0, width := 0, img.Width
	if left < width {
		x0, width = left, width-left
	}
	if right < width {
		width -= right
	}

	ch := img.ColorType.Channels()
	rs := width * ch
	out := &Image{
		Width:     width,
		Height:    height,
		ColorType: img.ColorType,
		Data:      make([]byte, height*rs),
	}
	for y := 0; y < height; y++ {
		src := img.Row(y0 + y)
		copy(out.Data[y*rs:(y+1)*rs], src[x0*ch:x0*ch+rs])
	}

	return out, nil
}

// withData returns an image with the receiver's geometry over data.
func (img *Image) withData(data []byte) *Image {
	return &Image{
		Width:     img.Width,
		Height:    img.Height,
		ColorType: img.ColorType,
		Data:      data,
	}
}
