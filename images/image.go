// Package images - Packed 8-bit raster images and their pure transforms.
package images

import (
	"bytes"

	"github.com/pkg/errors"
)

// Image represents a decoded raster with a packed, row-major 8-bit buffer.
//
// Row y occupies Data[y*RowSize() : (y+1)*RowSize()] and rows carry no
// padding. Transforms never modify the receiver; each returns a new Image
// with a freshly allocated buffer, so one Image may be read from many
// goroutines at once.
type Image struct {
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
	// The channel layout of every pixel.
	ColorType ColorType `json:"colorType" yaml:"colorType"`
	// The packed pixel data, Height*Width*ColorType.Channels() bytes.
	Data []byte `json:"data" yaml:"data"`
}

// New creates an image over data. The image takes ownership of data; the
// caller must not modify it afterwards.
//
// Arguments:
// - width: The width in pixels.
// - height: The height in pixels.
// - ct: The channel layout.
// - data: The packed row-major buffer.
//
// Returns:
// - The image.
// - ErrUnsupportedColorType or ErrCorruptBuffer if the inputs are inconsistent.
//
// @example
// img, err := New(2, 1, RGB, []byte{255, 0, 0, 0, 255, 0})
func New(width, height int, ct ColorType, data []byte) (*Image, error) {
	img := &Image{Width: width, Height: height, ColorType: ct, Data: data}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// NewBlank creates a zero-filled image.
func NewBlank(width, height int, ct ColorType) (*Image, error) {
	if !ct.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(ct))
	}
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "dimensions %dx%d", width, height)
	}
	return &Image{
		Width:     width,
		Height:    height,
		ColorType: ct,
		Data:      make([]byte, width*height*ct.Channels()),
	}, nil
}

// Validate checks the buffer invariant: a supported color type, non-negative
// dimensions and len(Data) == Height*Width*Channels.
func (img *Image) Validate() error {
	if img == nil {
		return errors.Wrap(ErrCorruptBuffer, "nil image")
	}
	if !img.ColorType.Valid() {
		return errors.Wrapf(ErrUnsupportedColorType, "value %d", uint8(img.ColorType))
	}
	if img.Width < 0 || img.Height < 0 {
		return errors.Wrapf(ErrCorruptBuffer, "negative dimensions %dx%d", img.Width, img.Height)
	}
	if want := img.Height * img.RowSize(); len(img.Data) != want {
		return errors.Wrapf(ErrCorruptBuffer, "%dx%d %s needs %d bytes, have %d",
			img.Width, img.Height, img.ColorType, want, len(img.Data))
	}
	return nil
}

// RowSize returns the number of bytes per row (the stride).
func (img *Image) RowSize() int {
	return img.Width * img.ColorType.Channels()
}

// Row returns the bytes of row y, or nil if y is out of range. The slice
// aliases the image buffer and must be treated as read-only.
func (img *Image) Row(y int) []byte {
	if y < 0 || y >= img.Height {
		return nil
	}
	rs := img.RowSize()
	return img.Data[y*rs : (y+1)*rs]
}

// Pixel returns the pixel at (x, y).
//
// Arguments:
// - x: Column, 0 <= x < Width.
// - y: Row, 0 <= y < Height.
//
// Returns:
// - The pixel, tagged with the image's color type.
// - ErrIndexOutOfRange if (x, y) is outside the image, ErrCorruptBuffer if
//   the buffer is inconsistent.
//
// @example
// px, err := img.Pixel(0, 0)
func (img *Image) Pixel(x, y int) (Pixel, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "(%d, %d) outside %dx%d", x, y, img.Width, img.Height)
	}
	ch := img.ColorType.Channels()
	off := y*img.RowSize() + x*ch
	return pixelAt(img.ColorType, img.Data[off:off+ch]), nil
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	data := make([]byte, len(img.Data))
	copy(data, img.Data)
	return &Image{
		Width:     img.Width,
		Height:    img.Height,
		ColorType: img.ColorType,
		Data:      data,
	}
}

// Equal reports whether both images have the same geometry, color type and
// bytes.
func (img *Image) Equal(o *Image) bool {
	if img == nil || o == nil {
		return img == o
	}
	return img.Width == o.Width &&
		img.Height == o.Height &&
		img.ColorType == o.ColorType &&
		bytes.Equal(img.Data, o.Data)
}
