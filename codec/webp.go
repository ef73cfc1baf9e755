package codec

import (
	"bytes"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// libwebp exchanges straight (non-premultiplied) RGBA even though the
// binding carries it in *image.RGBA, so Pix is copied as is in both
// directions instead of going through the premultiplied color model.

// decodeWebP decodes a WebP image as RGBAlpha, then drops the alpha channel
// when every pixel is opaque.
func decodeWebP(data []byte) (*images.Image, error) {
	src, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: errors.Wrap(err, "webp")}
	}

	img, err := fromWebP(src)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: err}
	}

	for i := 3; i < len(img.Data); i += 4 {
		if img.Data[i] != 0xff {
			return img, nil
		}
	}

	rgb, err := img.Convert(images.RGB)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: err}
	}
	return rgb, nil
}

// fromWebP packs a decoded WebP image into RGBAlpha.
func fromWebP(src image.Image) (*images.Image, error) {
	m, ok := src.(*image.RGBA)
	if !ok {
		return images.FromImage(src, images.RGBAlpha)
	}

	b := m.Rect
	img, err := images.NewBlank(b.Dx(), b.Dy(), images.RGBAlpha)
	if err != nil {
		return nil, err
	}
	rs := img.RowSize()
	for y := 0; y < img.Height; y++ {
		off := m.PixOffset(b.Min.X, b.Min.Y+y)
		copy(img.Data[y*rs:(y+1)*rs], m.Pix[off:off+rs])
	}
	return img, nil
}

// encodeWebP writes a WebP image. Only RGB and RGBAlpha are accepted.
func encodeWebP(w io.Writer, img *images.Image, opts *Options) error {
	if img.ColorType != images.RGB && img.ColorType != images.RGBAlpha {
		return unsupported(WebP, img.ColorType)
	}

	rgba, err := img.Convert(images.RGBAlpha)
	if err != nil {
		return &EncodeError{Kind: InvalidImage, Err: err}
	}
	src := &image.RGBA{
		Pix:    rgba.Data,
		Stride: rgba.RowSize(),
		Rect:   image.Rect(0, 0, rgba.Width, rgba.Height),
	}

	if err := webp.Encode(w, src, &webp.Options{Lossless: opts.WebPLossless, Quality: opts.WebPQuality}); err != nil {
		return writeFailed(errors.Wrap(err, "webp"))
	}
	return nil
}
