package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"

	"github.com/gen2brain/jpegn"
	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// decodeJPEG decodes a baseline or progressive JPEG. jpegn handles baseline
// files itself and hands progressive and CMYK ones to image/jpeg.
// Single-component files become Gray; everything else becomes RGB.
func decodeJPEG(data []byte) (*images.Image, error) {
	// Native output keeps grayscale files as *image.Gray.
	src, err := jpegn.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: errors.Wrap(err, "jpeg")}
	}

	ct := images.RGB
	if _, ok := src.(*image.Gray); ok {
		ct = images.Gray
	}

	img, err := images.FromImage(src, ct)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: err}
	}
	return img, nil
}

// encodeJPEG writes a baseline JPEG. JPEG has no alpha channel, so only
// Gray and RGB are accepted.
func encodeJPEG(w io.Writer, img *images.Image, opts *Options) error {
	if img.ColorType.HasAlpha() {
		return unsupported(JPEG, img.ColorType)
	}

	src, err := img.ToImage()
	if err != nil {
		return &EncodeError{Kind: InvalidImage, Err: err}
	}

	quality := opts.JPEGQuality
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(w, src, &jpeg.Options{Quality: quality}); err != nil {
		return writeFailed(errors.Wrap(err, "jpeg"))
	}
	return nil
}
