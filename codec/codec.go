// Package codec moves images.Image values in and out of PNG, JPEG and WebP
// files. Decoders report the container's own channel layout where it maps
// onto a ColorType; encoders refuse layouts a format cannot carry rather
// than silently converting them.
package codec

import (
	"bytes"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// Format identifies a container format.
type Format string

const (
	// PNG is the Portable Network Graphics format.
	PNG Format = "png"
	// JPEG is the JPEG/JFIF format.
	JPEG Format = "jpeg"
	// WebP is Google's WebP format.
	WebP Format = "webp"
)

// ErrUnknownFormat is returned when neither extension nor signature names a
// supported format.
var ErrUnknownFormat = errors.New("unknown image format")

var (
	pngSignature  = []byte("\x89PNG\r\n\x1a\n")
	jpegSignature = []byte{0xff, 0xd8, 0xff}
)

// Options tunes decoding and encoding. The zero value is not the default;
// use DefaultOptions or pass nil.
type Options struct {
	// ExpandPalette expands palette PNGs to RGB, or RGBAlpha when the
	// palette carries transparency. When false they fail to decode.
	ExpandPalette bool `yaml:"expandPalette"`
	// JPEGQuality is the JPEG encode quality, 1 to 100.
	JPEGQuality int `yaml:"jpegQuality"`
	// WebPLossless selects lossless WebP encoding.
	WebPLossless bool `yaml:"webpLossless"`
	// WebPQuality is the lossy WebP quality, 0 to 100.
	WebPQuality float32 `yaml:"webpQuality"`
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		ExpandPalette: true,
		JPEGQuality:   jpeg.DefaultQuality,
		WebPLossless:  true,
		WebPQuality:   90,
	}
}

func orDefault(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}

// FormatFromPath picks a format from a file extension (case-insensitive).
//
// Arguments:
// - path: The file path.
//
// Returns:
// - The format.
// - ErrUnknownFormat for any other extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".webp":
		return WebP, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "extension of %q", path)
}

// Sniff identifies a format from the leading bytes of an encoded image.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return PNG, nil
	case bytes.HasPrefix(data, jpegSignature):
		return JPEG, nil
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return WebP, nil
	}
	return "", ErrUnknownFormat
}

// Decode reads one encoded image from r, picking the decoder by signature.
//
// Arguments:
// - r: The encoded bytes; read to EOF.
// - opts: Decode options, or nil for DefaultOptions.
//
// Returns:
// - The decoded image with the container's ColorType.
// - A *DecodeError of kind NotAnImage or UnsupportedSubformat.
//
// @example
// img, err := codec.Decode(bytes.NewReader(data), nil)
func Decode(r io.Reader, opts *Options) (*images.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: errors.Wrap(err, "reading source")}
	}
	return decodeBytes(data, orDefault(opts))
}

func decodeBytes(data []byte, opts *Options) (*images.Image, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: err}
	}

	switch format {
	case PNG:
		return decodePNG(data, opts)
	case JPEG:
		return decodeJPEG(data)
	default:
		return decodeWebP(data)
	}
}

// Encode writes img to w in the given format.
//
// Arguments:
// - w: The destination.
// - img: The image to encode.
// - format: The target format.
// - opts: Encode options, or nil for DefaultOptions.
//
// Returns:
// - A *EncodeError of kind InvalidImage, UnsupportedColorType or Unwritable.
func Encode(w io.Writer, img *images.Image, format Format, opts *Options) error {
	if err := checkEncodable(img, format); err != nil {
		return err
	}

	opts = orDefault(opts)
	switch format {
	case PNG:
		return encodePNG(w, img)
	case JPEG:
		return encodeJPEG(w, img, opts)
	default:
		return encodeWebP(w, img, opts)
	}
}

// checkEncodable reports, without writing anything, why img cannot be
// stored in format.
func checkEncodable(img *images.Image, format Format) error {
	if img == nil {
		return &EncodeError{Kind: InvalidImage, Err: errors.Wrap(images.ErrInvalidArgument, "nil image")}
	}
	if err := img.Validate(); err != nil {
		return &EncodeError{Kind: InvalidImage, Err: err}
	}
	if img.Width == 0 || img.Height == 0 {
		return &EncodeError{
			Kind: InvalidImage,
			Err:  errors.Wrapf(images.ErrInvalidArgument, "cannot encode %dx%d image", img.Width, img.Height),
		}
	}

	switch format {
	case PNG:
		return nil
	case JPEG:
		if img.ColorType != images.Gray && img.ColorType != images.RGB {
			return unsupported(JPEG, img.ColorType)
		}
		return nil
	case WebP:
		if img.ColorType != images.RGB && img.ColorType != images.RGBAlpha {
			return unsupported(WebP, img.ColorType)
		}
		return nil
	}
	return &EncodeError{Kind: Unwritable, Err: errors.Wrapf(ErrUnknownFormat, "%q", string(format))}
}

// unsupported builds the EncodeError for a layout a format cannot carry.
func unsupported(format Format, ct images.ColorType) error {
	return &EncodeError{
		Kind: UnsupportedColorType,
		Err:  errors.Wrapf(images.ErrUnsupportedColorType, "%s cannot store %s", format, ct),
	}
}

// writeFailed wraps an I/O error from the destination writer.
func writeFailed(err error) error {
	return &EncodeError{Kind: Unwritable, Err: err}
}
