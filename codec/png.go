package codec

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// PNG IHDR colour type bytes.
const (
	pngGray      = 0
	pngRGB       = 2
	pngPalette   = 3
	pngGrayAlpha = 4
	pngRGBAlpha  = 6
)

// ihdrColorOffset is the colour type's offset in the file: signature (8),
// chunk length and type (8), width and height (8), bit depth (1).
const ihdrColorOffset = 25

var pngColorTypes = map[byte]images.ColorType{
	pngGray:      images.Gray,
	pngRGB:       images.RGB,
	pngGrayAlpha: images.GrayAlpha,
	pngRGBAlpha:  images.RGBAlpha,
}

var pngColorBytes = map[images.ColorType]byte{
	images.Gray:      pngGray,
	images.RGB:       pngRGB,
	images.GrayAlpha: pngGrayAlpha,
	images.RGBAlpha:  pngRGBAlpha,
}

// decodePNG decodes a PNG whose ColorType is taken from the IHDR colour
// byte. The standard decoder handles filtering, interlacing and bit depths;
// samples wider than 8 bits keep their high byte.
func decodePNG(data []byte, opts *Options) (*images.Image, error) {
	if len(data) <= ihdrColorOffset || string(data[12:16]) != "IHDR" {
		return nil, &DecodeError{Kind: NotAnImage, Err: errors.New("png: missing IHDR chunk")}
	}
	colorByte := data[ihdrColorOffset]

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: errors.Wrap(err, "png")}
	}

	ct, ok := pngColorTypes[colorByte]
	if !ok {
		if colorByte != pngPalette {
			return nil, &DecodeError{Kind: NotAnImage, Err: errors.Errorf("png: colour type %d", colorByte)}
		}
		if !opts.ExpandPalette {
			return nil, &DecodeError{
				Kind: UnsupportedSubformat,
				Err:  errors.Wrap(images.ErrUnsupportedColorType, "png: palette"),
			}
		}
		ct = paletteColorType(src)
	}

	img, err := images.FromImage(src, ct)
	if err != nil {
		return nil, &DecodeError{Kind: NotAnImage, Err: err}
	}
	return img, nil
}

// paletteColorType is RGBAlpha when any palette entry is translucent.
func paletteColorType(src image.Image) images.ColorType {
	p, ok := src.(*image.Paletted)
	if !ok {
		return images.RGBAlpha
	}
	for _, c := range p.Palette {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return images.RGBAlpha
		}
	}
	return images.RGB
}

// encodePNG writes an 8-bit, non-interlaced PNG whose colour type matches
// the image's ColorType. Rows use filter type 0.
func encodePNG(w io.Writer, img *images.Image) error {
	colorByte, ok := pngColorBytes[img.ColorType]
	if !ok {
		return unsupported(PNG, img.ColorType)
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(img.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(img.Height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorByte
	// Compression, filter and interlace methods are all 0.

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, zlib.DefaultCompression)
	if err != nil {
		return writeFailed(errors.Wrap(err, "png: zlib"))
	}
	filter := []byte{0}
	for y := 0; y < img.Height; y++ {
		if _, err := zw.Write(filter); err != nil {
			return writeFailed(errors.Wrap(err, "png: compressing"))
		}
		if _, err := zw.Write(img.Row(y)); err != nil {
			return writeFailed(errors.Wrap(err, "png: compressing"))
		}
	}
	if err := zw.Close(); err != nil {
		return writeFailed(errors.Wrap(err, "png: compressing"))
	}

	if _, err := w.Write(pngSignature); err != nil {
		return writeFailed(err)
	}
	for _, c := range []struct {
		name string
		data []byte
	}{
		{"IHDR", ihdr[:]},
		{"IDAT", idat.Bytes()},
		{"IEND", nil},
	} {
		if err := writeChunk(w, c.name, c.data); err != nil {
			return writeFailed(errors.Wrapf(err, "png: writing %s", c.name))
		}
	}
	return nil
}

// writeChunk writes length, type, data and the CRC of type and data.
func writeChunk(w io.Writer, name string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], name)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	for _, b := range [][]byte{header[:], data, footer[:]} {
		if len(b) == 0 {
			continue
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
