package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nvr-ai/go-raster/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solid returns an image filled with one pixel value.
func solid(t *testing.T, width, height int, p images.Pixel) *images.Image {
	t.Helper()
	img, err := images.NewBlank(width, height, p.ColorType())
	require.NoError(t, err)
	ch := p.ColorType().Channels()
	for i := 0; i < len(img.Data); i += ch {
		copy(img.Data[i:], p.Channels())
	}
	return img
}

func TestJPEGRoundTrip(t *testing.T) {
	tests := []images.Pixel{
		images.GrayPixel{Y: 120},
		images.RGBPixel{R: 200, G: 60, B: 30},
	}

	for _, p := range tests {
		t.Run(p.ColorType().String(), func(t *testing.T) {
			img := solid(t, 16, 16, p)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, JPEG, &Options{JPEGQuality: 95}))

			back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
			require.NoError(t, err)
			assert.Equal(t, img.ColorType, back.ColorType)
			assert.Equal(t, 16, back.Width)
			assert.Equal(t, 16, back.Height)

			// Lossy: a flat block comes back within a few levels.
			got, err := back.Pixel(8, 8)
			require.NoError(t, err)
			for c, v := range got.Channels() {
				assert.InDelta(t, p.Channels()[c], v, 4, "channel %d", c)
			}
		})
	}
}

func TestJPEGRejectsAlpha(t *testing.T) {
	for _, ct := range []images.ColorType{images.RGBAlpha, images.GrayAlpha} {
		var buf bytes.Buffer
		err := Encode(&buf, testImage(t, 2, 2, ct), JPEG, nil)

		var ee *EncodeError
		require.True(t, errors.As(err, &ee), ct.String())
		assert.Equal(t, UnsupportedColorType, ee.Kind)
		assert.ErrorIs(t, err, images.ErrUnsupportedColorType)
		assert.Zero(t, buf.Len(), "nothing is written")
	}
}

// progressiveGray8x8 is a minimal progressive (SOF2) JPEG: one 8x8 gray
// block, flat quantisation and a single DC scan whose coefficient is 64,
// which reconstructs to 136 everywhere.
func progressiveGray8x8() []byte {
	var b bytes.Buffer
	b.Write([]byte{0xff, 0xd8})

	b.Write([]byte{0xff, 0xdb, 0x00, 0x43, 0x00})
	b.Write(bytes.Repeat([]byte{1}, 64))

	b.Write([]byte{0xff, 0xc2, 0x00, 0x0b, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00})

	b.Write([]byte{0xff, 0xc4, 0x00, 0x14, 0x00, 0x01})
	b.Write(make([]byte, 15))
	b.WriteByte(0x07)

	b.Write([]byte{0xff, 0xda, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00})
	// Code "0" for category 7, then the 7 magnitude bits of 64.
	b.WriteByte(0x40)

	b.Write([]byte{0xff, 0xd9})
	return b.Bytes()
}

func TestJPEGProgressiveDecodes(t *testing.T) {
	img, err := Decode(bytes.NewReader(progressiveGray8x8()), nil)
	require.NoError(t, err)
	assert.Equal(t, images.Gray, img.ColorType)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 8, img.Height)
	for i, v := range img.Data {
		assert.InDelta(t, 136, int(v), 1, "byte %d", i)
	}
}

func TestJPEGTruncatedIsNotAnImage(t *testing.T) {
	data := progressiveGray8x8()
	_, err := Decode(bytes.NewReader(data[:len(data)/2]), nil)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, NotAnImage, de.Kind)
}
