package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nvr-ai/go-raster/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRoundTrip(t *testing.T) {
	for _, ct := range images.ColorTypes {
		t.Run(ct.String(), func(t *testing.T) {
			img := testImage(t, 13, 7, ct)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, PNG, nil))

			back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
			require.NoError(t, err)
			assert.Equal(t, img.Width, back.Width)
			assert.Equal(t, img.Height, back.Height)
			assert.Equal(t, img.ColorType, back.ColorType)
			assert.Equal(t, img.Data, back.Data)
		})
	}
}

func TestPNGHeaderCarriesColorType(t *testing.T) {
	want := map[images.ColorType]byte{
		images.Gray:      0,
		images.RGB:       2,
		images.GrayAlpha: 4,
		images.RGBAlpha:  6,
	}
	for ct, colorByte := range want {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, testImage(t, 3, 2, ct), PNG, nil))
		data := buf.Bytes()

		assert.Equal(t, "IHDR", string(data[12:16]))
		assert.Equal(t, byte(8), data[24], "bit depth")
		assert.Equal(t, colorByte, data[25], ct.String())

		// The standard decoder accepts the stream, CRCs included.
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Width)
		assert.Equal(t, 2, cfg.Height)
	}
}

func TestPNGPaletteExpansion(t *testing.T) {
	opaque := color.Palette{
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), opaque)
	src.SetColorIndex(0, 0, 1)
	src.SetColorIndex(1, 0, 0)
	data := encodeStd(t, src)

	img, err := Decode(bytes.NewReader(data), nil)
	require.NoError(t, err)
	assert.Equal(t, images.RGB, img.ColorType)
	assert.Equal(t, []byte{0, 255, 0, 255, 0, 0}, img.Data)

	_, err = Decode(bytes.NewReader(data), &Options{ExpandPalette: false})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, UnsupportedSubformat, de.Kind)
	assert.ErrorIs(t, err, images.ErrUnsupportedColorType)
}

func TestPNGTranslucentPalette(t *testing.T) {
	translucent := color.Palette{
		color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		color.NRGBA{R: 40, G: 50, B: 60, A: 128},
	}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), translucent)
	src.SetColorIndex(1, 0, 1)

	img, err := Decode(bytes.NewReader(encodeStd(t, src)), nil)
	require.NoError(t, err)
	assert.Equal(t, images.RGBAlpha, img.ColorType)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 128}, img.Data)
}

func BenchmarkPNGEncode(b *testing.B) {
	img := testImage(b, 640, 480, images.RGB)
	var buf bytes.Buffer
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		_ = Encode(&buf, img, PNG, nil)
	}
}
