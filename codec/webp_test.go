package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nvr-ai/go-raster/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebPLosslessRoundTrip(t *testing.T) {
	img := testImage(t, 10, 6, images.RGB)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, WebP, nil))

	f, err := Sniff(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, WebP, f)

	back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))
}

func TestWebPOpaqueAlphaDecodesAsRGB(t *testing.T) {
	img := solid(t, 4, 4, images.RGBAlphaPixel{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, WebP, nil))
	back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)
	assert.Equal(t, images.RGB, back.ColorType)
	assert.Equal(t, []byte{1, 2, 3}, back.Data[:3])
}

func TestWebPTranslucentKeepsAlpha(t *testing.T) {
	img := solid(t, 4, 4, images.RGBAlphaPixel{R: 200, G: 100, B: 50, A: 255})
	img.Data[3] = 64

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, WebP, nil))
	back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)
	assert.Equal(t, images.RGBAlpha, back.ColorType)
	assert.Equal(t, 4, back.Width)
	assert.Equal(t, []byte{200, 100, 50, 64}, back.Data[:4])
	assert.True(t, img.Equal(back))
}

func TestWebPTranslucentRoundTrip(t *testing.T) {
	data := []byte{
		200, 100, 50, 64, 10, 20, 30, 128,
		255, 0, 0, 1, 90, 180, 240, 254,
	}
	img, err := images.New(2, 2, images.RGBAlpha, data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, WebP, nil))
	back, err := Decode(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)
	assert.Equal(t, data, back.Data)
}

func TestWebPRejectsGray(t *testing.T) {
	for _, ct := range []images.ColorType{images.Gray, images.GrayAlpha} {
		var buf bytes.Buffer
		err := Encode(&buf, testImage(t, 2, 2, ct), WebP, nil)

		var ee *EncodeError
		require.True(t, errors.As(err, &ee), ct.String())
		assert.Equal(t, UnsupportedColorType, ee.Kind)
	}
}
