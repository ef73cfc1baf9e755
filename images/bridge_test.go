package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToImageGray(t *testing.T) {
	img := newTestImage(t, 3, 2, Gray)
	out, err := img.ToImage()
	require.NoError(t, err)

	g, ok := out.(*image.Gray)
	require.True(t, ok, "gray images export as *image.Gray")
	assert.Equal(t, image.Rect(0, 0, 3, 2), g.Bounds())
	assert.Equal(t, img.Data, g.Pix)
}

func TestToImageColor(t *testing.T) {
	img, err := New(2, 1, RGB, []byte{10, 20, 30, 40, 50, 60})
	require.NoError(t, err)

	out, err := img.ToImage()
	require.NoError(t, err)
	n, ok := out.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, n.Pix)

	ga, err := New(1, 1, GrayAlpha, []byte{9, 128})
	require.NoError(t, err)
	out, err = ga.ToImage()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 9, G: 9, B: 9, A: 128}, out.At(0, 0))
}

func TestFromImageRoundTrip(t *testing.T) {
	for _, ct := range ColorTypes {
		t.Run(ct.String(), func(t *testing.T) {
			img := newTestImage(t, 5, 4, ct)
			std, err := img.ToImage()
			require.NoError(t, err)

			back, err := FromImage(std, ct)
			require.NoError(t, err)
			assert.True(t, img.Equal(back))
		})
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3))

	out, err := FromImage(sub, Gray)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []byte{5, 6, 9, 10}, out.Data)
}

func TestFromImageConvertsWithLuminance(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{G: 255, A: 255})

	out, err := FromImage(src, Gray)
	require.NoError(t, err)
	assert.Equal(t, []byte{76, 150}, out.Data)
}

func TestFromImageErrors(t *testing.T) {
	_, err := FromImage(nil, Gray)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromImage(image.NewGray(image.Rect(0, 0, 1, 1)), ColorType(9))
	assert.ErrorIs(t, err, ErrUnsupportedColorType)
}

func TestFromImageSixteenBitKeepsStraightHighByte(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 3, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0xc8ff, G: 0x6400, B: 0x3280, A: 0x4000})
	src.SetNRGBA64(1, 0, color.NRGBA64{R: 0xffff, G: 0x8000, B: 0x1234, A: 0x0000})
	src.SetNRGBA64(2, 0, color.NRGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0xffff})

	img, err := FromImage(src, RGBAlpha)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0xc8, 0x64, 0x32, 0x40,
		0xff, 0x80, 0x12, 0x00,
		0x01, 0x03, 0x05, 0xff,
	}, img.Data)

	gray := image.NewGray16(image.Rect(0, 0, 2, 1))
	gray.SetGray16(0, 0, color.Gray16{Y: 0x12ff})
	gray.SetGray16(1, 0, color.Gray16{Y: 0xfe01})

	img, err = FromImage(gray, Gray)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0xfe}, img.Data)

	img, err = FromImage(gray, GrayAlpha)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0xff, 0xfe, 0xff}, img.Data)
}

func TestFromImageNRGBAIsStraight(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []byte{200, 100, 50, 64, 9, 8, 7, 0})

	img, err := FromImage(src.SubImage(image.Rect(0, 0, 2, 1)), RGBAlpha)
	require.NoError(t, err)
	assert.Equal(t, []byte{200, 100, 50, 64, 9, 8, 7, 0}, img.Data)
}
