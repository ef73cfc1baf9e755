package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidImage returns a width x height image where every pixel is p.
func solidImage(t testing.TB, width, height int, p Pixel) *Image {
	t.Helper()
	img, err := NewBlank(width, height, p.ColorType())
	require.NoError(t, err)
	ch := p.ColorType().Channels()
	for i := 0; i < len(img.Data); i += ch {
		copy(img.Data[i:], p.Channels())
	}
	return img
}

func TestResizeDimensions(t *testing.T) {
	for _, ct := range ColorTypes {
		for _, filter := range []ResampleFilter{NearestNeighborFilter, BilinearFilter, Lanczos3Filter} {
			img := newTestImage(t, 40, 30, ct)
			out, err := img.Resize(20, 45, filter)
			require.NoError(t, err, "%s %s", ct, filter)
			assert.Equal(t, 20, out.Width)
			assert.Equal(t, 45, out.Height)
			assert.Equal(t, ct, out.ColorType)
			require.NoError(t, out.Validate())
		}
	}
}

func TestResizeSolidColorIsPreserved(t *testing.T) {
	tests := []Pixel{
		GrayPixel{Y: 77},
		RGBPixel{R: 200, G: 100, B: 50},
		RGBAlphaPixel{R: 10, G: 20, B: 30, A: 255},
		GrayAlphaPixel{Y: 128, A: 255},
	}

	for _, p := range tests {
		t.Run(p.ColorType().String(), func(t *testing.T) {
			img := solidImage(t, 16, 16, p)
			out, err := img.Resize(7, 9, BilinearFilter)
			require.NoError(t, err)

			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					got, err := out.Pixel(x, y)
					require.NoError(t, err)
					for c, v := range got.Channels() {
						assert.InDelta(t, p.Channels()[c], v, 1, "pixel (%d,%d) channel %d", x, y, c)
					}
				}
			}
		})
	}
}

func TestResizeSameSizeCopies(t *testing.T) {
	img := newTestImage(t, 4, 4, RGB)
	out, err := img.Resize(4, 4, Lanczos3Filter)
	require.NoError(t, err)
	assert.True(t, img.Equal(out))

	out.Data[0] = 250
	assert.Equal(t, byte(0), img.Data[0])
}

func TestResizeEmptySource(t *testing.T) {
	img, err := NewBlank(0, 0, GrayAlpha)
	require.NoError(t, err)
	out, err := img.Resize(3, 2, BilinearFilter)
	require.NoError(t, err)
	assert.Len(t, out.Data, 12)
}

func TestResizeInvalidArguments(t *testing.T) {
	img := newTestImage(t, 4, 4, Gray)

	_, err := img.Resize(0, 4, BilinearFilter)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = img.Resize(4, -1, BilinearFilter)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = img.Resize(2, 2, ResampleFilter(99))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseResampleFilter(t *testing.T) {
	for f, name := range filterNames {
		got, err := ParseResampleFilter(name)
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.Equal(t, name, f.String())
	}

	got, err := ParseResampleFilter("Lanczos")
	require.NoError(t, err)
	assert.Equal(t, Lanczos3Filter, got)

	var f ResampleFilter
	require.NoError(t, f.UnmarshalText([]byte("bicubic")))
	assert.Equal(t, BicubicFilter, f)

	_, err = ParseResampleFilter("sinc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "unknown", ResampleFilter(42).String())
}

func BenchmarkResize(b *testing.B) {
	img := newTestImage(b, 1280, 720, RGB)
	filters := []ResampleFilter{NearestNeighborFilter, BilinearFilter, Lanczos3Filter}
	for _, filter := range filters {
		b.Run(filter.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = img.Resize(640, 360, filter)
			}
		})
	}
}
