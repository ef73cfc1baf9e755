package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionIoU(t *testing.T) {
	a := Region{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := Region{X1: 5, Y1: 5, X2: 15, Y2: 15}

	// Intersection is 5x5=25, union is 100+100-25=175.
	assert.InDelta(t, 25.0/175.0, a.IoU(b), 1e-6)
	assert.InDelta(t, 1.0, a.IoU(a), 1e-6)
	assert.Equal(t, float32(0), a.IoU(Region{X1: 20, Y1: 20, X2: 30, Y2: 30}))
	assert.Equal(t, Region{X1: 5, Y1: 5, X2: 10, Y2: 10}, a.Intersect(b))
}

func TestCropRegion(t *testing.T) {
	img := newTestImage(t, 4, 3, Gray)

	out, err := img.CropRegion(Region{X1: 1, Y1: 1, X2: 3, Y2: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6}, out.Data)

	// Single column at the right edge.
	out, err = img.CropRegion(Region{X1: 3, Y1: 0, X2: 4, Y2: 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 7, 11}, out.Data)

	out, err = img.CropRegion(img.Bounds())
	require.NoError(t, err)
	assert.True(t, img.Equal(out))
}

func TestCropRegionRejectsOutside(t *testing.T) {
	img := newTestImage(t, 4, 3, Gray)
	for _, r := range []Region{
		{X1: 0, Y1: 0, X2: 5, Y2: 3},
		{X1: -1, Y1: 0, X2: 2, Y2: 2},
		{X1: 2, Y1: 2, X2: 2, Y2: 3},
	} {
		_, err := img.CropRegion(r)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%+v", r)
	}
}

func TestPresets(t *testing.T) {
	p, err := LookupPreset("720P")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1280, Height: 720}, p.Size)
	assert.Equal(t, 0.92, p.MegaPixels())
	assert.Equal(t, "720p (1280x720, 0.92MP)", p.String())

	_, err = LookupPreset("8k")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	all := Presets()
	require.NotEmpty(t, all)
	assert.Equal(t, "thumb", all[0].Name)
	assert.Equal(t, "4k", all[len(all)-1].Name)

	best, ok := LargestPresetWithin(1300, 1000)
	require.True(t, ok)
	assert.Equal(t, "720p", best.Name)

	_, ok = LargestPresetWithin(100, 100)
	assert.False(t, ok)
}

func TestResizeToPreset(t *testing.T) {
	img := newTestImage(t, 256, 256, RGB)
	out, err := img.ResizeToPreset("thumb", NearestNeighborFilter)
	require.NoError(t, err)
	assert.Equal(t, 128, out.Width)
	assert.Equal(t, 128, out.Height)
}
