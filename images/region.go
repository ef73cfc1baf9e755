package images

import "github.com/pkg/errors"

// Region is a pixel rectangle inside an image.
type Region struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
	X2 int `json:"x2" yaml:"x2"`
	Y2 int `json:"y2" yaml:"y2"`
}

// Width returns the region's width, or 0 if it is inverted.
func (r Region) Width() int {
	if r.X2 <= r.X1 {
		return 0
	}
	return r.X2 - r.X1
}

// Height returns the region's height, or 0 if it is inverted.
func (r Region) Height() int {
	if r.Y2 <= r.Y1 {
		return 0
	}
	return r.Y2 - r.Y1
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Intersect returns the overlap of two regions. Disjoint regions give the
// zero Region.
func (r Region) Intersect(o Region) Region {
	out := Region{
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
		X2: min(r.X2, o.X2),
		Y2: min(r.Y2, o.Y2),
	}
	if out.Empty() {
		return Region{}
	}
	return out
}

// IoU is the intersection area divided by the union area, in [0, 1].
func (r Region) IoU(o Region) float32 {
	inter := r.Intersect(o)
	if inter.Empty() {
		return 0.0
	}
	ia := inter.Width() * inter.Height()
	union := r.Width()*r.Height() + o.Width()*o.Height() - ia
	return float32(ia) / float32(union)
}

// Bounds returns the region covering the whole image.
func (img *Image) Bounds() Region {
	return Region{X2: img.Width, Y2: img.Height}
}

// CropRegion keeps only the pixels inside r, which must lie within the
// image and be non-empty. It is Crop with the margins worked out from r.
func (img *Image) CropRegion(r Region) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if r.Empty() || r.X1 < 0 || r.Y1 < 0 || r.X2 > img.Width || r.Y2 > img.Height {
		return nil, errors.Wrapf(ErrInvalidArgument, "region %+v outside %dx%d image", r, img.Width, img.Height)
	}
	if r == img.Bounds() {
		return img.Clone(), nil
	}

	// Crop skips a margin equal to the full extent, so only the margins that
	// actually remove pixels are passed on.
	return img.Crop(r.X1, img.Width-r.X2, r.Y1, img.Height-r.Y2)
}
