//go:build gocv
// +build gocv

package images

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// matTypes maps each color type to its 8-bit OpenCV matrix type.
var matTypes = map[ColorType]gocv.MatType{
	Gray:      gocv.MatTypeCV8UC1,
	GrayAlpha: gocv.MatTypeCV8UC2,
	RGB:       gocv.MatTypeCV8UC3,
	RGBAlpha:  gocv.MatTypeCV8UC4,
}

// ToMat copies the image into a new gocv.Mat. Color images are reordered to
// OpenCV's BGR/BGRA convention. The caller owns the Mat and must Close it.
//
// Arguments:
// - img: The image to copy.
//
// Returns:
// - gocv.Mat: The matrix, CV_8UC1..CV_8UC4 depending on the color type.
// - error: The image's validation error, or an OpenCV failure.
func ToMat(img *Image) (gocv.Mat, error) {
	if err := img.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	if img.Width == 0 || img.Height == 0 {
		return gocv.NewMat(), errors.Wrap(ErrInvalidArgument, "empty image has no Mat form")
	}

	data := make([]byte, len(img.Data))
	copy(data, img.Data)

	src, err := gocv.NewMatFromBytes(img.Height, img.Width, matTypes[img.ColorType], data)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "creating Mat")
	}
	defer src.Close()

	switch img.ColorType {
	case RGB:
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorRGBToBGR)
		if dst.Empty() {
			dst.Close()
			return gocv.NewMat(), errors.New("RGB to BGR conversion failed")
		}
		return dst, nil
	case RGBAlpha:
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorRGBAToBGRA)
		if dst.Empty() {
			dst.Close()
			return gocv.NewMat(), errors.New("RGBA to BGRA conversion failed")
		}
		return dst, nil
	}

	// Clone detaches the Mat from the Go-owned buffer.
	return src.Clone(), nil
}

// FromMat copies an 8-bit OpenCV matrix with 1 to 4 channels into a new
// Image. Channel counts map to Gray, GrayAlpha, RGB (from BGR) and RGBAlpha
// (from BGRA).
//
// Arguments:
// - mat: The matrix to copy; it is not closed.
//
// Returns:
// - *Image: The packed image.
// - error: ErrUnsupportedColorType for other depths or channel counts.
func FromMat(mat gocv.Mat) (*Image, error) {
	if mat.Empty() {
		return nil, errors.Wrap(ErrInvalidArgument, "empty Mat")
	}

	var ct ColorType
	conversion := gocv.ColorConversionCode(-1)
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		ct = Gray
	case gocv.MatTypeCV8UC2:
		ct = GrayAlpha
	case gocv.MatTypeCV8UC3:
		ct, conversion = RGB, gocv.ColorBGRToRGB
	case gocv.MatTypeCV8UC4:
		ct, conversion = RGBAlpha, gocv.ColorBGRAToRGBA
	default:
		return nil, errors.Wrapf(ErrUnsupportedColorType, "Mat type %v", mat.Type())
	}

	src := mat.Clone()
	defer src.Close()

	if conversion >= 0 {
		dst := gocv.NewMat()
		defer dst.Close()
		gocv.CvtColor(src, &dst, conversion)
		if dst.Empty() {
			return nil, errors.New("reordering Mat channels failed")
		}
		return New(dst.Cols(), dst.Rows(), ct, dst.ToBytes())
	}

	return New(src.Cols(), src.Rows(), ct, src.ToBytes())
}
