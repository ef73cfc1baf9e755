package images

import "github.com/pkg/errors"

// Error sentinels returned by the pixel-buffer operations. They are always
// wrapped with the offending coordinates or sizes, so compare with errors.Is.
var (
	// ErrIndexOutOfRange is returned when pixel coordinates fall outside
	// [0,width)x[0,height).
	ErrIndexOutOfRange = errors.New("pixel index out of range")
	// ErrUnsupportedColorType is returned when a value outside the four
	// supported channel layouts reaches a component expecting one.
	ErrUnsupportedColorType = errors.New("unsupported color type")
	// ErrCorruptBuffer is returned when the data length disagrees with
	// width*height*channels, or the dimensions are negative.
	ErrCorruptBuffer = errors.New("corrupt pixel buffer")
	// ErrInvalidArgument is returned for nonsensical transform arguments such
	// as negative crop amounts or a zero resize target.
	ErrInvalidArgument = errors.New("invalid argument")
)
