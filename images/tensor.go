package images

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ChannelOrder defines the ordering of tensor dimensions.
type ChannelOrder int

const (
	// ChannelOrderCHW is Channel-Height-Width ordering (common for ONNX).
	ChannelOrderCHW ChannelOrder = iota
	// ChannelOrderHWC is Height-Width-Channel ordering, the image's own layout.
	ChannelOrderHWC
)

// Normalization defines how 8-bit channel values map to float32.
type Normalization int

const (
	// NormalizeNone keeps pixel values as 0-255.
	NormalizeNone Normalization = iota
	// NormalizeZeroToOne scales pixel values to [0, 1].
	NormalizeZeroToOne
	// NormalizeMinusOneToOne scales pixel values to [-1, 1].
	NormalizeMinusOneToOne
)

// Tensor exports the image as a float32 tensor of shape [C, H, W] or
// [H, W, C]. Channels keep their declaration order.
//
// Arguments:
// - order: The dimension ordering.
// - norm: How channel values are scaled.
//
// Returns:
// - A dense tensor backed by a new slice.
// - ErrInvalidArgument for an unknown order or normalization.
//
// @example
// t, err := img.Tensor(ChannelOrderCHW, NormalizeZeroToOne)
func (img *Image) Tensor(order ChannelOrder, norm Normalization) (*tensor.Dense, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty image has no tensor form")
	}

	var scale func(v uint8) float32
	switch norm {
	case NormalizeNone:
		scale = func(v uint8) float32 { return float32(v) }
	case NormalizeZeroToOne:
		scale = func(v uint8) float32 { return float32(v) / 255.0 }
	case NormalizeMinusOneToOne:
		scale = func(v uint8) float32 { return float32(v)/127.5 - 1.0 }
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "normalization %d", int(norm))
	}

	ch := img.ColorType.Channels()
	plane := img.Width * img.Height
	backing := make([]float32, len(img.Data))

	var shape tensor.Shape
	switch order {
	case ChannelOrderHWC:
		for i, v := range img.Data {
			backing[i] = scale(v)
		}
		shape = tensor.Shape{img.Height, img.Width, ch}
	case ChannelOrderCHW:
		for i, v := range img.Data {
			backing[(i%ch)*plane+i/ch] = scale(v)
		}
		shape = tensor.Shape{ch, img.Height, img.Width}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "channel order %d", int(order))
	}

	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing)), nil
}
