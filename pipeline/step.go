package pipeline

import (
	"fmt"

	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// Op names a step's transform.
type Op string

// Supported operations.
const (
	OpCrop    Op = "crop"
	OpConvert Op = "convert"
	OpFlip    Op = "flip"
	OpResize  Op = "resize"
)

// Direction selects the flip variant.
type Direction string

// Supported flip directions.
const (
	// DirectionVertical reverses row order.
	DirectionVertical Direction = "vertical"
	// DirectionHorizontal reverses the raw bytes of each row.
	DirectionHorizontal Direction = "horizontal"
	// DirectionMirror reverses pixel order within each row.
	DirectionMirror Direction = "mirror"
)

// Step is one transform. Only the fields relevant to Op may be set.
type Step struct {
	Op Op `json:"op" yaml:"op"`

	// crop: margins in pixels, or an explicit region.
	Left   int            `json:"left,omitempty" yaml:"left,omitempty"`
	Right  int            `json:"right,omitempty" yaml:"right,omitempty"`
	Top    int            `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom int            `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Region *images.Region `json:"region,omitempty" yaml:"region,omitempty"`

	// convert
	ColorType string `json:"colorType,omitempty" yaml:"colorType,omitempty"`

	// flip
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`

	// resize: width and height, or a named preset.
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidRecipe, format, args...)
}

func (s Step) hasCropFields() bool {
	return s.Left != 0 || s.Right != 0 || s.Top != 0 || s.Bottom != 0 || s.Region != nil
}

func (s Step) hasResizeFields() bool {
	return s.Width != 0 || s.Height != 0 || s.Preset != "" || s.Filter != ""
}

// compile validates the step and binds it to its transform.
func (s Step) compile() (stage, error) {
	if s.Op != OpCrop && s.hasCropFields() {
		return stage{}, invalid("crop fields on %q step", s.Op)
	}
	if s.Op != OpConvert && s.ColorType != "" {
		return stage{}, invalid("colorType on %q step", s.Op)
	}
	if s.Op != OpFlip && s.Direction != "" {
		return stage{}, invalid("direction on %q step", s.Op)
	}
	if s.Op != OpResize && s.hasResizeFields() {
		return stage{}, invalid("resize fields on %q step", s.Op)
	}

	switch s.Op {
	case OpCrop:
		return s.compileCrop()
	case OpConvert:
		ct, err := images.ParseColorType(s.ColorType)
		if err != nil {
			return stage{}, invalid("convert: colorType %q", s.ColorType)
		}
		return stage{
			desc: fmt.Sprintf("convert to %s", ct),
			run:  func(img *images.Image) (*images.Image, error) { return img.Convert(ct) },
		}, nil
	case OpFlip:
		return s.compileFlip()
	case OpResize:
		return s.compileResize()
	case "":
		return stage{}, invalid("missing op")
	}
	return stage{}, invalid("unknown op %q", s.Op)
}

func (s Step) compileCrop() (stage, error) {
	if s.Region != nil {
		if s.Left != 0 || s.Right != 0 || s.Top != 0 || s.Bottom != 0 {
			return stage{}, invalid("crop: region and margins are exclusive")
		}
		r := *s.Region
		if r.Empty() || r.X1 < 0 || r.Y1 < 0 {
			return stage{}, invalid("crop: region %+v", r)
		}
		return stage{
			desc: fmt.Sprintf("crop region %d,%d-%d,%d", r.X1, r.Y1, r.X2, r.Y2),
			run:  func(img *images.Image) (*images.Image, error) { return img.CropRegion(r) },
		}, nil
	}

	if s.Left < 0 || s.Right < 0 || s.Top < 0 || s.Bottom < 0 {
		return stage{}, invalid("crop: negative margin")
	}
	l, r, t, b := s.Left, s.Right, s.Top, s.Bottom
	return stage{
		desc: fmt.Sprintf("crop l=%d r=%d t=%d b=%d", l, r, t, b),
		run:  func(img *images.Image) (*images.Image, error) { return img.Crop(l, r, t, b) },
	}, nil
}

func (s Step) compileFlip() (stage, error) {
	switch s.Direction {
	case DirectionVertical:
		return stage{desc: "flip vertical", run: (*images.Image).FlipVertical}, nil
	case DirectionHorizontal:
		return stage{desc: "flip horizontal", run: (*images.Image).FlipHorizontal}, nil
	case DirectionMirror:
		return stage{desc: "mirror", run: (*images.Image).MirrorHorizontal}, nil
	}
	return stage{}, invalid("flip: direction %q", s.Direction)
}

func (s Step) compileResize() (stage, error) {
	filter := images.BilinearFilter
	if s.Filter != "" {
		f, err := images.ParseResampleFilter(s.Filter)
		if err != nil {
			return stage{}, invalid("resize: filter %q", s.Filter)
		}
		filter = f
	}

	width, height := s.Width, s.Height
	if s.Preset != "" {
		if width != 0 || height != 0 {
			return stage{}, invalid("resize: preset and size are exclusive")
		}
		p, err := images.LookupPreset(s.Preset)
		if err != nil {
			return stage{}, invalid("resize: preset %q", s.Preset)
		}
		width, height = p.Size.Width, p.Size.Height
	}
	if width <= 0 || height <= 0 {
		return stage{}, invalid("resize: size %dx%d", width, height)
	}

	return stage{
		desc: fmt.Sprintf("resize %dx%d %s", width, height, filter),
		run: func(img *images.Image) (*images.Image, error) {
			return img.Resize(width, height, filter)
		},
	}, nil
}
