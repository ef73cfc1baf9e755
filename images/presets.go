package images

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// AspectRatio names the shape of a preset (e.g., "16:9").
type AspectRatio string

// Common aspect ratios.
const (
	AspectRatio11  AspectRatio = "1:1"
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
	AspectRatio54  AspectRatio = "5:4"
	AspectRatio32  AspectRatio = "3:2"
)

// Size is a target size in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Preset is a named resize target.
type Preset struct {
	Name        string      `json:"name" yaml:"name"`
	AspectRatio AspectRatio `json:"aspectRatio" yaml:"aspectRatio"`
	Size        Size        `json:"size" yaml:"size"`
}

// MegaPixels returns the preset's pixel count in millions, rounded to two
// decimal places (e.g., 2.07 for 1080p).
func (p Preset) MegaPixels() float64 {
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return 0.0
	}
	mp := float64(p.Size.Width*p.Size.Height) / 1_000_000.0
	return math.Round(mp*100) / 100
}

// String returns a human-readable summary of the preset.
func (p Preset) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", p.Name, p.Size.Width, p.Size.Height, p.MegaPixels())
}

// presets is keyed by lower-case name.
var presets = map[string]Preset{
	"thumb":  {Name: "thumb", AspectRatio: AspectRatio11, Size: Size{Width: 128, Height: 128}},
	"square": {Name: "square", AspectRatio: AspectRatio11, Size: Size{Width: 224, Height: 224}},
	"yolo":   {Name: "yolo", AspectRatio: AspectRatio11, Size: Size{Width: 640, Height: 640}},
	"vga":    {Name: "vga", AspectRatio: AspectRatio43, Size: Size{Width: 640, Height: 480}},
	"360p":   {Name: "360p", AspectRatio: AspectRatio169, Size: Size{Width: 640, Height: 360}},
	"480p":   {Name: "480p", AspectRatio: AspectRatio169, Size: Size{Width: 854, Height: 480}},
	"540p":   {Name: "540p", AspectRatio: AspectRatio169, Size: Size{Width: 960, Height: 540}},
	"720p":   {Name: "720p", AspectRatio: AspectRatio169, Size: Size{Width: 1280, Height: 720}},
	"1mp":    {Name: "1mp", AspectRatio: AspectRatio54, Size: Size{Width: 1280, Height: 1024}},
	"1080p":  {Name: "1080p", AspectRatio: AspectRatio169, Size: Size{Width: 1920, Height: 1080}},
	"2mp":    {Name: "2mp", AspectRatio: AspectRatio43, Size: Size{Width: 1600, Height: 1200}},
	"1440p":  {Name: "1440p", AspectRatio: AspectRatio169, Size: Size{Width: 2560, Height: 1440}},
	"6mp":    {Name: "6mp", AspectRatio: AspectRatio32, Size: Size{Width: 3072, Height: 2048}},
	"4k":     {Name: "4k", AspectRatio: AspectRatio169, Size: Size{Width: 3840, Height: 2160}},
}

// Presets returns every preset ordered by pixel count, then name.
func Presets() []Preset {
	all := make([]Preset, 0, len(presets))
	for _, p := range presets {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		ai, aj := all[i].Size.Width*all[i].Size.Height, all[j].Size.Width*all[j].Size.Height
		if ai != aj {
			return ai < aj
		}
		return all[i].Name < all[j].Name
	})
	return all
}

// LookupPreset finds a preset by name, ignoring case.
//
// Arguments:
// - name: The preset name (e.g., "720p").
//
// Returns:
// - The preset.
// - ErrInvalidArgument if no preset has that name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, errors.Wrapf(ErrInvalidArgument, "unknown preset %q", name)
	}
	return p, nil
}

// LargestPresetWithin returns the preset with the most pixels that fits
// inside width x height. Ties go to the name that sorts first.
//
// Arguments:
//   - width: The maximum width.
//   - height: The maximum height.
//
// Returns:
//   - Preset: The largest fitting preset.
//   - bool: False when nothing fits.
func LargestPresetWithin(width, height int) (Preset, bool) {
	var best Preset
	found := false
	for _, p := range Presets() {
		if p.Size.Width <= width && p.Size.Height <= height {
			if !found || p.Size.Width*p.Size.Height > best.Size.Width*best.Size.Height {
				best = p
				found = true
			}
		}
	}
	return best, found
}

// ResizeToPreset scales the image to a named preset.
func (img *Image) ResizeToPreset(name string, filter ResampleFilter) (*Image, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return img.Resize(p.Size.Width, p.Size.Height, filter)
}
