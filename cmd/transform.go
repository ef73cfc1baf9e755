package cmd

import (
	"fmt"

	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/pipeline"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var colorType string
	cmd := transformCmd("convert",
		"Convert an image to another color type",
		"Convert an image to gray, rgb, rgba or grayalpha. Color to gray uses the luminance 0.30R + 0.59G + 0.11B; added alpha channels are opaque.",
		func(cmd *cobra.Command, img *images.Image) (*images.Image, error) {
			ct, err := images.ParseColorType(colorType)
			if err != nil {
				return nil, newExitCodeError(err, ExitCodeInvalidArguments)
			}
			return img.Convert(ct)
		})
	cmd.Flags().StringVarP(&colorType, "color-type", "c", "gray", "Target color type: gray, rgb, rgba or grayalpha")
	return cmd
}

func newFlipCmd() *cobra.Command {
	var direction string
	cmd := transformCmd("flip",
		"Flip an image",
		"Flip an image. vertical reverses the row order, horizontal reverses the raw bytes of every row, mirror reverses the pixel order of every row.",
		func(cmd *cobra.Command, img *images.Image) (*images.Image, error) {
			switch pipeline.Direction(direction) {
			case pipeline.DirectionVertical:
				return img.FlipVertical()
			case pipeline.DirectionHorizontal:
				return img.FlipHorizontal()
			case pipeline.DirectionMirror:
				return img.MirrorHorizontal()
			}
			return nil, newExitCodeError(fmt.Errorf("unknown direction %q, expected vertical, horizontal or mirror", direction), ExitCodeInvalidArguments)
		})
	cmd.Flags().StringVarP(&direction, "direction", "d", string(pipeline.DirectionVertical), "Flip direction: vertical, horizontal or mirror")
	return cmd
}

func newMirrorCmd() *cobra.Command {
	return transformCmd("mirror",
		"Mirror an image left to right",
		"Mirror an image left to right, keeping the channels of every pixel in order.",
		func(cmd *cobra.Command, img *images.Image) (*images.Image, error) {
			return img.MirrorHorizontal()
		})
}

func newCropCmd() *cobra.Command {
	var left, right, top, bottom int
	cmd := transformCmd("crop",
		"Remove pixels from the edges of an image",
		"Remove pixels from the edges of an image. Margins apply top, bottom, left, right; a margin at least as large as what remains in its direction is ignored.",
		func(cmd *cobra.Command, img *images.Image) (*images.Image, error) {
			return img.Crop(left, right, top, bottom)
		})
	cmd.Flags().IntVar(&left, "left", 0, "Pixels to remove from the left edge")
	cmd.Flags().IntVar(&right, "right", 0, "Pixels to remove from the right edge")
	cmd.Flags().IntVar(&top, "top", 0, "Pixels to remove from the top edge")
	cmd.Flags().IntVar(&bottom, "bottom", 0, "Pixels to remove from the bottom edge")
	return cmd
}

func newResizeCmd() *cobra.Command {
	var width, height int
	var preset, filter string
	cmd := transformCmd("resize",
		"Scale an image",
		"Scale an image to --width x --height or to a named --preset (see the presets command), keeping its color type.",
		func(cmd *cobra.Command, img *images.Image) (*images.Image, error) {
			f, err := images.ParseResampleFilter(filter)
			if err != nil {
				return nil, newExitCodeError(err, ExitCodeInvalidArguments)
			}
			if preset != "" {
				if width != 0 || height != 0 {
					return nil, newExitCodeError(fmt.Errorf("--preset cannot be combined with --width or --height"), ExitCodeInvalidArguments)
				}
				return img.ResizeToPreset(preset, f)
			}
			return img.Resize(width, height, f)
		})
	cmd.Flags().IntVarP(&width, "width", "W", 0, "Target width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "Target height in pixels")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Named target size, e.g. 720p")
	cmd.Flags().StringVarP(&filter, "filter", "f", images.BilinearFilter.String(), "Resample filter: nearest, bilinear, bicubic, mitchell, lanczos2 or lanczos3")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named resize presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range images.Presets() {
				cmd.Printf(" - %s\n", p)
			}
			return nil
		},
	}
}
