package cmd

import (
	"errors"
	"os"

	"github.com/nvr-ai/go-raster/codec"
	"github.com/nvr-ai/go-raster/images"
	"github.com/spf13/cobra"
)

// VERSION is set at build time with -ldflags.
var VERSION = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rasterctl",
		Short:         "A CLI tool to transform raster images",
		Long:          `rasterctl decodes PNG, JPEG and WebP images, converts, flips, crops and resizes them, and runs YAML transform recipes over whole directories.`,
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInfoCmd(),
		newConvertCmd(),
		newFlipCmd(),
		newMirrorCmd(),
		newCropCmd(),
		newResizeCmd(),
		newPresetsCmd(),
		newRunCmd(),
	)
	return rootCmd
}

// Execute executes the root command. Failures are returned as
// *ExitCodeError.
func Execute() error {
	rootCmd := newRootCmd()
	rootCmd.SetOut(os.Stdout)
	return execute(rootCmd, os.Args[1:])
}

func execute(rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		exitCodeError := &ExitCodeError{}
		if !errors.As(err, &exitCodeError) {
			// Cobra's own failures are argument and flag errors.
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}
		return err
	}
	return nil
}

// loadImage decodes the image at path.
func loadImage(path string) (*images.Image, error) {
	img, err := codec.DecodeFile(path, nil)
	if err != nil {
		return nil, classify(err)
	}
	return img, nil
}

// saveImage encodes img to path, picking the format from the extension.
func saveImage(cmd *cobra.Command, path string, img *images.Image) error {
	if err := codec.EncodeFile(path, img, nil); err != nil {
		return classify(err)
	}
	cmd.Printf("Wrote %s (%dx%d %s)\n", path, img.Width, img.Height, img.ColorType)
	return nil
}

// transformCmd builds an "<name> [input] [output]" command that decodes the
// input, applies fn and encodes the result.
func transformCmd(use, short, long string, fn func(cmd *cobra.Command, img *images.Image) (*images.Image, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [input] [output]",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			out, err := fn(cmd, img)
			if err != nil {
				return classify(err)
			}
			return saveImage(cmd, args[1], out)
		},
	}
}
