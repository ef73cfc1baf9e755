package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/go-raster/codec"
	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/pipeline"
	"github.com/nvr-ai/go-raster/util"
	"github.com/spf13/cobra"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	inputDir    string
	outputDir   string
	concurrency int
	debug       bool
	timings     bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [recipe] [input...]",
		Short: "Apply a YAML recipe to images",
		Long:  "Apply a YAML recipe to every input image, or to every image in --input-dir, and write the results to --output-dir. The output format comes from the recipe, or from each input's extension.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return err
			}
			if len(args) == 1 && opts.inputDir == "" {
				return fmt.Errorf("no input images, pass files or --input-dir")
			}
			if opts.outputDir == "" {
				return fmt.Errorf("--output-dir is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecipe(cmd, args[0], args[1:], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.inputDir, "input-dir", "i", "", "Directory whose images are all processed")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "O", "", "Directory to write results to")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 4, "Maximum number of images processed at once")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Log every step")
	cmd.Flags().BoolVar(&opts.timings, "timings", false, "Print per-step timings when done")
	return cmd
}

// source is one decoded input and the name its output is derived from.
type source struct {
	name string
	img  *images.Image
}

func runRecipe(cmd *cobra.Command, recipePath string, inputs []string, opts *runOptions) error {
	p, err := pipeline.Load(recipePath)
	if err != nil {
		return classify(err)
	}
	p.SetDebugMode(opts.debug)

	sources, err := loadSources(inputs, opts.inputDir)
	if err != nil {
		return err
	}
	log.Printf("📂 Loaded %d images for recipe %q", len(sources), p.Name)

	imgs := make([]*images.Image, len(sources))
	for i, s := range sources {
		imgs[i] = s.img
	}

	outs, err := p.ApplyBatch(imgs, opts.concurrency)
	if err != nil {
		return classify(err)
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return newExitCodeError(fmt.Errorf("could not create output directory %s: %w", opts.outputDir, err), ExitCodeOutputError)
	}

	for i, out := range outs {
		path := filepath.Join(opts.outputDir, outputName(sources[i].name, p.Output.Format))
		if err := codec.EncodeFile(path, out, p.Output.Options); err != nil {
			return classify(err)
		}
		cmd.Printf("Wrote %s (%dx%d %s)\n", path, out.Width, out.Height, out.ColorType)
	}

	if opts.timings {
		cmd.Printf("Timings:\n")
		for _, t := range p.Timings() {
			cmd.Printf(" - %s\n", t)
		}
	}

	log.Printf("✅ Recipe %q done: %d images written to %s", p.Name, len(outs), opts.outputDir)
	return nil
}

// loadSources decodes explicit input files followed by the images in dir.
func loadSources(inputs []string, dir string) ([]source, error) {
	var sources []source
	for _, path := range inputs {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: filepath.Base(path), img: img})
	}

	if dir == "" {
		return sources, nil
	}

	files, err := util.LoadDirectoryImageFiles(dir)
	if err != nil {
		return nil, newExitCodeError(err, ExitCodeInputNotFound)
	}
	for _, f := range files {
		img, err := codec.Decode(bytes.NewReader(f.Data), nil)
		if err != nil {
			var de *codec.DecodeError
			if errors.As(err, &de) {
				de.Path = f.Path
			}
			return nil, classify(err)
		}
		sources = append(sources, source{name: f.Name, img: img})
	}
	return sources, nil
}

// outputName swaps the extension of name for format's, when set.
func outputName(name string, format codec.Format) string {
	if format == "" {
		return name
	}
	ext := "." + string(format)
	if format == codec.JPEG {
		ext = ".jpg"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
