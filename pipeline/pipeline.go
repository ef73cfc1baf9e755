// Package pipeline applies YAML-described sequences of image transforms.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/nvr-ai/go-raster/codec"
	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRecipe is returned for recipes that fail validation.
var ErrInvalidRecipe = errors.New("invalid pipeline recipe")

// Output describes how pipeline results are written.
type Output struct {
	// Format is the container format; empty keeps the caller's choice.
	Format codec.Format `json:"format" yaml:"format"`
	// Options tunes the encoder; nil uses codec.DefaultOptions.
	Options *codec.Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Pipeline is a named, ordered list of steps.
type Pipeline struct {
	// Name identifies the recipe in logs.
	Name string `json:"name" yaml:"name"`
	// Steps run in order, each on the previous step's result.
	Steps []Step `json:"steps" yaml:"steps"`
	// Output is optional encoding guidance for callers that write files.
	Output Output `json:"output" yaml:"output"`

	stages    []stage
	timings   *timeTracker
	debugMode bool
}

// stage is a validated step ready to run.
type stage struct {
	desc string
	run  func(img *images.Image) (*images.Image, error)
}

// Parse reads and validates a YAML recipe. Unknown fields are rejected.
//
// Arguments:
// - data: The YAML document.
//
// Returns:
// - The validated pipeline.
// - An error wrapping ErrInvalidRecipe if the recipe is malformed.
//
// @example
//
//	p, err := pipeline.Parse([]byte(`
//	name: gray
//	steps:
//	  - op: convert
//	    colorType: gray
//	`))
func Parse(data []byte) (*Pipeline, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	p := &Pipeline{}
	if err := dec.Decode(p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrInvalidRecipe, "empty document")
		}
		return nil, errors.Wrapf(ErrInvalidRecipe, "yaml: %v", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads and validates a YAML recipe file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading recipe %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "recipe %s", path)
	}
	return p, nil
}

// Validate checks every step and the output section, and prepares the steps
// for Apply. It must be called again after Steps is modified, and it resets
// Timings.
func (p *Pipeline) Validate() error {
	stages := make([]stage, 0, len(p.Steps))
	for i, s := range p.Steps {
		st, err := s.compile()
		if err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
		stages = append(stages, st)
	}

	switch p.Output.Format {
	case "", codec.PNG, codec.JPEG, codec.WebP:
	default:
		return errors.Wrapf(ErrInvalidRecipe, "output format %q", p.Output.Format)
	}

	p.stages = stages
	p.timings = newTimeTracker(stages)
	return nil
}

// SetDebugMode enables or disables [DEBUG] step tracing on the standard
// logger.
//
// @example
// p.SetDebugMode(true)
func (p *Pipeline) SetDebugMode(enabled bool) {
	p.debugMode = enabled
}

// Apply runs every step in order. The input is never modified; a recipe
// with no steps returns a copy.
//
// Arguments:
// - img: The source image.
//
// Returns:
// - The transformed image.
// - The first step error, wrapped with the step index.
func (p *Pipeline) Apply(img *images.Image) (*images.Image, error) {
	if img == nil {
		return nil, errors.Wrap(images.ErrInvalidArgument, "nil image")
	}
	if p.stages == nil && len(p.Steps) > 0 {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	if p.debugMode {
		log.Printf("[DEBUG] Pipeline %q: input %dx%d %s, %d steps", p.Name, img.Width, img.Height, img.ColorType, len(p.stages))
	}

	out := img
	for i, st := range p.stages {
		start := time.Now()
		next, err := st.run(out)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, st.desc)
		}
		p.timings.record(i, time.Since(start))
		out = next
		if p.debugMode {
			log.Printf("[DEBUG] Step %d %s: %dx%d %s", i, st.desc, out.Width, out.Height, out.ColorType)
		}
	}

	if out == img {
		return img.Clone(), nil
	}
	return out, nil
}

// ApplyBatch runs Apply on many images with at most maxConcurrency in
// flight. Results line up with the inputs.
//
// Arguments:
// - imgs: The source images.
// - maxConcurrency: Maximum number of images processed at once; values
//   below 1 mean 1.
//
// Returns:
// - The transformed images.
// - The error of the lowest-indexed failing image.
//
// @example
// outs, err := p.ApplyBatch([]*images.Image{a, b, c}, 4)
func (p *Pipeline) ApplyBatch(imgs []*images.Image, maxConcurrency int) ([]*images.Image, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	// Compile once up front so goroutines only read p.
	if p.stages == nil && len(p.Steps) > 0 {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	results := make([]*images.Image, len(imgs))
	errs := make([]error, len(imgs))

	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, img := range imgs {
		wg.Add(1)
		go func(idx int, img *images.Image) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			out, err := p.Apply(img)
			if err != nil {
				errs[idx] = fmt.Errorf("image %d: %w", idx, err)
				return
			}
			results[idx] = out
		}(i, img)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
