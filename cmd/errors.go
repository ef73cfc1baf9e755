package cmd

import (
	"errors"

	"github.com/nvr-ai/go-raster/codec"
	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/pipeline"
)

// ExitCodeError carries the process exit code for a failed command.
type ExitCodeError struct {
	originalError error
	exitCode      int
}

func (e *ExitCodeError) Error() string {
	return e.originalError.Error()
}

// Unwrap returns the error that caused the exit.
func (e *ExitCodeError) Unwrap() error {
	return e.originalError
}

// ExitCode returns the process exit code.
func (e *ExitCodeError) ExitCode() int {
	return e.exitCode
}

func newExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{
		originalError: err,
		exitCode:      code,
	}
}

// classify attaches the exit code that best describes err. Errors that
// already carry a code keep it.
func classify(err error) error {
	if err == nil {
		return nil
	}

	exitCodeError := &ExitCodeError{}
	if errors.As(err, &exitCodeError) {
		return err
	}

	code := ExitCodeUnknownError

	var de *codec.DecodeError
	var ee *codec.EncodeError
	switch {
	case errors.As(err, &de):
		switch de.Kind {
		case codec.NotFound:
			code = ExitCodeInputNotFound
		case codec.UnsupportedSubformat:
			code = ExitCodeUnsupportedPalette
		default:
			code = ExitCodeNotAnImage
		}
	case errors.As(err, &ee):
		if ee.Kind == codec.UnsupportedColorType {
			code = ExitCodeUnsupportedFormat
		} else {
			code = ExitCodeOutputError
		}
	case errors.Is(err, pipeline.ErrInvalidRecipe):
		code = ExitCodeInvalidRecipe
	case errors.Is(err, images.ErrInvalidArgument), errors.Is(err, images.ErrUnsupportedColorType):
		code = ExitCodeInvalidArguments
	case errors.Is(err, images.ErrCorruptBuffer), errors.Is(err, images.ErrIndexOutOfRange):
		code = ExitCodeTransformError
	}

	return newExitCodeError(err, code)
}
