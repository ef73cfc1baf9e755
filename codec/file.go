package codec

import (
	"os"
	"path/filepath"

	"github.com/nvr-ai/go-raster/images"
	"github.com/pkg/errors"
)

// DecodeFile decodes the image stored at path. The file is closed before
// returning on every path.
//
// Arguments:
// - path: The file to read.
// - opts: Decode options, or nil for DefaultOptions.
//
// Returns:
// - The decoded image.
// - A *DecodeError carrying path; NotFound if the file cannot be opened.
func DecodeFile(path string, opts *Options) (*images.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Kind: NotFound, Path: path, Err: err}
	}
	defer f.Close()

	img, err := Decode(f, opts)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return img, nil
}

// EncodeFile writes img to path, choosing the format from the extension.
// The image is checked before anything touches the file system, and the
// data is written to a temporary file in the same directory that replaces
// path only once it is complete, so a failed encode leaves any existing
// file untouched.
//
// Arguments:
// - path: The file to create or replace.
// - img: The image to encode.
// - opts: Encode options, or nil for DefaultOptions.
//
// Returns:
// - A *EncodeError carrying path.
func EncodeFile(path string, img *images.Image, opts *Options) (err error) {
	defer func() {
		var ee *EncodeError
		if errors.As(err, &ee) && ee.Path == "" {
			ee.Path = path
		}
	}()

	format, err := FormatFromPath(path)
	if err != nil {
		return &EncodeError{Kind: Unwritable, Err: err}
	}
	if err := checkEncodable(img, format); err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &EncodeError{Kind: Unwritable, Err: err}
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = Encode(f, img, format, opts); err != nil {
		return err
	}
	if err = f.Chmod(mode); err != nil {
		return &EncodeError{Kind: Unwritable, Err: errors.Wrap(err, "setting permissions")}
	}
	if err = f.Close(); err != nil {
		return &EncodeError{Kind: Unwritable, Err: errors.Wrap(err, "closing output")}
	}
	if err = os.Rename(tmp, path); err != nil {
		return &EncodeError{Kind: Unwritable, Err: err}
	}
	return nil
}
