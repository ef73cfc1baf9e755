package codec

import "fmt"

// DecodeErrorKind classifies why a decode failed.
type DecodeErrorKind int

const (
	// NotFound means the source file is missing or could not be opened.
	NotFound DecodeErrorKind = iota + 1
	// NotAnImage means the bytes are not a recognized or well-formed image.
	NotAnImage
	// UnsupportedSubformat means the container is valid but holds a layout
	// that has no ColorType, such as a palette when expansion is disabled.
	UnsupportedSubformat
)

func (k DecodeErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case NotAnImage:
		return "not an image"
	case UnsupportedSubformat:
		return "unsupported subformat"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
	}
}

// DecodeError reports a failed decode. Path is empty for stream decodes.
type DecodeError struct {
	Kind DecodeErrorKind
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeErrorKind classifies why an encode failed.
type EncodeErrorKind int

const (
	// Unwritable means the destination could not be created, written or closed.
	Unwritable EncodeErrorKind = iota + 1
	// UnsupportedColorType means the format cannot carry the image's layout.
	UnsupportedColorType
	// InvalidImage means the image failed validation or has a zero dimension.
	InvalidImage
)

func (k EncodeErrorKind) String() string {
	switch k {
	case Unwritable:
		return "unwritable"
	case UnsupportedColorType:
		return "unsupported color type"
	case InvalidImage:
		return "invalid image"
	default:
		return fmt.Sprintf("EncodeErrorKind(%d)", int(k))
	}
}

// EncodeError reports a failed encode. Path is empty for stream encodes.
type EncodeError struct {
	Kind EncodeErrorKind
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("encode: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("encode %s: %s: %v", e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *EncodeError) Unwrap() error { return e.Err }
