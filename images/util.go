package images

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// Checksum generates a deterministic checksum of an image's geometry, color
// type and pixel data, used to verify that transforms are idempotent and
// leave their inputs untouched.
//
// Arguments:
// - img: The image to compute the checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string, or "empty" for a nil image.
//
// Example:
//
// ```go
//
//	before := Checksum(img)
//	_, _ = img.FlipVertical()
//	fmt.Println(before == Checksum(img)) // true
//
// ```
func Checksum(img *Image) string {
	if img == nil {
		return "empty"
	}

	var header [17]byte
	binary.BigEndian.PutUint64(header[0:8], uint64(img.Width))
	binary.BigEndian.PutUint64(header[8:16], uint64(img.Height))
	header[16] = byte(img.ColorType)

	hash := md5.New()
	hash.Write(header[:])
	hash.Write(img.Data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
