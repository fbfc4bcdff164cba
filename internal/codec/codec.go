// Package codec decodes, transforms, and encodes image files. The geometry
// package decides what to do; a codec backend executes it. Two backends
// exist: a libvips-backed one selected by the govips build tag, and a pure
// Go fallback built on the imaging package and the x/image codecs.
package codec

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/pixelkit/widescreen/internal/geometry"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Codec is the narrow contract the conversion driver needs from an image
// library.
type Codec interface {
	// Probe reports the pixel dimensions and source format of an encoded
	// image without fully decoding it where the backend allows.
	Probe(input []byte) (geometry.Geometry, string, error)

	// Convert decodes input, applies the canvas operations in order, and
	// encodes the result in the given format. Quality applies to lossy
	// formats and is ignored elsewhere.
	Convert(ctx context.Context, input []byte, res geometry.Result, format string, quality int) ([]byte, geometry.Geometry, error)
}

// New returns the backend selected at build time.
func New() (Codec, error) {
	return newCodec()
}

// inputExtensions is the set of file extensions the batch driver picks up.
var inputExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
}

// SupportedInput reports whether path carries a decodable image extension.
func SupportedInput(path string) bool {
	_, ok := inputExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FormatForPath maps an output path extension to an encoder format.
// Unrecognized extensions fall back to png, which every backend can write.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "png"
	}
}
