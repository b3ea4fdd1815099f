// Package imageio decodes and encodes the raster formats the service
// accepts. Decoding understands everything registered below; encoding
// refuses formats it cannot produce instead of silently falling back.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 85

// Decode reads an image and reports the format it was encoded in.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Encode writes img in the given format. Quality applies to lossy
// formats only; pass 0 for the default.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	switch Normalize(format) {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "png":
		return png.Encode(w, img)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, nil)
	case "gif":
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Normalize maps format aliases to the canonical name used by Encode.
func Normalize(format string) string {
	format = strings.ToLower(format)
	switch format {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return format
}

// FormatFromPath infers the output format from a file extension.
// It returns "" when the extension is missing or unknown.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return ""
	}
	format := Normalize(ext)
	if !IsSupported(format) {
		return ""
	}
	return format
}

// IsSupported reports whether Encode can produce the given format.
func IsSupported(format string) bool {
	switch Normalize(format) {
	case "jpeg", "png", "webp", "bmp", "tiff", "gif":
		return true
	}
	return false
}
