package processor

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/lequocbao/image-cropping/internal/models"
)

// CropFraction discards fraction of the image width from the left edge
// and keeps the full height. The kept region starts at column
// floor(width*fraction), so a 1000px-wide image cropped at 0.45 keeps
// 550 columns.
func (p *ImageProcessor) CropFraction(img image.Image, fraction float64) (image.Image, error) {
	if fraction < 0 || fraction >= 1 {
		return nil, fmt.Errorf("crop fraction must be in [0, 1), got %v", fraction)
	}

	bounds := img.Bounds()
	left := int(float64(bounds.Dx()) * fraction)
	rect := image.Rect(bounds.Min.X+left, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)

	return imaging.Crop(img, rect), nil
}

// CropRect extracts an explicit sub-rectangle, clamped to the image
// bounds. An empty intersection is an error.
func (p *ImageProcessor) CropRect(img image.Image, req *models.CropRequest) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rect(req.X, req.Y, req.X+req.Width, req.Y+req.Height).
		Add(bounds.Min).
		Intersect(bounds)

	if rect.Empty() {
		return nil, fmt.Errorf("crop rectangle (%d,%d %dx%d) is outside the %dx%d image",
			req.X, req.Y, req.Width, req.Height, bounds.Dx(), bounds.Dy())
	}

	return imaging.Crop(img, rect), nil
}
