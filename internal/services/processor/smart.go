package processor

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// SmartCrop picks the most interesting region with the requested aspect
// ratio and scales it to exactly width x height.
func (p *ImageProcessor) SmartCrop(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("smart crop target must be positive, got %dx%d", width, height)
	}

	analyzer := smartcrop.NewAnalyzer(&resizer{})
	best, err := analyzer.FindBestCrop(img, width, height)
	if err != nil {
		return nil, fmt.Errorf("find best crop: %w", err)
	}

	cropped := imaging.Crop(img, best)
	return imaging.Resize(cropped, width, height, imaging.Lanczos), nil
}

// resizer adapts imaging.Resize to the smartcrop.Resizer interface.
type resizer struct{}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}
