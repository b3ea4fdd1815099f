package processor

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/lequocbao/image-cropping/internal/imageio"
	"github.com/lequocbao/image-cropping/internal/models"
)

// ImageProcessor applies the crop pipeline to in-memory images:
// crop geometry first, then an optional resize, then encoding.
type ImageProcessor struct {
	defaultFraction float64
}

func NewImageProcessor(defaultFraction float64) *ImageProcessor {
	return &ImageProcessor{defaultFraction: defaultFraction}
}

// ProcessImage decodes, crops and re-encodes one image according to the
// request. It returns the encoded bytes, the output format and the
// processed image.
func (p *ImageProcessor) ProcessImage(r io.Reader, request *models.ProcessRequest) (*bytes.Buffer, string, image.Image, error) {
	img, format, err := imageio.Decode(r)
	if err != nil {
		return nil, "", nil, err
	}

	processed, err := p.applyCrop(img, request)
	if err != nil {
		return nil, "", nil, err
	}

	if request.Resize != nil {
		processed = p.Resize(processed, request.Resize.Width, request.Resize.Height)
	}

	outputFormat := format
	if request.Format != "" {
		outputFormat = imageio.Normalize(request.Format)
	}

	buffer := &bytes.Buffer{}
	if err := imageio.Encode(buffer, processed, outputFormat, request.Quality); err != nil {
		return nil, "", nil, fmt.Errorf("encode image: %w", err)
	}

	return buffer, outputFormat, processed, nil
}

func (p *ImageProcessor) applyCrop(img image.Image, request *models.ProcessRequest) (image.Image, error) {
	switch {
	case request.Crop != nil:
		return p.CropRect(img, request.Crop)
	case request.Smart != nil:
		return p.SmartCrop(img, request.Smart.Width, request.Smart.Height)
	case request.Fraction != nil:
		return p.CropFraction(img, request.Fraction.Fraction)
	default:
		return p.CropFraction(img, p.defaultFraction)
	}
}
