package processor

import (
	"fmt"
	"io"

	"github.com/lequocbao/image-cropping/internal/imageio"
	"github.com/lequocbao/image-cropping/internal/models"
)

// ValidateImage checks the upload size and that the payload decodes as
// an image. The reader is left positioned at the start.
func (p *ImageProcessor) ValidateImage(file io.ReadSeeker, maxSize int64) error {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("determine file size: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind file: %w", err)
	}

	if size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size %d", size, maxSize)
	}

	if _, _, err := imageio.Decode(file); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

// ValidateRequest rejects requests whose geometry or output settings
// are out of range before any pixels are touched.
func (p *ImageProcessor) ValidateRequest(req *models.ProcessRequest) error {
	if req.Fraction != nil {
		if f := req.Fraction.Fraction; f < 0 || f >= 1 {
			return fmt.Errorf("crop fraction must be in [0, 1), got %v", f)
		}
	}
	if req.Crop != nil {
		if req.Crop.Width <= 0 || req.Crop.Height <= 0 {
			return fmt.Errorf("crop rectangle must have positive size")
		}
		if req.Crop.X < 0 || req.Crop.Y < 0 {
			return fmt.Errorf("crop origin must not be negative")
		}
	}
	if req.Smart != nil && (req.Smart.Width <= 0 || req.Smart.Height <= 0) {
		return fmt.Errorf("smart crop target must have positive size")
	}
	if req.Resize != nil && (req.Resize.Width <= 0 || req.Resize.Height <= 0) {
		return fmt.Errorf("resize target must have positive size")
	}
	if req.Format != "" && !imageio.IsSupported(req.Format) {
		return fmt.Errorf("unsupported output format %q", req.Format)
	}
	if req.Quality < 0 || req.Quality > 100 {
		return fmt.Errorf("quality must be in [0, 100], got %d", req.Quality)
	}
	return nil
}
