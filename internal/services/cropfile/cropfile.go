// Package cropfile performs one crop of an image file on disk: decode
// the source, discard a fraction of the width from the left edge, and
// write the remainder to the destination path. The output format
// follows the destination extension.
package cropfile

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/lequocbao/image-cropping/internal/imageio"
	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/lequocbao/image-cropping/internal/services/processor"
	"go.uber.org/zap"
)

// Options describes one file crop. Fraction is the share of the width
// removed from the left edge and must be in [0, 1). When Smart is set
// it replaces the fraction crop with a content-aware crop to the given
// size.
type Options struct {
	SourcePath string
	DestPath   string
	Fraction   float64
	Smart      *models.SmartCrop
}

func (o Options) Validate() error {
	if o.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if o.DestPath == "" {
		return fmt.Errorf("destination path is required")
	}
	if o.Fraction < 0 || o.Fraction >= 1 {
		return fmt.Errorf("crop fraction must be in [0, 1), got %v", o.Fraction)
	}
	if o.Smart != nil && (o.Smart.Width <= 0 || o.Smart.Height <= 0) {
		return fmt.Errorf("smart crop size must be positive, got %dx%d", o.Smart.Width, o.Smart.Height)
	}
	if imageio.FormatFromPath(o.DestPath) == "" {
		return fmt.Errorf("%w: cannot infer output format from %q", ErrEncode, o.DestPath)
	}
	return nil
}

// Result reports what one crop produced.
type Result struct {
	SourcePath   string
	DestPath     string
	SourceWidth  int
	SourceHeight int
	Width        int
	Height       int
	Format       string
	FileSize     int64
}

type Cropper struct {
	processor *processor.ImageProcessor
	logger    *zap.Logger
}

func New(p *processor.ImageProcessor, logger *zap.Logger) *Cropper {
	return &Cropper{processor: p, logger: logger}
}

// Crop runs one source-to-destination crop. The destination is written
// atomically: output goes to a temp file in the destination directory
// and is renamed into place, so a failure never leaves partial output.
func (c *Cropper) Crop(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(opts.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, opts.SourcePath)
		}
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	img, srcFormat, err := imageio.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var cropped image.Image
	if opts.Smart != nil {
		cropped, err = c.processor.SmartCrop(img, opts.Smart.Width, opts.Smart.Height)
	} else {
		cropped, err = c.processor.CropFraction(img, opts.Fraction)
	}
	if err != nil {
		return nil, err
	}

	format := imageio.FormatFromPath(opts.DestPath)
	size, err := c.writeAtomic(opts.DestPath, format, cropped)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SourcePath:   opts.SourcePath,
		DestPath:     opts.DestPath,
		SourceWidth:  img.Bounds().Dx(),
		SourceHeight: img.Bounds().Dy(),
		Width:        cropped.Bounds().Dx(),
		Height:       cropped.Bounds().Dy(),
		Format:       format,
		FileSize:     size,
	}

	c.logger.Info("cropped image",
		zap.String("source", opts.SourcePath),
		zap.String("dest", opts.DestPath),
		zap.String("source_format", srcFormat),
		zap.Float64("fraction", opts.Fraction),
		zap.Bool("smart", opts.Smart != nil),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height),
	)

	return result, nil
}

func (c *Cropper) writeAtomic(destPath, format string, img image.Image) (int64, error) {
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, ".crop-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDestUnwritable, err)
	}
	tmpPath := tmp.Name()

	if err := imageio.Encode(tmp, img, format, imageio.DefaultQuality); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: %v", ErrDestUnwritable, err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("stat output: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: %v", ErrDestUnwritable, err)
	}

	return info.Size(), nil
}
