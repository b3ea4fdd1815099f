// Command cropper crops one image file: it removes a fraction of the
// width from the left edge and writes the remainder next to it, or
// runs a content-aware crop to a fixed size instead.
//
//	cropper -in thumbnail.png -out thumbnail-cropped.png -fraction 0.45
//	cropper -in thumbnail.png -out social.png -smart 1200x630
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lequocbao/image-cropping/internal/config"
	"github.com/lequocbao/image-cropping/internal/logging"
	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/lequocbao/image-cropping/internal/services/cropfile"
	"github.com/lequocbao/image-cropping/internal/services/processor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var (
		in       = flag.String("in", "", "source image path")
		out      = flag.String("out", "", "destination image path; format follows its extension")
		fraction = flag.Float64("fraction", cfg.Crop.DefaultFraction, "fraction of the width removed from the left edge, in [0, 1)")
		smart    = flag.String("smart", "", "content-aware crop to WxH (e.g. 1200x630) instead of the fraction crop")
	)
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := cropfile.Options{
		SourcePath: *in,
		DestPath:   *out,
		Fraction:   *fraction,
	}

	if *smart != "" {
		if !cfg.Crop.SmartEnabled {
			fmt.Fprintln(os.Stderr, "Error: smart cropping is disabled")
			os.Exit(2)
		}

		size, err := parseSmartSize(*smart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		opts.Smart = size
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cropper := cropfile.New(processor.NewImageProcessor(cfg.Crop.DefaultFraction), logger)

	result, err := cropper.Crop(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error cropping image: %v\n", err)
		os.Exit(exitCode(err))
	}

	fmt.Printf("Successfully cropped image to %s (%dx%d)\n", result.DestPath, result.Width, result.Height)
}

// parseSmartSize parses a WxH size string such as "1200x630".
func parseSmartSize(value string) (*models.SmartCrop, error) {
	parts := strings.SplitN(strings.ToLower(value), "x", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("smart size must look like WxH, got %q", value)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid smart width %q", parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid smart height %q", parts[1])
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("smart size must be positive, got %dx%d", width, height)
	}

	return &models.SmartCrop{Width: width, Height: height}, nil
}

// exitCode distinguishes the failure kinds so scripts can branch on
// the result instead of parsing messages.
func exitCode(err error) int {
	switch {
	case errors.Is(err, cropfile.ErrSourceNotFound):
		return 3
	case errors.Is(err, cropfile.ErrDecode):
		return 4
	case errors.Is(err, cropfile.ErrDestUnwritable):
		return 5
	case errors.Is(err, cropfile.ErrEncode):
		return 6
	default:
		return 1
	}
}
