package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage gives every column a distinct red value so tests can
// check exactly which columns survived a crop.
func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	return img
}

func TestCropFractionDimensions(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		fraction  float64
		wantWidth int
	}{
		{"reference 1000x500 at 0.45", 1000, 500, 0.45, 550},
		{"odd width rounds down", 101, 40, 0.45, 56},
		{"zero fraction keeps everything", 80, 60, 0, 80},
		{"small image", 3, 3, 0.45, 2},
		{"single column survives", 10, 10, 0.99, 1},
	}

	p := NewImageProcessor(0.45)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cropped, err := p.CropFraction(gradientImage(tt.width, tt.height), tt.fraction)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, cropped.Bounds().Dx())
			assert.Equal(t, tt.height, cropped.Bounds().Dy())
		})
	}
}

func TestCropFractionPixelMapping(t *testing.T) {
	const width, height, fraction = 100, 20, 0.45
	left := int(float64(width) * fraction)

	src := gradientImage(width, height)
	p := NewImageProcessor(0.45)

	cropped, err := p.CropFraction(src, fraction)
	require.NoError(t, err)

	// Column left+i of the source must be column i of the output.
	for y := 0; y < height; y += 7 {
		for x := 0; x < width-left; x++ {
			want := src.NRGBAAt(x+left, y)
			got := color.NRGBAModel.Convert(cropped.At(x, y)).(color.NRGBA)
			require.Equal(t, want, got, "column %d row %d", x, y)
		}
	}
}

func TestCropFractionRejectsInvalid(t *testing.T) {
	p := NewImageProcessor(0.45)

	for _, fraction := range []float64{-0.1, 1, 1.5} {
		_, err := p.CropFraction(gradientImage(10, 10), fraction)
		assert.Error(t, err, "fraction %v", fraction)
	}
}

func TestCropFractionNonZeroOrigin(t *testing.T) {
	// SubImage views have bounds that do not start at (0,0).
	src := gradientImage(100, 40).SubImage(image.Rect(20, 10, 100, 40)).(*image.NRGBA)
	p := NewImageProcessor(0.45)

	cropped, err := p.CropFraction(src, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 40, cropped.Bounds().Dx())
	assert.Equal(t, 30, cropped.Bounds().Dy())
}

func TestCropRect(t *testing.T) {
	p := NewImageProcessor(0.45)
	src := gradientImage(100, 50)

	cropped, err := p.CropRect(src, &models.CropRequest{X: 10, Y: 5, Width: 30, Height: 20})
	require.NoError(t, err)
	assert.Equal(t, 30, cropped.Bounds().Dx())
	assert.Equal(t, 20, cropped.Bounds().Dy())

	want := src.NRGBAAt(10, 5)
	got := color.NRGBAModel.Convert(cropped.At(0, 0)).(color.NRGBA)
	assert.Equal(t, want, got)
}

func TestCropRectClampsToBounds(t *testing.T) {
	p := NewImageProcessor(0.45)

	cropped, err := p.CropRect(gradientImage(50, 50), &models.CropRequest{X: 40, Y: 40, Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, 10, cropped.Bounds().Dx())
	assert.Equal(t, 10, cropped.Bounds().Dy())
}

func TestCropRectOutsideImage(t *testing.T) {
	p := NewImageProcessor(0.45)

	_, err := p.CropRect(gradientImage(50, 50), &models.CropRequest{X: 60, Y: 0, Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestSmartCropTargetSize(t *testing.T) {
	p := NewImageProcessor(0.45)

	cropped, err := p.SmartCrop(gradientImage(200, 100), 50, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, cropped.Bounds().Dx())
	assert.Equal(t, 50, cropped.Bounds().Dy())
}
