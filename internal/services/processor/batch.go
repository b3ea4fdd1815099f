package processor

import (
	"io"

	"github.com/lequocbao/image-cropping/internal/models"
)

// BatchProcess runs the same crop request over several files. A failed
// file records its error and does not stop the rest of the batch.
func (p *ImageProcessor) BatchProcess(files []io.Reader, request *models.ProcessRequest) []models.BatchImage {
	images := make([]models.BatchImage, len(files))

	for i, f := range files {
		buffer, _, img, err := p.ProcessImage(f, request)
		if err != nil {
			images[i] = models.BatchImage{Err: err}
			continue
		}

		bounds := img.Bounds()
		images[i] = models.BatchImage{
			Buffer:   buffer,
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			FileSize: int64(buffer.Len()),
		}
	}

	return images
}
