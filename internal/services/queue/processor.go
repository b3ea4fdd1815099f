package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/lequocbao/image-cropping/pkg/utils"
	"go.uber.org/zap"
)

const maxDownloadSize = 10 * 1024 * 1024

// decodeCachedResult parses a cached crop result entry.
func decodeCachedResult(data []byte) (*models.ProcessedImage, error) {
	var result models.ProcessedImage
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (q *QueueService) processJob(ctx context.Context, job *models.CropJob) (*models.ProcessedImage, error) {
	cacheKey := q.storage.GenerateCacheKey(job.ImageURL, &job.Request)

	// An identical crop of the same URL may already be cached.
	cachedData, err := q.storage.GetFromCache(ctx, cacheKey)
	if err == nil && cachedData != nil {
		cachedResult, decodeErr := decodeCachedResult(cachedData)
		if decodeErr == nil {
			return cachedResult, nil
		}
		q.logger.Warn("Failed to unmarshal cached result", zap.Error(decodeErr))
	}

	imageData, _, err := utils.DownloadImage(ctx, job.ImageURL, maxDownloadSize)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	buffer, format, img, err := q.processor.ProcessImage(bytes.NewReader(imageData), &job.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to crop image: %w", err)
	}

	filename := utils.GenerateFilename(job.ID, format)
	url, err := q.storage.SaveFile(ctx, buffer.Bytes(), filename, "image/"+format)
	if err != nil {
		return nil, fmt.Errorf("failed to save cropped image: %w", err)
	}

	bounds := img.Bounds()
	result := &models.ProcessedImage{
		ID:          uuid.New().String(),
		OriginalURL: job.ImageURL,
		URL:         url,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Format:      format,
		FileSize:    int64(buffer.Len()),
		ProcessedAt: time.Now(),
	}

	resultBytes, _ := json.Marshal(result)
	if err := q.storage.SetCache(ctx, cacheKey, resultBytes); err != nil {
		q.logger.Warn("Failed to cache result", zap.Error(err))
	}

	return result, nil
}
