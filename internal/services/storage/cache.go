package storage

import (
	"context"
	"crypto/md5"
	"fmt"

	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix = "crop_cache:"
	jobPrefix   = "crop_job:"
)

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GenerateCacheKey hashes the source name and every crop parameter, so
// the same input with the same request always maps to the same entry.
func (s *StorageService) GenerateCacheKey(sourceName string, request *models.ProcessRequest) string {
	hash := md5.New()
	hash.Write([]byte(sourceName))

	if request.Fraction != nil {
		fmt.Fprintf(hash, "fraction_%.4f", request.Fraction.Fraction)
	}
	if request.Crop != nil {
		fmt.Fprintf(hash, "crop_%d_%d_%d_%d",
			request.Crop.X, request.Crop.Y, request.Crop.Width, request.Crop.Height)
	}
	if request.Smart != nil {
		fmt.Fprintf(hash, "smart_%d_%d", request.Smart.Width, request.Smart.Height)
	}
	if request.Resize != nil {
		fmt.Fprintf(hash, "resize_%d_%d", request.Resize.Width, request.Resize.Height)
	}
	if request.Format != "" {
		fmt.Fprintf(hash, "format_%s", request.Format)
	}
	if request.Quality > 0 {
		fmt.Fprintf(hash, "quality_%d", request.Quality)
	}

	return fmt.Sprintf("%s%x", cachePrefix, hash.Sum(nil))
}

// SetJobState stores the serialized state of an async crop job.
func (s *StorageService) SetJobState(ctx context.Context, jobID string, data []byte) error {
	return s.redisClient.Set(ctx, jobPrefix+jobID, data, s.cacheDuration).Err()
}

// GetJobState returns the stored job state, or nil when unknown.
func (s *StorageService) GetJobState(ctx context.Context, jobID string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, jobPrefix+jobID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("job state get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) CleanupCache(ctx context.Context) error {
	keys, err := s.redisClient.Keys(ctx, cachePrefix+"*").Result()
	if err != nil {
		return err
	}

	for _, key := range keys {
		ttl := s.redisClient.TTL(ctx, key).Val()
		if ttl <= 0 {
			s.redisClient.Del(ctx, key)
		}
	}

	return nil
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	info, err := s.redisClient.Info(ctx, "memory").Result()
	if err != nil {
		return nil, err
	}

	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys": dbSize,
		"info":    info,
	}

	return stats, nil
}
