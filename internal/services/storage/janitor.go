package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartCacheJanitor sweeps expired crop cache entries in the background
// until ctx is cancelled.
func (s *StorageService) StartCacheJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	go s.runCacheJanitor(ctx, interval, logger)
}

func (s *StorageService) runCacheJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CleanupCache(ctx); err != nil {
				logger.Warn("Cache cleanup failed", zap.Error(err))
			}
		}
	}
}
