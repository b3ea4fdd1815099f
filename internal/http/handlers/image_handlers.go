package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lequocbao/image-cropping/internal/config"
	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/lequocbao/image-cropping/internal/services/processor"
	"github.com/lequocbao/image-cropping/internal/services/queue"
	"github.com/lequocbao/image-cropping/internal/services/storage"
	"go.uber.org/zap"
)

const (
	imageParamKey  = "image"
	imagesParamKey = "images"
)

type ImageHandler struct {
	processor *processor.ImageProcessor
	storage   *storage.StorageService
	queue     *queue.QueueService
	logger    *zap.Logger
	config    *config.Config
}

func NewImageHandler(
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	queue *queue.QueueService,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// CropImage crops one uploaded file by fraction. The fraction defaults
// to the configured value when the form omits it.
func (h *ImageHandler) CropImage(c *gin.Context) {
	file, header, err := h.getUploadedFile(c, imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	req, err := h.parseCropParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.processAndRespond(c, file, header, req)
}

// AdvancedProcess accepts a JSON payload selecting rectangle, smart or
// fraction crop plus an optional resize and format conversion.
func (h *ImageHandler) AdvancedProcess(c *gin.Context) {
	file, header, err := h.getUploadedFile(c, imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	req, err := h.parseAdvancedParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.processAndRespond(c, file, header, req)
}

// BatchCrop applies one crop request to several uploaded files.
func (h *ImageHandler) BatchCrop(c *gin.Context) {
	files, err := h.parseMultipartFiles(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.parseCropParams(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	openedFiles, err := h.openFiles(files)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to open files: "+err.Error())
		return
	}
	defer h.closeFiles(openedFiles)

	images := h.processor.BatchProcess(h.asReaders(openedFiles), req)
	response := h.buildBatchResponse(c.Request.Context(), images, files, req)

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    response,
	})
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "not configured"
	}

	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *ImageHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now(),
	}

	cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to get cache stats", zap.Error(err))
	} else {
		stats["cache"] = cacheStats
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Warn("Failed to get queue stats", zap.Error(err))
		} else {
			stats["queue"] = queueStats
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
