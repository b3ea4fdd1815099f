package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lequocbao/image-cropping/internal/models"
	"go.uber.org/zap"
)

type cropJobRequest struct {
	ImageURL string                `json:"image_url" binding:"required,url"`
	Request  models.ProcessRequest `json:"request"`
}

// EnqueueCropJob accepts a URL-based crop job and hands it to the
// queue. The job is processed by a worker; clients poll GetJob.
func (h *ImageHandler) EnqueueCropJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Job queue is not available")
		return
	}

	var body cropJobRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid job request: "+err.Error())
		return
	}

	if body.Request.Fraction == nil && body.Request.Crop == nil && body.Request.Smart == nil {
		body.Request.Fraction = &models.FractionCrop{Fraction: h.config.Crop.DefaultFraction}
	}

	if err := h.processor.ValidateRequest(&body.Request); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job := &models.CropJob{
		ID:        uuid.New().String(),
		ImageURL:  body.ImageURL,
		Request:   body.Request,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := h.queue.PublishJob(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to publish crop job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// GetJob returns the last known state of an async crop job.
func (h *ImageHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	data, err := h.storage.GetJobState(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to read job state", zap.String("job_id", jobID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to read job state")
		return
	}
	if data == nil {
		h.respondError(c, http.StatusNotFound, "Unknown job")
		return
	}

	var job models.CropJob
	if err := json.Unmarshal(data, &job); err != nil {
		h.logger.Error("Corrupt job state", zap.String("job_id", jobID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Corrupt job state")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}
