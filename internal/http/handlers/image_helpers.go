package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lequocbao/image-cropping/internal/imageio"
	"github.com/lequocbao/image-cropping/internal/models"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

func (h *ImageHandler) parseCropParams(c *gin.Context) (*models.ProcessRequest, error) {
	req := &models.ProcessRequest{
		Format:  c.PostForm("format"),
		Quality: h.parseQuality(c.PostForm("quality")),
	}

	if value := c.PostForm("fraction"); value != "" {
		fraction, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fraction: must be a number")
		}
		req.Fraction = &models.FractionCrop{Fraction: fraction}
	} else {
		req.Fraction = &models.FractionCrop{Fraction: h.config.Crop.DefaultFraction}
	}

	if err := h.processor.ValidateRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (h *ImageHandler) parseAdvancedParams(c *gin.Context) (*models.ProcessRequest, error) {
	jsonStr := c.PostForm("payload")
	if jsonStr == "" {
		return nil, fmt.Errorf("missing payload parameter")
	}

	var req models.ProcessRequest
	if err := json.Unmarshal([]byte(jsonStr), &req); err != nil {
		return nil, fmt.Errorf("invalid processing request: %v", err)
	}

	if req.Smart != nil && !h.config.Crop.SmartEnabled {
		return nil, fmt.Errorf("smart cropping is disabled")
	}

	if err := h.processor.ValidateRequest(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

func (h *ImageHandler) parseMultipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(h.config.Storage.MaxFileSize * 10); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %v", err)
	}

	files := c.Request.MultipartForm.File[imagesParamKey]
	if len(files) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	return files, nil
}

func (h *ImageHandler) parseQuality(value string) int {
	if value == "" {
		return 0 // encoder default
	}

	quality, err := strconv.Atoi(value)
	if err != nil || quality < 1 || quality > 100 {
		return 0
	}

	return quality
}

// === FILE OPERATIONS ===

func (h *ImageHandler) getUploadedFile(c *gin.Context, paramKey string) (multipart.File, *multipart.FileHeader, error) {
	return c.Request.FormFile(paramKey)
}

func (h *ImageHandler) openFiles(files []*multipart.FileHeader) ([]multipart.File, error) {
	var openedFiles []multipart.File

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.closeFiles(openedFiles)
			return nil, err
		}
		openedFiles = append(openedFiles, f)
	}

	return openedFiles, nil
}

func (h *ImageHandler) closeFiles(files []multipart.File) {
	for _, file := range files {
		if file != nil {
			file.Close()
		}
	}
}

func (h *ImageHandler) asReaders(files []multipart.File) []io.Reader {
	readers := make([]io.Reader, len(files))
	for i, f := range files {
		readers[i] = f
	}
	return readers
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ImageHandler) respondWithResult(
	c *gin.Context,
	buffer *bytes.Buffer,
	header *multipart.FileHeader,
	format string,
	img image.Image,
) {
	imageURL := h.uploadToStorage(c.Request.Context(), buffer, header, format)
	bounds := img.Bounds()

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: models.ProcessedImage{
			ID:          uuid.New().String(),
			OriginalURL: header.Filename,
			URL:         imageURL,
			Width:       bounds.Dx(),
			Height:      bounds.Dy(),
			Format:      format,
			FileSize:    int64(buffer.Len()),
			ProcessedAt: time.Now(),
		},
	})
}

// === PROCESSING LOGIC ===

func (h *ImageHandler) processAndRespond(c *gin.Context, file multipart.File, header *multipart.FileHeader, req *models.ProcessRequest) {
	if err := h.processor.ValidateImage(file, h.config.Storage.MaxFileSize); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid image: %v", err))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("Failed to reset file pointer", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Internal file error")
		return
	}

	buffer, format, processedImg, err := h.processor.ProcessImage(file, req)
	if err != nil {
		h.logger.Error("Processing failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to crop image")
		return
	}

	h.respondWithResult(c, buffer, header, format, processedImg)
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}

func (h *ImageHandler) generateNewFilename(originalFilename, format string) string {
	ext := "." + format
	return strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename)) + ext
}

func (h *ImageHandler) buildBatchResponse(ctx context.Context, images []models.BatchImage, files []*multipart.FileHeader, req *models.ProcessRequest) models.BatchResponse {
	var batchResponse models.BatchResponse

	var uploads []models.UploadFile
	var uploadIdx []int

	for i, img := range images {
		if img.Err != nil {
			batchResponse.Failed = append(batchResponse.Failed,
				fmt.Sprintf("%s: %v", files[i].Filename, img.Err))
			continue
		}

		format := h.outputFormat(req, files[i].Filename)
		uploads = append(uploads, models.UploadFile{
			Data:        img.Buffer.Bytes(),
			Filename:    h.generateNewFilename(files[i].Filename, format),
			ContentType: "image/" + format,
		})
		uploadIdx = append(uploadIdx, i)
	}

	urls := h.uploadBatch(ctx, uploads)

	for n, i := range uploadIdx {
		img := images[i]
		batchResponse.Images = append(batchResponse.Images, models.ImageResponse{
			URL:         urls[n],
			Width:       img.Width,
			Height:      img.Height,
			FileSize:    img.FileSize,
			ProcessedAt: time.Now(),
		})
	}

	return batchResponse
}

// outputFormat resolves the encoded format for one file: the requested
// format when set, otherwise the file's own extension, both normalized
// to canonical names ("JPG" and "jpg" both come back as "jpeg").
func (h *ImageHandler) outputFormat(req *models.ProcessRequest, filename string) string {
	format := req.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(filename), ".")
	}
	return imageio.Normalize(format)
}

// === STORAGE OPERATIONS ===

// uploadBatch pushes processed buffers through the storage batch
// uploader. The result is positional, an empty string marking an entry
// that could not be stored.
func (h *ImageHandler) uploadBatch(ctx context.Context, uploads []models.UploadFile) []string {
	urls := make([]string, len(uploads))
	if h.storage == nil || len(uploads) == 0 {
		return urls
	}

	uploaded, err := h.storage.UploadMultiple(ctx, uploads)
	if err != nil {
		h.logger.Warn("Batch upload incomplete", zap.Error(err))
	}
	copy(urls, uploaded)

	return urls
}

func (h *ImageHandler) uploadToStorage(ctx context.Context, buffer *bytes.Buffer, header *multipart.FileHeader, format string) string {
	if h.storage == nil {
		return ""
	}

	newFilename := h.generateNewFilename(header.Filename, format)
	url, err := h.storage.Upload(ctx, buffer, newFilename, "image/"+format)
	if err != nil {
		h.logger.Warn("Failed to upload to storage", zap.Error(err))
		return ""
	}

	return url
}
