package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lequocbao/image-cropping/internal/config"
	"github.com/lequocbao/image-cropping/internal/models"
	"github.com/lequocbao/image-cropping/internal/services/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Storage.MaxFileSize = 10 * 1024 * 1024
	cfg.Crop.DefaultFraction = 0.45
	cfg.Crop.SmartEnabled = true

	// No storage or queue: uploads are skipped and the URL stays empty.
	h := NewImageHandler(processor.NewImageProcessor(cfg.Crop.DefaultFraction), nil, nil, zap.NewNop(), cfg)

	router := gin.New()
	v1 := router.Group("/api/v1")
	images := v1.Group("/images")
	images.POST("/crop", h.CropImage)
	images.POST("/batch/crop", h.BatchCrop)
	images.POST("/process", h.AdvancedProcess)
	v1.POST("/jobs/crop", h.EnqueueCropJob)

	return router
}

func pngPayload(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{uint8(x % 256), 0, 0, 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, field string, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, data := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCropImageDefaultFraction(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "image",
		map[string][]byte{"photo.png": pngPayload(t, 1000, 500)}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/crop", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(550), data["width"])
	assert.Equal(t, float64(500), data["height"])
	assert.Equal(t, "png", data["format"])
}

func TestCropImageExplicitFraction(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "image",
		map[string][]byte{"photo.png": pngPayload(t, 100, 40)},
		map[string]string{"fraction": "0.2"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/crop", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(80), data["width"])
}

func TestCropImageInvalidFraction(t *testing.T) {
	router := newTestRouter(t)

	for _, fraction := range []string{"1.0", "-0.3", "abc"} {
		body, contentType := multipartUpload(t, "image",
			map[string][]byte{"photo.png": pngPayload(t, 50, 50)},
			map[string]string{"fraction": fraction})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/images/crop", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "fraction %s", fraction)
		assert.False(t, decodeResponse(t, rec).Success)
	}
}

func TestCropImageMissingFile(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "image", nil, map[string]string{"fraction": "0.45"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/crop", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCropImageRejectsNonImage(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "image",
		map[string][]byte{"notes.txt": []byte("plain text")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/crop", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvancedProcessRectCrop(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"crop":{"x":10,"y":5,"width":30,"height":20}}`
	body, contentType := multipartUpload(t, "image",
		map[string][]byte{"photo.png": pngPayload(t, 100, 50)},
		map[string]string{"payload": payload})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(30), data["width"])
	assert.Equal(t, float64(20), data["height"])
}

func TestAdvancedProcessMissingPayload(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "image",
		map[string][]byte{"photo.png": pngPayload(t, 10, 10)}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchCrop(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "images", map[string][]byte{
		"a.png": pngPayload(t, 100, 10),
		"b.png": pngPayload(t, 200, 10),
	}, map[string]string{"fraction": "0.5"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/batch/crop", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	images := data["images"].([]interface{})
	assert.Len(t, images, 2)

	widths := map[float64]bool{}
	for _, raw := range images {
		img := raw.(map[string]interface{})
		widths[img["width"].(float64)] = true
	}
	assert.True(t, widths[50])
	assert.True(t, widths[100])
}

func TestEnqueueCropJobWithoutQueue(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/crop",
		bytes.NewReader([]byte(`{"image_url":"https://example.com/a.png"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
