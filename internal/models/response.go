package models

import (
	"bytes"
	"time"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ProcessedImage describes one stored crop result.
type ProcessedImage struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"original_url"`
	URL         string    `json:"url"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	FileSize    int64     `json:"file_size"`
	ProcessedAt time.Time `json:"processed_at"`
}

type ImageResponse struct {
	URL         string    `json:"url"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FileSize    int64     `json:"file_size"`
	ProcessedAt time.Time `json:"processed_at"`
}

type BatchResponse struct {
	Images []ImageResponse `json:"images,omitempty"`
	Failed []string        `json:"failed,omitempty"`
}

// BatchImage is the in-memory result of processing one file of a batch.
type BatchImage struct {
	Buffer   *bytes.Buffer
	Width    int
	Height   int
	FileSize int64
	Err      error
}

// UploadFile is one payload handed to the storage batch uploader.
type UploadFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
