package models

import "time"

// ProcessRequest describes one crop pipeline run. Exactly one of
// Fraction, Crop or Smart selects the crop geometry; when all are nil
// the server's default fraction applies. Resize, Format and Quality
// shape the output.
type ProcessRequest struct {
	Fraction *FractionCrop  `json:"fraction,omitempty"`
	Crop     *CropRequest   `json:"crop,omitempty"`
	Smart    *SmartCrop     `json:"smart,omitempty"`
	Resize   *ResizeRequest `json:"resize,omitempty"`
	Format   string         `json:"format,omitempty" binding:"omitempty,oneof=jpeg png webp bmp tiff gif"`
	Quality  int            `json:"quality,omitempty" binding:"min=0,max=100"`
}

// CropJob is the unit of work published to the queue for URL-based
// asynchronous cropping.
type CropJob struct {
	ID        string          `json:"id"`
	ImageURL  string          `json:"image_url"`
	Request   ProcessRequest  `json:"request"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Result    *ProcessedImage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
