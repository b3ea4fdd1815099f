package models

// FractionCrop discards a fraction of the image width from the left
// edge and keeps the full height. A fraction of 0.45 keeps the
// right-hand 55% of the image.
type FractionCrop struct {
	Fraction float64 `json:"fraction" binding:"min=0,lt=1"`
}

// CropRequest selects an explicit sub-rectangle of the source image.
type CropRequest struct {
	X      int `json:"x" binding:"min=0"`
	Y      int `json:"y" binding:"min=0"`
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

// SmartCrop asks for a content-aware crop to the given target size.
type SmartCrop struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}
