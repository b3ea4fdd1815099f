package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropJobJSONShape(t *testing.T) {
	job := CropJob{
		ID:       "job-1",
		ImageURL: "https://example.com/a.png",
		Request: ProcessRequest{
			Fraction: &FractionCrop{Fraction: 0.45},
			Format:   FormatPNG,
		},
		Status:    StatusPending,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var decoded CropJob
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, job.ID, decoded.ID)
	assert.Equal(t, job.ImageURL, decoded.ImageURL)
	require.NotNil(t, decoded.Request.Fraction)
	assert.Equal(t, 0.45, decoded.Request.Fraction.Fraction)
	assert.Nil(t, decoded.Request.Crop)
	assert.Equal(t, StatusPending, decoded.Status)

	// Optional sections stay out of the wire format entirely.
	assert.NotContains(t, string(data), "\"crop\"")
	assert.NotContains(t, string(data), "\"smart\"")
	assert.NotContains(t, string(data), "\"result\"")
}
