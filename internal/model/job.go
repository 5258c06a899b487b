package model

import "time"

// Job represents a background job in the system
type Job struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Payload     []byte     `json:"payload,omitempty"`
	Result      []byte     `json:"result,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Job types
const (
	JobTypeJewelryVideo = "jewelry_video"
)

// JewelryVideoResult is stored on a succeeded video job
type JewelryVideoResult struct {
	VideoURL  string `json:"videoUrl"`
	Simulated bool   `json:"simulated,omitempty"`
	RecordID  string `json:"recordId,omitempty"`
}
