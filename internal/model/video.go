package model

import "time"

// JewelryVideoRequest is the body of POST /api/generate-jewelry-video
type JewelryVideoRequest struct {
	GemName     string          `json:"gemName" validate:"required,max=100"`
	GemColor    string          `json:"gemColor" validate:"max=50"`
	MetalColor  string          `json:"metalColor" validate:"required,max=50"`
	JewelryType JewelryType     `json:"jewelryType" validate:"required,oneof=ring necklace bracelet earrings"`
	ModelStyle  ModelStyle      `json:"modelStyle,omitempty" validate:"omitempty,oneof=luxury casual editorial minimalist"`
	Background  VideoBackground `json:"background,omitempty" validate:"omitempty,oneof=studio lifestyle gradient transparent"`
	IncludeText *bool           `json:"includeText,omitempty"`
	BrandName   string          `json:"brandName,omitempty" validate:"max=60"`
	HashtagText string          `json:"hashtagText,omitempty" validate:"max=200"`
	UserID      string          `json:"userId,omitempty" validate:"omitempty,uuid"`
}

// JewelryVideoJobPayload is what the worker needs to render a video
type JewelryVideoJobPayload struct {
	UserID      string          `json:"userId,omitempty"`
	JewelryType JewelryType     `json:"jewelryType"`
	ModelStyle  ModelStyle      `json:"modelStyle"`
	Background  VideoBackground `json:"background"`
	IncludeText bool            `json:"includeText"`
	BrandName   string          `json:"brandName"`
	Prompt      string          `json:"prompt"`
}

// JewelryVideoStartResponse is returned when a video job is queued
type JewelryVideoStartResponse struct {
	Success       bool      `json:"success"`
	JobID         string    `json:"jobId"`
	Status        JobStatus `json:"status"`
	Message       string    `json:"message"`
	EstimatedTime int       `json:"estimatedTime"` // seconds
	CreatedAt     time.Time `json:"createdAt"`
}

// JewelryVideoStatusResponse reports a queued or finished video job
type JewelryVideoStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// JewelryVideo is a row of the jewelry_videos table
type JewelryVideo struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	URL         string      `json:"url"`
	Provider    string      `json:"provider"`
	Status      string      `json:"status"`
	JewelryType JewelryType `json:"jewelry_type"`
	Prompt      string      `json:"prompt"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UploadReferenceResponse is returned after a reference image upload
type UploadReferenceResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
