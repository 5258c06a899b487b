package model

import "time"

// GenerationRequest is the loosely typed body of POST /api/generate-presentation.
// Which fields are required depends on InputMethod.
type GenerationRequest struct {
	InputMethod InputMethod `json:"inputMethod"`
	TextPrompt  string      `json:"textPrompt,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`

	// Workflow configuration
	JewelryType  string `json:"jewelryType"`
	ModelProfile string `json:"modelProfile,omitempty"`
	Background   string `json:"background,omitempty"`
	OutfitConfig string `json:"outfitConfig,omitempty"`
	OutputFormat string `json:"outputFormat,omitempty"`

	// Style options
	StyleReference string `json:"styleReference,omitempty"`
	ColorPalette   string `json:"colorPalette,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	DetailLevel    *int   `json:"detailLevel,omitempty"`
	LightingStyle  string `json:"lightingStyle,omitempty"`

	// Video settings
	VideoDuration string `json:"videoDuration,omitempty"`
	FrameRate     string `json:"frameRate,omitempty"`
	VideoStyle    string `json:"videoStyle,omitempty"`

	// Advanced options
	ModelBodyType  string `json:"modelBodyType,omitempty"`
	SkinTone       string `json:"skinTone,omitempty"`
	IterationMode  string `json:"iterationMode,omitempty"`
	Gender         string `json:"gender,omitempty"`
	NegativePrompt string `json:"negative,omitempty"`

	// User info
	UserID string `json:"userId,omitempty"`
}

// GenerationResponse is returned for successful (200) and still-processing (202) generations
type GenerationResponse struct {
	Success     bool        `json:"success"`
	OutputURL   string      `json:"outputUrl,omitempty"`
	OutputType  OutputType  `json:"outputType,omitempty"`
	InputMethod InputMethod `json:"inputMethod,omitempty"`
	JewelryType string      `json:"jewelryType,omitempty"`
	Simulated   bool        `json:"simulated,omitempty"`
	Status      string      `json:"status,omitempty"`
	ID          string      `json:"id,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// PersistedGeneration is a row of the presentation_generations table
type PersistedGeneration struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	InputMethod   InputMethod `json:"input_method"`
	JewelryType   string      `json:"jewelry_type"`
	OutputURL     string      `json:"output_url"`
	OutputType    OutputType  `json:"output_type"`
	Configuration string      `json:"configuration"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// PresentationListResponse wraps the caller's gallery
type PresentationListResponse struct {
	Presentations []PersistedGeneration `json:"presentations"`
}
