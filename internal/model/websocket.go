package model

// WebSocket frame types pushed to jewelry-video subscribers
const (
	WSMessageTypeProgress = "progress"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage is the envelope every frame shares
type WSMessage struct {
	Type string `json:"type"`
}

// WSProgressMessage reports a job step
type WSProgressMessage struct {
	Type        string    `json:"type"`
	JobID       string    `json:"jobId"`
	Progress    int       `json:"progress"`
	Status      JobStatus `json:"status"`
	CurrentStep string    `json:"currentStep,omitempty"`
}

// WSCompleteMessage carries the finished video
type WSCompleteMessage struct {
	Type   string              `json:"type"`
	JobID  string              `json:"jobId"`
	Result *JewelryVideoResult `json:"result"`
}

type WSErrorMessage struct {
	Type  string  `json:"type"`
	JobID string  `json:"jobId"`
	Error WSError `json:"error"`
}

type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
