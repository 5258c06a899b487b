package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/model"
	"github.com/mafgems/api/internal/repository"
	"github.com/mafgems/api/internal/service"
	"github.com/rs/zerolog"
)

const (
	videoEndpoint    = "jewelry_model_video_generation"
	videoProvider    = "thenewblack"
	mockVideoURL     = "https://media.coverta.ai/sample-jewelry-video.mp4"
	errCodeVideoFail = "VIDEO_FAILED"
)

// VideoProvider is the part of the The New Black client the worker uses
type VideoProvider interface {
	IsConfigured() bool
	PostJSON(ctx context.Context, endpoint string, body interface{}) (*client.ProviderResponse, error)
	PostForm(ctx context.Context, endpoint string, fields []client.FormField) (*client.ProviderResponse, error)
}

// Broadcaster pushes job frames to websocket subscribers
type Broadcaster interface {
	BroadcastProgress(jobID string, progress int, status model.JobStatus, step string)
	BroadcastComplete(jobID string, result *model.JewelryVideoResult)
	BroadcastError(jobID string, code, message string)
}

// JewelryVideoWorker processes jewelry video jobs
type JewelryVideoWorker struct {
	videoService    *service.JewelryVideoService
	provider        VideoProvider
	videos          repository.VideoStore
	hub             Broadcaster
	poll            generation.PollPolicy
	resultsEndpoint string
	mockStepDelay   time.Duration
	log             zerolog.Logger
	metrics         *metrics.Metrics
	// retriesLeft reports whether asynq will run the task again
	retriesLeft func(ctx context.Context) bool
}

type Option func(*JewelryVideoWorker)

func WithPollPolicy(p generation.PollPolicy) Option {
	return func(w *JewelryVideoWorker) { w.poll = p }
}

func WithResultsEndpoint(endpoint string) Option {
	return func(w *JewelryVideoWorker) {
		if endpoint != "" {
			w.resultsEndpoint = endpoint
		}
	}
}

// WithMockStepDelay sets the pause between simulated progress steps
func WithMockStepDelay(d time.Duration) Option {
	return func(w *JewelryVideoWorker) { w.mockStepDelay = d }
}

func WithLogger(log zerolog.Logger) Option {
	return func(w *JewelryVideoWorker) { w.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *JewelryVideoWorker) { w.metrics = m }
}

// NewJewelryVideoWorker creates a new jewelry video worker. videos may be nil.
func NewJewelryVideoWorker(videoService *service.JewelryVideoService, provider VideoProvider, videos repository.VideoStore, hub Broadcaster, opts ...Option) *JewelryVideoWorker {
	w := &JewelryVideoWorker{
		videoService:    videoService,
		provider:        provider,
		videos:          videos,
		hub:             hub,
		poll:            generation.DefaultPollPolicy(),
		resultsEndpoint: "results",
		mockStepDelay:   time.Second,
		log:             zerolog.Nop(),
		retriesLeft:     asynqRetriesLeft,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ProcessTask handles jewelry video task processing
func (w *JewelryVideoWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload service.JewelryVideoTaskPayload
	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w: %w", err, asynq.SkipRetry)
	}

	jobID := taskPayload.JobID
	log := w.log.With().Str("job_id", jobID).Logger()
	log.Info().Msg("[VideoWorker] starting jewelry video job")

	var payload model.JewelryVideoJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal video payload: %w: %w", err, asynq.SkipRetry)
	}

	var (
		result *model.JewelryVideoResult
		err    error
	)
	if w.provider == nil || !w.provider.IsConfigured() {
		result, err = w.processWithMock(ctx, jobID)
	} else {
		result, err = w.processWithProvider(ctx, jobID, &payload)
	}
	if err != nil {
		w.metrics.IncVideoJob(string(model.JobStatusFailed))
		return err
	}

	w.updateProgress(ctx, jobID, 95, "Saving video...")
	result.RecordID = w.persist(ctx, jobID, &payload, result.VideoURL)

	if err := w.videoService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(jobID, result)
	w.metrics.IncVideoJob(string(model.JobStatusSucceeded))
	log.Info().Bool("simulated", result.Simulated).Msg("[VideoWorker] jewelry video job completed")
	return nil
}

// processWithProvider submits the prompt and polls until the video is ready
func (w *JewelryVideoWorker) processWithProvider(ctx context.Context, jobID string, payload *model.JewelryVideoJobPayload) (*model.JewelryVideoResult, error) {
	w.updateProgress(ctx, jobID, 10, "Submitting to The New Black AI...")

	resp, err := w.provider.PostJSON(ctx, videoEndpoint, map[string]interface{}{
		"prompt":           payload.Prompt,
		"jewelry_type":     payload.JewelryType,
		"style":            payload.ModelStyle,
		"background_type":  payload.Background,
		"output_format":    "mp4",
		"resolution":       "1080p",
		"duration":         15,
		"include_branding": payload.IncludeText,
		"brand_name":       payload.BrandName,
	})
	if err != nil {
		w.failOrRetry(ctx, jobID, fmt.Sprintf("Failed to process video generation request: %v", err))
		return nil, err
	}

	if !resp.OK() {
		w.log.Error().Str("job_id", jobID).Int("status", resp.StatusCode).Str("details", string(resp.Body)).
			Msg("[VideoWorker] New Black AI API error")
		err := fmt.Errorf("provider returned %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
			w.failJob(ctx, jobID, "Failed to generate video with New Black AI")
			return nil, fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		w.failOrRetry(ctx, jobID, "Failed to generate video with New Black AI")
		return nil, err
	}

	var body interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		w.failJob(ctx, jobID, "Failed to parse API response")
		return nil, fmt.Errorf("failed to parse provider response: %w: %w", err, asynq.SkipRetry)
	}

	if url := videoURL(body); url != "" {
		return &model.JewelryVideoResult{VideoURL: url}, nil
	}

	id := generation.ExtractID(body)
	if id == "" {
		w.failJob(ctx, jobID, "API returned invalid response: missing generation id")
		return nil, fmt.Errorf("provider response has neither video url nor id: %w", asynq.SkipRetry)
	}

	w.updateProgress(ctx, jobID, 40, "Waiting for video render...")

	var url string
	attempts, ok := w.poll.Run(ctx, func(ctx context.Context, n int) bool {
		resp, err := w.provider.PostForm(ctx, w.resultsEndpoint, []client.FormField{{Name: "id", Value: id}})
		if err != nil || !resp.OK() {
			return false
		}
		url = generation.ExtractPollURL(resp.Body)
		if url == "" {
			w.updateProgress(ctx, jobID, 40+n*40/w.poll.MaxAttempts, "Waiting for video render...")
		}
		return url != ""
	})
	w.metrics.ObservePoll(attempts, ok)

	if !ok {
		w.failOrRetry(ctx, jobID, "Video generation timed out")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.New("video not ready after poll budget")
	}

	return &model.JewelryVideoResult{VideoURL: url}, nil
}

// processWithMock walks simulated steps and returns the placeholder video
func (w *JewelryVideoWorker) processWithMock(ctx context.Context, jobID string) (*model.JewelryVideoResult, error) {
	steps := []struct {
		progress int
		step     string
	}{
		{10, "Building video prompt..."},
		{30, "Styling model..."},
		{60, "Rendering video..."},
		{90, "Finalizing..."},
	}

	for _, step := range steps {
		if ctx.Err() != nil {
			w.log.Info().Str("job_id", jobID).Msg("[VideoWorker] job cancelled")
			return nil, ctx.Err()
		}

		w.updateProgress(ctx, jobID, step.progress, step.step)
		if err := sleepCtx(ctx, w.mockStepDelay); err != nil {
			w.log.Info().Str("job_id", jobID).Msg("[VideoWorker] job cancelled")
			return nil, err
		}
	}

	return &model.JewelryVideoResult{VideoURL: mockVideoURL, Simulated: true}, nil
}

// persist writes the jewelry_videos row; failures are logged only
func (w *JewelryVideoWorker) persist(ctx context.Context, jobID string, payload *model.JewelryVideoJobPayload, url string) string {
	if w.videos == nil || strings.TrimSpace(payload.UserID) == "" {
		return ""
	}

	row := &model.JewelryVideo{
		ID:          uuid.New().String(),
		UserID:      payload.UserID,
		URL:         url,
		Provider:    videoProvider,
		Status:      model.GenerationStatusCompleted,
		JewelryType: payload.JewelryType,
		Prompt:      payload.Prompt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := w.videos.InsertJewelryVideo(ctx, row); err != nil {
		w.metrics.IncSideEffectFailure("persist_jewelry_video")
		w.log.Warn().Err(err).Str("job_id", jobID).Msg("[Database Save Error] jewelry video not recorded")
		return ""
	}
	return row.ID
}

func (w *JewelryVideoWorker) updateProgress(ctx context.Context, jobID string, progress int, step string) {
	if err := w.videoService.UpdateJobProgress(ctx, jobID, progress, step); err != nil {
		w.log.Warn().Err(err).Str("job_id", jobID).Msg("[VideoWorker] failed to update progress")
	}
	w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)
}

// failOrRetry fails the job only when asynq has no retry left. Otherwise the
// job stays running and subscribers get a progress frame.
func (w *JewelryVideoWorker) failOrRetry(ctx context.Context, jobID, errMsg string) {
	if w.retriesLeft(ctx) {
		w.log.Warn().Str("job_id", jobID).Str("reason", errMsg).Msg("[VideoWorker] attempt failed, will retry")
		w.updateProgress(ctx, jobID, 5, "Retrying...")
		return
	}
	w.failJob(ctx, jobID, errMsg)
}

func (w *JewelryVideoWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.videoService.FailJob(ctx, jobID, errMsg); err != nil {
		w.log.Warn().Err(err).Str("job_id", jobID).Msg("[VideoWorker] failed to mark job as failed")
	}
	w.hub.BroadcastError(jobID, errCodeVideoFail, errMsg)
}

// videoURL reads video_url, falling back to output_url
func videoURL(body interface{}) string {
	obj, ok := body.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, k := range []string{"video_url", "output_url"} {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asynqRetriesLeft(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return false
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	return ok && retried < maxRetry
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
