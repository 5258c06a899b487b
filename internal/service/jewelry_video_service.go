package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/mafgems/api/internal/model"
)

const (
	TaskTypeJewelryVideo = "jewelry_video:process"
	QueueVideo           = "video"

	// estimatedVideoSeconds is what the client shows while the job runs
	estimatedVideoSeconds = 30
)

// TaskEnqueuer is the part of *asynq.Client the service needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JewelryVideoService manages jewelry video jobs
type JewelryVideoService struct {
	jobs     JobStore
	enqueuer TaskEnqueuer
	now      func() time.Time
}

func NewJewelryVideoService(jobs JobStore, enqueuer TaskEnqueuer) *JewelryVideoService {
	return &JewelryVideoService{
		jobs:     jobs,
		enqueuer: enqueuer,
		now:      time.Now,
	}
}

// StartVideo records a queued job and hands it to the worker queue
func (s *JewelryVideoService) StartVideo(ctx context.Context, req *model.JewelryVideoRequest) (*model.JewelryVideoStartResponse, error) {
	jobID := uuid.New().String()
	now := s.now()

	in := NewVideoPromptInput(req)
	payload := &model.JewelryVideoJobPayload{
		UserID:      req.UserID,
		JewelryType: in.JewelryType,
		ModelStyle:  in.ModelStyle,
		Background:  in.Background,
		IncludeText: in.IncludeText,
		BrandName:   in.BrandName,
		Prompt:      BuildVideoPrompt(in),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	job := &model.Job{
		ID:        jobID,
		Type:      model.JobTypeJewelryVideo,
		Status:    model.JobStatusQueued,
		Payload:   payloadBytes,
		CreatedAt: now,
	}
	if err := s.jobs.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	task, err := NewJewelryVideoTask(jobID, payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	_, err = s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(QueueVideo),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	return &model.JewelryVideoStartResponse{
		Success:       true,
		JobID:         jobID,
		Status:        model.JobStatusQueued,
		Message:       "Video generation initiated successfully",
		EstimatedTime: estimatedVideoSeconds,
		CreatedAt:     now,
	}, nil
}

// GetStatus reports a job and, once finished, its video URL
func (s *JewelryVideoService) GetStatus(ctx context.Context, jobID string) (*model.JewelryVideoStatusResponse, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &model.JewelryVideoStatusResponse{
		JobID:       job.ID,
		Status:      job.Status,
		Progress:    job.Progress,
		CurrentStep: job.CurrentStep,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	}

	if job.Status == model.JobStatusSucceeded && len(job.Result) > 0 {
		var result model.JewelryVideoResult
		if err := json.Unmarshal(job.Result, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		resp.VideoURL = result.VideoURL
	}

	return resp, nil
}

// UpdateJobProgress updates job progress (called by worker)
func (s *JewelryVideoService) UpdateJobProgress(ctx context.Context, jobID string, progress int, step string) error {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	job.Progress = progress
	job.CurrentStep = step

	if job.Status == model.JobStatusQueued {
		job.Status = model.JobStatusRunning
		now := s.now()
		job.StartedAt = &now
	}

	return s.jobs.SaveJob(ctx, job)
}

// CompleteJob marks job as succeeded (called by worker)
func (s *JewelryVideoService) CompleteJob(ctx context.Context, jobID string, result *model.JewelryVideoResult) error {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	job.Status = model.JobStatusSucceeded
	job.Progress = 100
	job.CurrentStep = ""
	job.Result = resultBytes
	now := s.now()
	job.CompletedAt = &now

	return s.jobs.SaveJob(ctx, job)
}

// FailJob marks job as failed (called by worker)
func (s *JewelryVideoService) FailJob(ctx context.Context, jobID string, errMsg string) error {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	job.Status = model.JobStatusFailed
	job.Error = &errMsg
	now := s.now()
	job.CompletedAt = &now

	return s.jobs.SaveJob(ctx, job)
}

// JewelryVideoTaskPayload is the asynq envelope for a video job
type JewelryVideoTaskPayload struct {
	JobID   string          `json:"jobId"`
	Payload json.RawMessage `json:"payload"`
}

func NewJewelryVideoTask(jobID string, payload []byte) (*asynq.Task, error) {
	data, err := json.Marshal(JewelryVideoTaskPayload{JobID: jobID, Payload: payload})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeJewelryVideo, data), nil
}
