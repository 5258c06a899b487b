package service

import (
	"context"

	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/model"
)

// PresentationService turns generation requests into provider results
type PresentationService struct {
	executor *generation.Executor
}

func NewPresentationService(executor *generation.Executor) *PresentationService {
	return &PresentationService{executor: executor}
}

// Generate validates req and runs it. Errors are *generation.Error.
func (s *PresentationService) Generate(ctx context.Context, req *model.GenerationRequest) (*generation.Result, error) {
	normalized, err := generation.Normalize(req)
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(ctx, normalized)
}
