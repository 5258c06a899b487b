package service

import (
	"context"

	"github.com/mafgems/api/internal/model"
	"github.com/mafgems/api/internal/repository"
)

// GalleryService reads and prunes a user's persisted generations
type GalleryService struct {
	generations repository.GenerationStore
	videos      repository.VideoStore
}

func NewGalleryService(generations repository.GenerationStore, videos repository.VideoStore) *GalleryService {
	return &GalleryService{generations: generations, videos: videos}
}

func (s *GalleryService) ListPresentations(ctx context.Context, userID string, limit int) ([]model.PersistedGeneration, error) {
	return s.generations.ListGenerations(ctx, userID, limit)
}

// DeletePresentation removes one of userID's rows; repository.ErrNotFound
// when it does not exist or is not theirs
func (s *GalleryService) DeletePresentation(ctx context.Context, userID, id string) error {
	return s.generations.DeleteGeneration(ctx, userID, id)
}

func (s *GalleryService) ListJewelryVideos(ctx context.Context, userID string, limit int) ([]model.JewelryVideo, error) {
	return s.videos.ListJewelryVideos(ctx, userID, limit)
}
