package repository

import (
	"context"
	"errors"

	"github.com/mafgems/api/internal/model"
)

// ErrNotFound is returned when a row does not exist or belongs to another user
var ErrNotFound = errors.New("record not found")

// GenerationStore owns the presentation_generations table
type GenerationStore interface {
	InsertGeneration(ctx context.Context, g *model.PersistedGeneration) error
	ListGenerations(ctx context.Context, userID string, limit int) ([]model.PersistedGeneration, error)
	DeleteGeneration(ctx context.Context, userID, id string) error
}

// VideoStore owns the jewelry_videos table
type VideoStore interface {
	InsertJewelryVideo(ctx context.Context, v *model.JewelryVideo) error
	ListJewelryVideos(ctx context.Context, userID string, limit int) ([]model.JewelryVideo, error)
}

// Store is everything the service persists
type Store interface {
	GenerationStore
	VideoStore
	Ping(ctx context.Context) error
	Close()
}

const DefaultListLimit = 50

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return DefaultListLimit
	}
	return limit
}
