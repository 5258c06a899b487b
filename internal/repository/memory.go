package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/mafgems/api/internal/model"
)

// MemoryStore keeps rows in process. It backs local development when no
// database URL is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	generations []model.PersistedGeneration
	videos      []model.JewelryVideo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() {}

func (s *MemoryStore) InsertGeneration(ctx context.Context, g *model.PersistedGeneration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations = append(s.generations, *g)
	return nil
}

func (s *MemoryStore) ListGenerations(ctx context.Context, userID string, limit int) ([]model.PersistedGeneration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PersistedGeneration, 0)
	for _, g := range s.generations {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) DeleteGeneration(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.generations {
		if g.ID == id && g.UserID == userID {
			s.generations = append(s.generations[:i], s.generations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) InsertJewelryVideo(ctx context.Context, v *model.JewelryVideo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = append(s.videos, *v)
	return nil
}

func (s *MemoryStore) ListJewelryVideos(ctx context.Context, userID string, limit int) ([]model.JewelryVideo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.JewelryVideo, 0)
	for _, v := range s.videos {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
