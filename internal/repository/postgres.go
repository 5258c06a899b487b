package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mafgems/api/internal/model"
)

// PostgresStore talks to the Supabase Postgres database directly
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a pool and checks connectivity
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) InsertGeneration(ctx context.Context, g *model.PersistedGeneration) error {
	query := `
INSERT INTO presentation_generations (id, user_id, input_method, jewelry_type, output_url, output_type, configuration, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := s.pool.Exec(ctx, query,
		g.ID,
		g.UserID,
		string(g.InputMethod),
		g.JewelryType,
		g.OutputURL,
		string(g.OutputType),
		g.Configuration,
		g.Status,
		g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListGenerations(ctx context.Context, userID string, limit int) ([]model.PersistedGeneration, error) {
	query := `
SELECT id, user_id, input_method, jewelry_type, output_url, output_type, configuration, status, created_at
FROM presentation_generations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`
	rows, err := s.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PersistedGeneration, error) {
		var g model.PersistedGeneration
		var method, outputType string
		err := row.Scan(
			&g.ID,
			&g.UserID,
			&method,
			&g.JewelryType,
			&g.OutputURL,
			&outputType,
			&g.Configuration,
			&g.Status,
			&g.CreatedAt,
		)
		g.InputMethod = model.InputMethod(method)
		g.OutputType = model.OutputType(outputType)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan generations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteGeneration(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM presentation_generations WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) InsertJewelryVideo(ctx context.Context, v *model.JewelryVideo) error {
	query := `
INSERT INTO jewelry_videos (id, user_id, url, provider, status, jewelry_type, prompt, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := s.pool.Exec(ctx, query,
		v.ID,
		v.UserID,
		v.URL,
		v.Provider,
		v.Status,
		string(v.JewelryType),
		v.Prompt,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert jewelry video: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListJewelryVideos(ctx context.Context, userID string, limit int) ([]model.JewelryVideo, error) {
	query := `
SELECT id, user_id, url, provider, status, jewelry_type, prompt, created_at
FROM jewelry_videos
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`
	rows, err := s.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list jewelry videos: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.JewelryVideo, error) {
		var v model.JewelryVideo
		var jewelryType string
		err := row.Scan(&v.ID, &v.UserID, &v.URL, &v.Provider, &v.Status, &jewelryType, &v.Prompt, &v.CreatedAt)
		v.JewelryType = model.JewelryType(jewelryType)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan jewelry videos: %w", err)
	}
	return out, nil
}
