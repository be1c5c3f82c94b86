package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// NewScoreStore returns a SQLite-backed score balance over the single-row
// score table.
func NewScoreStore(db *sql.DB) repository.ScoreStore {
	return &scoreStore{db: db}
}

type scoreStore struct {
	db *sql.DB
}

func (s *scoreStore) Get(ctx context.Context) (int, error) {
	var points int
	err := s.db.QueryRowContext(ctx, `SELECT points FROM score WHERE id = 1`).Scan(&points)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read score: %w", err)
	}
	return points, nil
}

func (s *scoreStore) Add(ctx context.Context, delta int) (int, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO score (id, points) VALUES (1, MAX(0, ?))
		ON CONFLICT(id) DO UPDATE SET points = MAX(0, points + ?)
	`, delta, delta)
	if err != nil {
		return 0, fmt.Errorf("adjust score by %d: %w", delta, err)
	}
	return s.Get(ctx)
}
