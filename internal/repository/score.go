package repository

import "context"

// ScoreStore owns the single score balance. Add accepts negative deltas for
// spending; implementations clamp the balance at zero.
type ScoreStore interface {
	Get(ctx context.Context) (int, error)
	Add(ctx context.Context, delta int) (int, error)
}
