package repository

import (
	"context"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

// AchievementRepository owns the persisted unlocked-achievement set.
type AchievementRepository interface {
	ListUnlocked(ctx context.Context) ([]entity.UserAchievement, error)
	// Unlock appends an entry to the set. Unlocking an id that is already
	// present is a no-op, so repeated evaluation passes stay idempotent.
	Unlock(ctx context.Context, achievement entity.UserAchievement) error
}

// SnapshotReader supplies the read-only task/journal/score collections
// owned by sibling components. A record with a malformed date field is kept
// with the date zeroed rather than failing the whole read, so count-based
// rules still see it.
type SnapshotReader interface {
	Tasks(ctx context.Context) ([]entity.TaskRecord, error)
	JournalEntries(ctx context.Context) ([]entity.JournalEntry, error)
	Score(ctx context.Context) (int, error)
}
