package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// NewAchievementRepository returns a SQLite-backed unlock record store.
func NewAchievementRepository(db *sql.DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

type achievementRepository struct {
	db *sql.DB
}

func (r *achievementRepository) ListUnlocked(ctx context.Context) ([]entity.UserAchievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, unlocked_at FROM user_achievements ORDER BY unlocked_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list unlocked achievements: %w", err)
	}
	defer rows.Close()

	var unlocked []entity.UserAchievement
	for rows.Next() {
		var (
			ua         entity.UserAchievement
			unlockedAt string
		)
		if err := rows.Scan(&ua.ID, &unlockedAt); err != nil {
			return nil, fmt.Errorf("scan achievement row: %w", err)
		}
		if ua.UnlockedAt, err = time.Parse(time.RFC3339, unlockedAt); err != nil {
			return nil, fmt.Errorf("unlocked_at %q: %w", unlockedAt, err)
		}
		unlocked = append(unlocked, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return unlocked, nil
}

func (r *achievementRepository) Unlock(ctx context.Context, ua entity.UserAchievement) error {
	// INSERT OR IGNORE keeps the first unlock timestamp for an id.
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_achievements (id, unlocked_at) VALUES (?, ?)
	`, ua.ID, ua.UnlockedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record unlock %s: %w", ua.ID, err)
	}
	return nil
}
