package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// NewRewardRepository returns a SQLite-backed store for owned rewards and
// equipped cosmetic slots.
func NewRewardRepository(db *sql.DB) repository.RewardRepository {
	return &rewardRepository{db: db}
}

type rewardRepository struct {
	db *sql.DB
}

func (r *rewardRepository) ListOwned(ctx context.Context) ([]entity.OwnedReward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, purchased_at, expires_at FROM owned_rewards ORDER BY purchased_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list owned rewards: %w", err)
	}
	defer rows.Close()

	var owned []entity.OwnedReward
	for rows.Next() {
		var (
			reward      entity.OwnedReward
			purchasedAt string
			expiresAt   sql.NullString
		)
		if err := rows.Scan(&reward.ID, &purchasedAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan reward row: %w", err)
		}
		if reward.PurchasedAt, err = time.Parse(time.RFC3339, purchasedAt); err != nil {
			return nil, fmt.Errorf("purchased_at %q: %w", purchasedAt, err)
		}
		if expiresAt.Valid {
			t, err := time.Parse(time.RFC3339, expiresAt.String)
			if err != nil {
				return nil, fmt.Errorf("expires_at %q: %w", expiresAt.String, err)
			}
			reward.ExpiresAt = &t
		}
		owned = append(owned, reward)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned rewards: %w", err)
	}
	return owned, nil
}

func (r *rewardRepository) AddOwned(ctx context.Context, reward entity.OwnedReward) error {
	var expiresAt any
	if reward.ExpiresAt != nil {
		expiresAt = reward.ExpiresAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owned_rewards (id, purchased_at, expires_at) VALUES (?, ?, ?)
	`, reward.ID, reward.PurchasedAt.UTC().Format(time.RFC3339), expiresAt)
	if err != nil {
		return fmt.Errorf("add owned reward %s: %w", reward.ID, err)
	}
	return nil
}

func (r *rewardRepository) RemoveOwned(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `DELETE FROM owned_rewards WHERE id IN (` + placeholders + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove owned rewards %v: %w", ids, err)
	}
	return nil
}

func (r *rewardRepository) Equipped(ctx context.Context) (entity.EquippedCosmetics, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot, reward_id FROM equipped_cosmetics`)
	if err != nil {
		return nil, fmt.Errorf("list equipped cosmetics: %w", err)
	}
	defer rows.Close()

	equipped := entity.EquippedCosmetics{}
	for rows.Next() {
		var slot, rewardID string
		if err := rows.Scan(&slot, &rewardID); err != nil {
			return nil, fmt.Errorf("scan equipped row: %w", err)
		}
		equipped[slot] = rewardID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipped cosmetics: %w", err)
	}
	return equipped, nil
}

func (r *rewardRepository) SetEquipped(ctx context.Context, slot, rewardID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO equipped_cosmetics (slot, reward_id) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET reward_id = excluded.reward_id
	`, slot, rewardID)
	if err != nil {
		return fmt.Errorf("equip %s into slot %s: %w", rewardID, slot, err)
	}
	return nil
}

func (r *rewardRepository) ClearEquipped(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM equipped_cosmetics WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}
