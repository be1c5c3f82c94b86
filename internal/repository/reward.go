package repository

import (
	"context"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

// RewardRepository owns ownership records and the equipped-slot mapping for
// the rewards store.
type RewardRepository interface {
	ListOwned(ctx context.Context) ([]entity.OwnedReward, error)
	AddOwned(ctx context.Context, reward entity.OwnedReward) error
	RemoveOwned(ctx context.Context, ids []string) error

	Equipped(ctx context.Context) (entity.EquippedCosmetics, error)
	SetEquipped(ctx context.Context, slot, rewardID string) error
	ClearEquipped(ctx context.Context, slot string) error
}
