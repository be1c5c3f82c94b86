package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
	"github.com/SpynitterMina/DayWiseV2/internal/reward"
)

// RewardUsecase manages the rewards store: the static catalogue, purchase
// records with expiry, and the equipped-cosmetic slots. The score itself is
// owned externally; Purchase only validates affordability and reports the
// cost for the caller to deduct.
type RewardUsecase interface {
	Catalog() []reward.Definition
	// Owned returns current ownership, pruning expired temporary rewards
	// and unequipping them from their slots.
	Owned(ctx context.Context) ([]entity.OwnedReward, error)
	Purchase(ctx context.Context, id string, currentScore int) (cost int, err error)
	Equip(ctx context.Context, id string) error
	Unequip(ctx context.Context, slot string) error
	Equipped(ctx context.Context) (entity.EquippedCosmetics, error)
}

// NewRewardUsecase wires the repository with default behaviour.
func NewRewardUsecase(repo repository.RewardRepository) RewardUsecase {
	return &rewardUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type rewardUsecase struct {
	repo  repository.RewardRepository
	clock func() time.Time
}

func (u *rewardUsecase) Catalog() []reward.Definition {
	return reward.Catalog()
}

func (u *rewardUsecase) Owned(ctx context.Context) ([]entity.OwnedReward, error) {
	owned, err := u.repo.ListOwned(ctx)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	expired := lo.Filter(owned, func(or entity.OwnedReward, _ int) bool { return or.Expired(now) })
	if len(expired) == 0 {
		return owned, nil
	}

	equipped, err := u.repo.Equipped(ctx)
	if err != nil {
		return nil, err
	}
	for _, or := range expired {
		for slot, id := range equipped {
			if id == or.ID {
				if err := u.repo.ClearEquipped(ctx, slot); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := u.repo.RemoveOwned(ctx, lo.Map(expired, func(or entity.OwnedReward, _ int) string { return or.ID })); err != nil {
		return nil, err
	}

	return lo.Filter(owned, func(or entity.OwnedReward, _ int) bool { return !or.Expired(now) }), nil
}

func (u *rewardUsecase) Purchase(ctx context.Context, id string, currentScore int) (int, error) {
	def, ok := reward.ByID(id)
	if !ok {
		return 0, entity.ErrUnknownReward
	}
	if currentScore < def.Cost {
		return 0, entity.ErrInsufficientScore
	}

	owned, err := u.Owned(ctx)
	if err != nil {
		return 0, err
	}
	// Owned() has already pruned expired records, so temporary rewards
	// become purchasable again once they lapse.
	if lo.SomeBy(owned, func(or entity.OwnedReward) bool { return or.ID == id }) {
		return 0, entity.ErrRewardAlreadyOwned
	}

	now := u.clock()
	record := entity.OwnedReward{ID: id, PurchasedAt: now}
	if def.Type == reward.TypeTemporary && def.DurationDays > 0 {
		expires := now.AddDate(0, 0, def.DurationDays)
		record.ExpiresAt = &expires
	}
	if err := u.repo.AddOwned(ctx, record); err != nil {
		return 0, err
	}
	return def.Cost, nil
}

func (u *rewardUsecase) Equip(ctx context.Context, id string) error {
	def, ok := reward.ByID(id)
	if !ok {
		return entity.ErrUnknownReward
	}
	if !def.Equippable() {
		return entity.ErrRewardNotEquippable
	}

	owned, err := u.Owned(ctx)
	if err != nil {
		return err
	}
	if !lo.SomeBy(owned, func(or entity.OwnedReward) bool { return or.ID == id }) {
		return entity.ErrRewardNotOwned
	}

	return u.repo.SetEquipped(ctx, def.Slot, id)
}

func (u *rewardUsecase) Unequip(ctx context.Context, slot string) error {
	return u.repo.ClearEquipped(ctx, slot)
}

func (u *rewardUsecase) Equipped(ctx context.Context) (entity.EquippedCosmetics, error) {
	return u.repo.Equipped(ctx)
}
