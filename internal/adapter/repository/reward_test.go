package repository

import (
	"context"
	"testing"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

func TestAchievementRepositoryUnlockKeepsFirstTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := NewAchievementRepository(newTestDB(t))

	first := time.Date(2025, 3, 1, 14, 1, 0, 0, time.UTC)
	if err := repo.Unlock(ctx, entity.UserAchievement{ID: "INITIATE", UnlockedAt: first}); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	// A later pass unlocking the same id must not move the timestamp.
	if err := repo.Unlock(ctx, entity.UserAchievement{ID: "INITIATE", UnlockedAt: first.Add(48 * time.Hour)}); err != nil {
		t.Fatalf("repeat unlock: %v", err)
	}
	if err := repo.Unlock(ctx, entity.UserAchievement{ID: "TENACIOUS_TEN", UnlockedAt: first.Add(time.Hour)}); err != nil {
		t.Fatalf("second unlock: %v", err)
	}

	unlocked, err := repo.ListUnlocked(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("expected 2 unlocks, got %d", len(unlocked))
	}
	if unlocked[0].ID != "INITIATE" || !unlocked[0].UnlockedAt.Equal(first) {
		t.Fatalf("first unlock timestamp not kept: %+v", unlocked[0])
	}
	if unlocked[1].ID != "TENACIOUS_TEN" {
		t.Fatalf("unexpected ordering: %+v", unlocked)
	}
}

func TestRewardRepositoryOwnershipRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRewardRepository(newTestDB(t))

	purchased := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	expires := purchased.AddDate(0, 0, 7)
	seed := []entity.OwnedReward{
		{ID: "ZEN_MODE_THEME", PurchasedAt: purchased},
		{ID: "PROFILE_GLOW_7D", PurchasedAt: purchased.Add(time.Minute), ExpiresAt: &expires},
		{ID: "TITLE_TASK_NINJA_30D", PurchasedAt: purchased.Add(2 * time.Minute)},
	}
	for _, reward := range seed {
		if err := repo.AddOwned(ctx, reward); err != nil {
			t.Fatalf("add %s: %v", reward.ID, err)
		}
	}

	owned, err := repo.ListOwned(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(owned) != 3 {
		t.Fatalf("expected 3 owned, got %d", len(owned))
	}
	if owned[0].ID != "ZEN_MODE_THEME" || owned[0].ExpiresAt != nil {
		t.Fatalf("permanent reward mangled: %+v", owned[0])
	}
	if owned[1].ExpiresAt == nil || !owned[1].ExpiresAt.Equal(expires) {
		t.Fatalf("expiry not round-tripped: %+v", owned[1])
	}

	if err := repo.RemoveOwned(ctx, nil); err != nil {
		t.Fatalf("empty removal: %v", err)
	}
	if err := repo.RemoveOwned(ctx, []string{"PROFILE_GLOW_7D", "TITLE_TASK_NINJA_30D"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	owned, err = repo.ListOwned(ctx)
	if err != nil {
		t.Fatalf("list after removal: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != "ZEN_MODE_THEME" {
		t.Fatalf("expected only the permanent reward left, got %+v", owned)
	}
}

func TestRewardRepositoryEquippedSlots(t *testing.T) {
	ctx := context.Background()
	repo := NewRewardRepository(newTestDB(t))

	if err := repo.SetEquipped(ctx, "avatar_frame", "GOLDEN_AVATAR_FRAME"); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := repo.SetEquipped(ctx, "profile_glow", "PROFILE_GLOW_7D"); err != nil {
		t.Fatalf("equip second slot: %v", err)
	}
	// Re-equipping a slot replaces its occupant.
	if err := repo.SetEquipped(ctx, "avatar_frame", "PROFILE_BANNER_PREMIUM_SPACE"); err != nil {
		t.Fatalf("re-equip: %v", err)
	}

	equipped, err := repo.Equipped(ctx)
	if err != nil {
		t.Fatalf("equipped: %v", err)
	}
	if len(equipped) != 2 || equipped["avatar_frame"] != "PROFILE_BANNER_PREMIUM_SPACE" || equipped["profile_glow"] != "PROFILE_GLOW_7D" {
		t.Fatalf("unexpected slots: %+v", equipped)
	}

	if err := repo.ClearEquipped(ctx, "avatar_frame"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	equipped, err = repo.Equipped(ctx)
	if err != nil {
		t.Fatalf("equipped after clear: %v", err)
	}
	if len(equipped) != 1 || equipped["profile_glow"] != "PROFILE_GLOW_7D" {
		t.Fatalf("slot not cleared: %+v", equipped)
	}
}
