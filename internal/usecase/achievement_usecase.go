package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/achievement"
	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// UnlockedAchievement pairs a newly satisfied definition with its unlock
// time, so callers can surface name, points and icon without a second
// lookup.
type UnlockedAchievement struct {
	Definition achievement.Definition
	UnlockedAt time.Time
}

// AchievementUsecase evaluates the achievement catalogue against the
// current data snapshot and owns the persisted unlocked set.
type AchievementUsecase interface {
	// CheckAll evaluates every definition not yet unlocked and returns the
	// ones newly satisfied, after persisting them. Re-running with an
	// unchanged snapshot returns nothing.
	CheckAll(ctx context.Context) ([]UnlockedAchievement, error)
	Definitions() []achievement.Definition
	ListUnlocked(ctx context.Context) ([]entity.UserAchievement, error)
}

// NewAchievementUsecase wires the snapshot source and unlocked-set storage
// with default behaviour.
func NewAchievementUsecase(snapshots repository.SnapshotReader, repo repository.AchievementRepository) AchievementUsecase {
	return &achievementUsecase{
		snapshots: snapshots,
		repo:      repo,
		clock:     time.Now,
	}
}

type achievementUsecase struct {
	snapshots repository.SnapshotReader
	repo      repository.AchievementRepository
	clock     func() time.Time
}

func (u *achievementUsecase) CheckAll(ctx context.Context) ([]UnlockedAchievement, error) {
	snapshot, err := u.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	var newly []UnlockedAchievement
	// Every predicate sees the unlocked set as of the start of the pass;
	// unlocks from this pass never feed back into the meta rule, keeping
	// the final set independent of evaluation order.
	for _, def := range achievement.Definitions() {
		if snapshot.HasUnlocked(string(def.ID)) {
			continue
		}
		if !def.Check(snapshot) {
			continue
		}
		ua := entity.UserAchievement{ID: string(def.ID), UnlockedAt: now}
		if err := u.repo.Unlock(ctx, ua); err != nil {
			return newly, fmt.Errorf("unlock achievement %s: %w", def.ID, err)
		}
		newly = append(newly, UnlockedAchievement{Definition: def, UnlockedAt: now})
	}
	return newly, nil
}

func (u *achievementUsecase) Definitions() []achievement.Definition {
	return achievement.Definitions()
}

func (u *achievementUsecase) ListUnlocked(ctx context.Context) ([]entity.UserAchievement, error) {
	return u.repo.ListUnlocked(ctx)
}

func (u *achievementUsecase) loadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	tasks, err := u.snapshots.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load task snapshot: %w", err)
	}
	entries, err := u.snapshots.JournalEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journal snapshot: %w", err)
	}
	score, err := u.snapshots.Score(ctx)
	if err != nil {
		return nil, fmt.Errorf("load score: %w", err)
	}
	unlocked, err := u.repo.ListUnlocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}

	return &entity.Snapshot{
		Tasks:          tasks,
		JournalEntries: entries,
		Score:          score,
		Unlocked:       unlocked,
		Today:          u.clock(),
	}, nil
}
