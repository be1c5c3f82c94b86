package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
	"github.com/SpynitterMina/DayWiseV2/internal/schedule"
)

// ReviewItemUpdate carries the fields of a partial edit. Nil fields are left
// untouched. Supplying NextReviewDate performs a manual reschedule; the
// interval is never recomputed by an edit.
type ReviewItemUpdate struct {
	Title           *string
	Content         *string
	FirstReviewDate *time.Time
	NextReviewDate  *time.Time
	Status          *entity.ReviewStatus
}

// ReviewItemUsecase is the sole mutator of review scheduling state. All
// interval and date recomputation funnels through MarkReviewed.
type ReviewItemUsecase interface {
	Add(ctx context.Context, title, content string, firstReviewDate time.Time) (*entity.ReviewItem, error)
	Update(ctx context.Context, id string, updates ReviewItemUpdate) (*entity.ReviewItem, error)
	Delete(ctx context.Context, id string) error
	// MarkReviewed applies the interval policy to a review outcome. An
	// unknown id is a no-op returning (nil, nil) to keep call sites simple.
	MarkReviewed(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.ReviewItem, error)
	// ListForDate returns items whose next review date equals the given
	// calendar date exactly.
	ListForDate(ctx context.Context, date time.Time) ([]entity.ReviewItem, error)
	List(ctx context.Context) ([]entity.ReviewItem, error)
}

// NewReviewItemUsecase wires the repository and interval policy with default
// behaviour.
func NewReviewItemUsecase(repo repository.ReviewItemRepository, policy *schedule.Params) ReviewItemUsecase {
	return &reviewItemUsecase{
		repo:   repo,
		policy: policy,
		clock:  time.Now,
	}
}

type reviewItemUsecase struct {
	repo   repository.ReviewItemRepository
	policy *schedule.Params
	clock  func() time.Time
}

func (u *reviewItemUsecase) Add(ctx context.Context, title, content string, firstReviewDate time.Time) (*entity.ReviewItem, error) {
	item := &entity.ReviewItem{
		ID:              uuid.NewString(),
		Title:           title,
		Content:         content,
		FirstReviewDate: firstReviewDate,
		Status:          entity.ReviewStatusNew,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.Normalize(u.clock())
	return u.repo.Create(ctx, item)
}

func (u *reviewItemUsecase) Update(ctx context.Context, id string, updates ReviewItemUpdate) (*entity.ReviewItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.ErrInvalidReviewID
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		existing.Title = *updates.Title
	}
	if updates.Content != nil {
		existing.Content = *updates.Content
	}
	if updates.FirstReviewDate != nil {
		existing.FirstReviewDate = *updates.FirstReviewDate
	}
	if updates.NextReviewDate != nil {
		existing.NextReviewDate = *updates.NextReviewDate
	}
	if updates.Status != nil {
		existing.Status = *updates.Status
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}
	existing.Normalize(u.clock())
	return u.repo.Update(ctx, existing)
}

func (u *reviewItemUsecase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return entity.ErrInvalidReviewID
	}
	return u.repo.Delete(ctx, id)
}

func (u *reviewItemUsecase) MarkReviewed(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.ReviewItem, error) {
	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}

	item, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, entity.ErrReviewItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := u.clock()
	firstReview := item.Status == entity.ReviewStatusNew || item.TimesReviewed == 0
	result := u.policy.Next(item.CurrentIntervalDays, difficulty, firstReview, now)

	today := entity.DateOf(now)
	item.LastReviewedDate = &today
	item.NextReviewDate = result.NextReviewDate
	item.Difficulty = difficulty
	item.CurrentIntervalDays = result.IntervalDays
	item.TimesReviewed++
	item.Status = entity.ReviewStatusLearning
	if u.policy.Graduates(item.TimesReviewed, difficulty) {
		item.Status = entity.ReviewStatusGraduated
	}

	return u.repo.Update(ctx, item)
}

func (u *reviewItemUsecase) ListForDate(ctx context.Context, date time.Time) ([]entity.ReviewItem, error) {
	day := entity.DateOf(date)
	return u.repo.List(ctx, &repository.ListReviewItemQuery{DueOn: &day})
}

func (u *reviewItemUsecase) List(ctx context.Context) ([]entity.ReviewItem, error) {
	return u.repo.List(ctx, &repository.ListReviewItemQuery{})
}
