package repository

import (
	"context"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

// ListReviewItemQuery holds parameters for listing review items.
type ListReviewItemQuery struct {
	// DueOn restricts the result to items whose next review date equals
	// this calendar date exactly. Nil returns every item.
	DueOn *time.Time
}

// ReviewItemRepository abstracts persistence for review items to keep
// usecases storage agnostic. Implementations return results ordered by
// ascending next review date.
type ReviewItemRepository interface {
	Create(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error)
	Update(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error)
	GetByID(ctx context.Context, id string) (*entity.ReviewItem, error)
	List(ctx context.Context, query *ListReviewItemQuery) ([]entity.ReviewItem, error)
	Delete(ctx context.Context, id string) error
}
