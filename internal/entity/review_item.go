package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxReviewTitleLength caps review item titles, matching the edit form limit.
const MaxReviewTitleLength = 200

// ReviewItem is a unit of content scheduled for spaced repetition review.
type ReviewItem struct {
	ID      string
	Title   string
	Content string

	// FirstReviewDate is the calendar date chosen at creation; immutable
	// once the item has been reviewed.
	FirstReviewDate time.Time
	// LastReviewedDate is the calendar date of the most recent review
	// event, nil until the first review.
	LastReviewedDate *time.Time
	// NextReviewDate is the calendar date of the upcoming review. It equals
	// FirstReviewDate until the first review event.
	NextReviewDate time.Time

	// Difficulty of the most recent review, unspecified before the first.
	Difficulty Difficulty
	// CurrentIntervalDays is the interval that produced NextReviewDate.
	CurrentIntervalDays int
	TimesReviewed       int

	Status    ReviewStatus
	CreatedAt time.Time
}

// Validate checks the caller-supplied fields of a review item.
func (ri *ReviewItem) Validate() error {
	title := strings.TrimSpace(ri.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxReviewTitleLength {
		return ErrInvalidReviewTitle
	}
	if ri.FirstReviewDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Normalize ensures defaults & constraints before persistence.
func (ri *ReviewItem) Normalize(now time.Time) {
	ri.Title = strings.TrimSpace(ri.Title)
	if ri.CreatedAt.IsZero() {
		ri.CreatedAt = now
	}
	if ri.Status == "" {
		ri.Status = ReviewStatusNew
	}
	ri.FirstReviewDate = DateOf(ri.FirstReviewDate)
	if ri.NextReviewDate.IsZero() {
		ri.NextReviewDate = ri.FirstReviewDate
	} else {
		ri.NextReviewDate = DateOf(ri.NextReviewDate)
	}
	if ri.LastReviewedDate != nil {
		d := DateOf(*ri.LastReviewedDate)
		ri.LastReviewedDate = &d
	}
}
