package entity

import (
	"strings"
	"time"
)

// Difficulty represents the outcome of a review event.
type Difficulty string

const (
	DifficultyUnspecified Difficulty = ""
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyHard        Difficulty = "hard"
)

// ParseDifficulty converts an arbitrary string into a supported Difficulty value.
func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyUnspecified, ErrInvalidDifficulty
	}
}

// ReviewStatus tracks where a review item sits in its learning lifecycle.
type ReviewStatus string

const (
	ReviewStatusNew       ReviewStatus = "new"
	ReviewStatusLearning  ReviewStatus = "learning"
	ReviewStatusGraduated ReviewStatus = "graduated"
)

// ParseReviewStatus converts an arbitrary string into a supported ReviewStatus value.
func ParseReviewStatus(value string) (ReviewStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "new":
		return ReviewStatusNew, nil
	case "learning":
		return ReviewStatusLearning, nil
	case "graduated":
		return ReviewStatusGraduated, nil
	default:
		return "", ErrInvalidReviewStatus
	}
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// ParseDate parses a yyyy-mm-dd calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders a calendar date as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
