package entity

import "errors"

// Domain errors for review items and related aggregates.
var (
	ErrInvalidReviewTitle  = errors.New("invalid review item title")
	ErrInvalidReviewID     = errors.New("invalid review item ID")
	ErrReviewItemNotFound  = errors.New("review item not found")
	ErrInvalidDifficulty   = errors.New("invalid difficulty")
	ErrInvalidReviewStatus = errors.New("invalid review status")
	ErrInvalidDate         = errors.New("invalid calendar date")

	ErrUnknownReward       = errors.New("unknown reward")
	ErrRewardAlreadyOwned  = errors.New("reward already owned")
	ErrRewardNotOwned      = errors.New("reward not owned")
	ErrInsufficientScore   = errors.New("insufficient score")
	ErrRewardNotEquippable = errors.New("reward cannot be equipped")
)
