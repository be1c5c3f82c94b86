package entity

import "time"

// OwnedReward records a purchase from the rewards store.
type OwnedReward struct {
	ID          string
	PurchasedAt time.Time
	// ExpiresAt is set only for temporary rewards.
	ExpiresAt *time.Time
}

// Expired reports whether the reward has lapsed as of now.
func (or *OwnedReward) Expired(now time.Time) bool {
	return or.ExpiresAt != nil && now.After(*or.ExpiresAt)
}

// EquippedCosmetics maps a cosmetic slot (e.g. "theme/accent") to the
// equipped reward id.
type EquippedCosmetics map[string]string
