// Package reward holds the static rewards-store catalogue consulted by the
// theming and profile surfaces. Ownership records live in the repository
// layer; the catalogue itself is code-defined, like the achievement table.
package reward

import (
	"github.com/samber/lo"
)

// Type classifies how a reward behaves after purchase.
type Type string

const (
	// TypePermanent is bought once and owned forever.
	TypePermanent Type = "one-time-permanent"
	// TypeTemporary expires DurationDays after purchase and may be bought
	// again afterwards.
	TypeTemporary Type = "temporary-cosmetic"
	// TypeEquippable is a permanent cosmetic occupying an equip slot.
	TypeEquippable Type = "cosmetic-equip"
)

// Definition describes one purchasable reward.
type Definition struct {
	ID          string
	Name        string
	Description string
	Category    string
	// Slot names the equip slot for cosmetics; rewards sharing a slot
	// displace each other when equipped.
	Slot         string
	Cost         int
	Type         Type
	Icon         string
	DurationDays int
}

// Equippable reports whether the reward occupies an equip slot.
func (d Definition) Equippable() bool {
	return d.Slot != ""
}

// Catalog returns the full rewards catalogue as a copy.
func Catalog() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByID looks up a reward definition in the catalogue.
func ByID(id string) (Definition, bool) {
	return lo.Find(definitions, func(def Definition) bool { return def.ID == id })
}

var definitions = []Definition{
	{
		ID: "ZEN_MODE_THEME", Name: "Zen Mode Theme",
		Description: "Ultra-minimalist, distraction-free site theme.",
		Category:    "Site Theme", Slot: "site_theme", Cost: 1500,
		Type: TypePermanent, Icon: "Minimize2",
	},
	{
		ID: "THEME_DARK_MODE_PERMANENT", Name: "Dark Mode Theme",
		Description: "A sleek permanent dark mode for the site.",
		Category:    "Site Theme", Slot: "site_theme", Cost: 500,
		Type: TypePermanent, Icon: "Moon",
	},
	{
		ID: "THEME_MINIMALIST_7D", Name: "Minimalist Theme (7 Days)",
		Description: "A clean, temporary theme for focused work.",
		Category:    "Site Theme", Slot: "site_theme", Cost: 100,
		Type: TypeTemporary, Icon: "MinusSquare", DurationDays: 7,
	},
	{
		ID: "THEME_RETRO_GAME_7D", Name: "Retro Game Theme (7 Days)",
		Description: "A fun, pixel-art style theme.",
		Category:    "Site Theme", Slot: "site_theme", Cost: 150,
		Type: TypeTemporary, Icon: "Gamepad2", DurationDays: 7,
	},
	{
		ID: "THEME_TASKS_OCEAN", Name: "Tasks: Ocean Depths",
		Description: "A calming blue/green theme for the tasks page.",
		Category:    "Tab Theme", Slot: "tab_theme/tasks", Cost: 200,
		Type: TypeEquippable, Icon: "Waves",
	},
	{
		ID: "THEME_JOURNAL_FOREST", Name: "Journal: Forest Retreat",
		Description: "Earthy tones for the journal page.",
		Category:    "Tab Theme", Slot: "tab_theme/journal", Cost: 200,
		Type: TypeEquippable, Icon: "Trees",
	},
	{
		ID: "THEME_REVIEW_COSMIC", Name: "Review: Cosmic Flow",
		Description: "Dark blues and purples for the spaced repetition page.",
		Category:    "Tab Theme", Slot: "tab_theme/review", Cost: 200,
		Type: TypeEquippable, Icon: "Sparkles",
	},
	{
		ID: "GOLDEN_AVATAR_FRAME", Name: "Golden Avatar Frame",
		Description: "A gleaming frame around your avatar.",
		Category:    "Profile Decoration", Slot: "avatar_frame", Cost: 800,
		Type: TypeEquippable, Icon: "CircleDot",
	},
	{
		ID: "PROFILE_BANNER_PREMIUM_SPACE", Name: "Premium Space Banner",
		Description: "A deep-space banner for your profile.",
		Category:    "Profile Decoration", Slot: "profile_banner", Cost: 400,
		Type: TypeEquippable, Icon: "Rocket",
	},
	{
		ID: "PROFILE_GLOW_7D", Name: "Profile Glow (7 Days)",
		Description: "A soft glow around your profile card.",
		Category:    "Profile Decoration", Slot: "profile_glow", Cost: 120,
		Type: TypeTemporary, Icon: "Sun", DurationDays: 7,
	},
	{
		ID: "TITLE_TASK_NINJA_30D", Name: "Title: Task Ninja (30 Days)",
		Description: "Display the Task Ninja title under your name.",
		Category:    "Title", Slot: "title", Cost: 250,
		Type: TypeTemporary, Icon: "Swords", DurationDays: 30,
	},
	{
		ID: "CUSTOM_FONT_UNLOCK", Name: "Custom Font Unlock",
		Description: "Unlock the custom font picker.",
		Category:    "Utility", Cost: 600,
		Type: TypePermanent, Icon: "Type",
	},
	{
		ID: "SOUND_COMPLETE_SPARKLE", Name: "Sparkle Completion Sound",
		Description: "A sparkling chime when you finish a task.",
		Category:    "Sound & Visual FX", Slot: "completion_sound", Cost: 90,
		Type: TypeEquippable, Icon: "Music",
	},
	{
		ID: "UNLOCK_QUOTE_MOTIVATIONAL", Name: "Motivational Quote Pack",
		Description: "Unlock an extra pack of motivational quotes.",
		Category:    "Content Unlock", Cost: 75,
		Type: TypePermanent, Icon: "Quote",
	},
}
