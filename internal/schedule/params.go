// Package schedule implements the spaced repetition interval policy: a pure
// computation mapping a review outcome onto the number of days until the
// item should next be seen.
//
// The scheme is a growth-factor one rather than classic SM-2: the interval
// alone drives future calculations, with no per-item ease factor. A "hard"
// outcome on an interval that already grew past the lapse threshold resets
// the item instead of shrinking it, so a single slip on a mature item does
// not decay it gradually.
package schedule

import (
	"math"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

// Params holds the policy constants. The default values were chosen
// empirically rather than derived from a named algorithm, so they are kept
// configurable instead of hardcoded.
type Params struct {
	// FirstReviewDays maps the first review's difficulty straight to an
	// interval, ignoring the (zero) prior interval.
	FirstReviewDays map[entity.Difficulty]int

	HardMultiplier   float64
	MediumMultiplier float64
	EasyMultiplier   float64

	// LapseThresholdDays: a hard outcome on an interval strictly greater
	// than this resets the interval to LapseResetDays.
	LapseThresholdDays int
	LapseResetDays     int

	MinIntervalDays int
	MaxIntervalDays int

	// GraduateAfterReviews is an extension point: when positive, an item
	// reaching this many reviews with an easy outcome graduates. Zero
	// disables graduation, matching the historical behaviour.
	GraduateAfterReviews int
}

// DefaultParams returns the production policy constants.
func DefaultParams() *Params {
	return &Params{
		FirstReviewDays: map[entity.Difficulty]int{
			entity.DifficultyHard:   1,
			entity.DifficultyMedium: 2,
			entity.DifficultyEasy:   7,
		},
		HardMultiplier:     2.0,
		MediumMultiplier:   3.0,
		EasyMultiplier:     3.3,
		LapseThresholdDays: 7,
		LapseResetDays:     2,
		MinIntervalDays:    1,
		MaxIntervalDays:    365,
	}
}

// Result is the outcome of applying the policy to a single review event.
type Result struct {
	IntervalDays   int
	NextReviewDate time.Time
}

// Next computes the interval produced by a review event and the calendar
// date it schedules. Inputs are assumed valid: currentIntervalDays is
// non-negative and difficulty is one of the closed enum values.
func (p *Params) Next(currentIntervalDays int, difficulty entity.Difficulty, firstReview bool, now time.Time) Result {
	var interval int
	if firstReview {
		interval = p.FirstReviewDays[difficulty]
	} else {
		prior := currentIntervalDays
		switch difficulty {
		case entity.DifficultyHard:
			if prior > p.LapseThresholdDays {
				interval = p.LapseResetDays
			} else {
				interval = int(math.Round(float64(prior) * p.HardMultiplier))
			}
		case entity.DifficultyMedium:
			interval = int(math.Round(float64(prior) * p.MediumMultiplier))
		default:
			interval = int(math.Round(float64(prior) * p.EasyMultiplier))
		}
	}

	if interval < p.MinIntervalDays {
		interval = p.MinIntervalDays
	}
	if interval > p.MaxIntervalDays {
		interval = p.MaxIntervalDays
	}

	return Result{
		IntervalDays:   interval,
		NextReviewDate: entity.DateOf(now).AddDate(0, 0, interval),
	}
}

// Graduates reports whether an item with the given post-review counter and
// outcome crosses the graduation threshold.
func (p *Params) Graduates(timesReviewed int, difficulty entity.Difficulty) bool {
	return p.GraduateAfterReviews > 0 &&
		difficulty == entity.DifficultyEasy &&
		timesReviewed >= p.GraduateAfterReviews
}
