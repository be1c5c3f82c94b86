package entity

import "time"

// TaskRecord is a read-only view of a task owned by the task-management
// component. Only the fields the achievement rules consume are carried.
type TaskRecord struct {
	ID        int64
	Completed bool
	// CompletedAt is nil for incomplete tasks and for records whose stored
	// timestamp could not be parsed; date-dependent rules skip those.
	CompletedAt *time.Time
	// ScheduledDate is the calendar date the task was planned for, if any.
	ScheduledDate *time.Time
	Category      string
	// EstimatedMinutes is the user's up-front estimate.
	EstimatedMinutes int
	// ActualSeconds is the total tracked time across timer segments.
	ActualSeconds int
}

// JournalEntry is a read-only view of a daily journal entry.
type JournalEntry struct {
	Date    time.Time
	Content string
}

// UserAchievement records a single unlocked achievement. The set is
// append-only with at most one entry per definition id.
type UserAchievement struct {
	ID         string
	UnlockedAt time.Time
}

// Snapshot is a point-in-time view of the data the achievement evaluator
// reads. All fields are read-only to the evaluator; Unlocked holds the set
// as of the start of the evaluation pass.
type Snapshot struct {
	Tasks          []TaskRecord
	JournalEntries []JournalEntry
	Score          int
	Unlocked       []UserAchievement

	// Today anchors time-relative rules (comeback, week-ahead planning) so
	// evaluation stays deterministic under test.
	Today time.Time
}

// HasUnlocked reports whether the snapshot's unlocked set contains id.
func (s *Snapshot) HasUnlocked(id string) bool {
	for _, ua := range s.Unlocked {
		if ua.ID == id {
			return true
		}
	}
	return false
}
