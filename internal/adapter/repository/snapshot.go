package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// NewSnapshotReader returns a read-only view over the task, journal and score
// tables. Rows with unparseable timestamps are kept with the timestamp
// dropped, so count-based rules still see them.
func NewSnapshotReader(db *sql.DB, log *logrus.Logger) repository.SnapshotReader {
	return &snapshotReader{db: db, log: log}
}

type snapshotReader struct {
	db  *sql.DB
	log *logrus.Logger
}

func (r *snapshotReader) Tasks(ctx context.Context) ([]entity.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, completed, completed_at, scheduled_date, category,
			estimated_minutes, actual_seconds
		FROM tasks
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entity.TaskRecord
	for rows.Next() {
		var (
			task          entity.TaskRecord
			completedAt   sql.NullString
			scheduledDate sql.NullString
			category      sql.NullString
		)
		if err := rows.Scan(&task.ID, &task.Completed, &completedAt, &scheduledDate,
			&category, &task.EstimatedMinutes, &task.ActualSeconds); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		task.Category = category.String
		task.CompletedAt = r.parseTimestamp(task.ID, "completed_at", completedAt)
		task.ScheduledDate = r.parseDate(task.ID, "scheduled_date", scheduledDate)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *snapshotReader) JournalEntries(ctx context.Context) ([]entity.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, content FROM journal_entries`)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []entity.JournalEntry
	for rows.Next() {
		var (
			entry entity.JournalEntry
			date  string
		)
		if err := rows.Scan(&date, &entry.Content); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		// A malformed date drops only the date, the same as tasks, so the
		// entry still counts toward count-based rules.
		if parsed, err := entity.ParseDate(date); err != nil {
			r.log.WithField("date", date).Warn("dropping malformed journal date")
		} else {
			entry.Date = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

func (r *snapshotReader) Score(ctx context.Context) (int, error) {
	var score int
	err := r.db.QueryRowContext(ctx, `SELECT points FROM score WHERE id = 1`).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read score: %w", err)
	}
	return score, nil
}

func (r *snapshotReader) parseTimestamp(id int64, column string, v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		r.log.WithFields(logrus.Fields{"task": id, "column": column, "value": v.String}).
			Warn("dropping malformed timestamp")
		return nil
	}
	return &t
}

func (r *snapshotReader) parseDate(id int64, column string, v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := entity.ParseDate(v.String)
	if err != nil {
		r.log.WithFields(logrus.Fields{"task": id, "column": column, "value": v.String}).
			Warn("dropping malformed date")
		return nil
	}
	return &t
}
