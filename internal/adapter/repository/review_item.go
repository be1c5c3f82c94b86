// Package repository provides the SQLite-backed implementations of the
// persistence interfaces. All SQL lives here; the usecase layer never sees
// database/sql types.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

// NewReviewItemRepository returns a SQLite-backed review item store.
func NewReviewItemRepository(db *sql.DB) repository.ReviewItemRepository {
	return &reviewItemRepository{db: db}
}

type reviewItemRepository struct {
	db *sql.DB
}

const reviewItemColumns = `id, title, content, first_review_date, last_reviewed_date,
	next_review_date, difficulty, current_interval_days, times_reviewed, status, created_at`

func (r *reviewItemRepository) Create(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_items (`+reviewItemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.Title,
		item.Content,
		entity.FormatDate(item.FirstReviewDate),
		nullableDate(item.LastReviewedDate),
		entity.FormatDate(item.NextReviewDate),
		nullableString(string(item.Difficulty)),
		item.CurrentIntervalDays,
		item.TimesReviewed,
		string(item.Status),
		item.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert review item %s: %w", item.ID, err)
	}
	return item, nil
}

func (r *reviewItemRepository) Update(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE review_items
		SET title = ?, content = ?, first_review_date = ?, last_reviewed_date = ?,
			next_review_date = ?, difficulty = ?, current_interval_days = ?,
			times_reviewed = ?, status = ?
		WHERE id = ?
	`,
		item.Title,
		item.Content,
		entity.FormatDate(item.FirstReviewDate),
		nullableDate(item.LastReviewedDate),
		entity.FormatDate(item.NextReviewDate),
		nullableString(string(item.Difficulty)),
		item.CurrentIntervalDays,
		item.TimesReviewed,
		string(item.Status),
		item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update review item %s: %w", item.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, entity.ErrReviewItemNotFound
	}
	return item, nil
}

func (r *reviewItemRepository) GetByID(ctx context.Context, id string) (*entity.ReviewItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+reviewItemColumns+`
		FROM review_items WHERE id = ?
	`, id)

	item, err := scanReviewItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrReviewItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review item %s: %w", id, err)
	}
	return item, nil
}

func (r *reviewItemRepository) List(ctx context.Context, query *repository.ListReviewItemQuery) ([]entity.ReviewItem, error) {
	// Sorting is applied here at read time; mutations never reorder the
	// stored collection.
	q := `SELECT ` + reviewItemColumns + ` FROM review_items`
	var args []any
	if query != nil && query.DueOn != nil {
		q += ` WHERE next_review_date = ?`
		args = append(args, entity.FormatDate(*query.DueOn))
	}
	q += ` ORDER BY next_review_date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}
	defer rows.Close()

	var items []entity.ReviewItem
	for rows.Next() {
		item, err := scanReviewItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review items: %w", err)
	}
	return items, nil
}

func (r *reviewItemRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM review_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete review item %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReviewItem(row rowScanner) (*entity.ReviewItem, error) {
	var (
		item         entity.ReviewItem
		firstReview  string
		lastReviewed sql.NullString
		nextReview   string
		difficulty   sql.NullString
		status       string
		createdAt    string
	)
	if err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		&firstReview,
		&lastReviewed,
		&nextReview,
		&difficulty,
		&item.CurrentIntervalDays,
		&item.TimesReviewed,
		&status,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	if item.FirstReviewDate, err = entity.ParseDate(firstReview); err != nil {
		return nil, fmt.Errorf("first_review_date %q: %w", firstReview, err)
	}
	if item.NextReviewDate, err = entity.ParseDate(nextReview); err != nil {
		return nil, fmt.Errorf("next_review_date %q: %w", nextReview, err)
	}
	if lastReviewed.Valid {
		d, err := entity.ParseDate(lastReviewed.String)
		if err != nil {
			return nil, fmt.Errorf("last_reviewed_date %q: %w", lastReviewed.String, err)
		}
		item.LastReviewedDate = &d
	}
	if difficulty.Valid {
		item.Difficulty = entity.Difficulty(difficulty.String)
	}
	item.Status = entity.ReviewStatus(status)
	if item.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("created_at %q: %w", createdAt, err)
	}
	return &item, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return entity.FormatDate(*t)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
