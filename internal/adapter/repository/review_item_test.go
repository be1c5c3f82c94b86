package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/database"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+t.TempDir()+"/test.db?_fk=1")
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Ping(); err != nil {
		t.Skipf("skipping sqlite-dependent test: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReviewItemRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewItemRepository(newTestDB(t))

	last := date(2025, 3, 8)
	item := &entity.ReviewItem{
		ID:                  "ri-1",
		Title:               "Photosynthesis",
		Content:             "Light reactions",
		FirstReviewDate:     date(2025, 3, 1),
		LastReviewedDate:    &last,
		NextReviewDate:      date(2025, 3, 15),
		Difficulty:          entity.DifficultyEasy,
		CurrentIntervalDays: 7,
		TimesReviewed:       2,
		Status:              entity.ReviewStatusLearning,
		CreatedAt:           time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	if _, err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "ri-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != item.Title || got.CurrentIntervalDays != 7 || got.TimesReviewed != 2 {
		t.Fatalf("unexpected item: %+v", got)
	}
	if !got.NextReviewDate.Equal(item.NextReviewDate) {
		t.Fatalf("next review date mismatch: %v", got.NextReviewDate)
	}
	if got.LastReviewedDate == nil || !got.LastReviewedDate.Equal(last) {
		t.Fatalf("last reviewed date mismatch: %v", got.LastReviewedDate)
	}
	if got.Difficulty != entity.DifficultyEasy || got.Status != entity.ReviewStatusLearning {
		t.Fatalf("enum round trip failed: %+v", got)
	}

	got.Title = "Photosynthesis II"
	got.NextReviewDate = date(2025, 4, 1)
	if _, err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetByID(ctx, "ri-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Title != "Photosynthesis II" || !updated.NextReviewDate.Equal(date(2025, 4, 1)) {
		t.Fatalf("update not persisted: %+v", updated)
	}

	if err := repo.Delete(ctx, "ri-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "ri-1"); !errors.Is(err, entity.ErrReviewItemNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	// Deleting an id that no longer exists stays silent.
	if err := repo.Delete(ctx, "ri-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestReviewItemRepositoryListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewItemRepository(newTestDB(t))

	seed := []struct {
		id   string
		next time.Time
	}{
		{"late", date(2025, 5, 20)},
		{"early", date(2025, 5, 1)},
		{"mid", date(2025, 5, 10)},
	}
	for _, s := range seed {
		item := &entity.ReviewItem{
			ID:              s.id,
			Title:           s.id,
			FirstReviewDate: date(2025, 4, 30),
			NextReviewDate:  s.next,
			Status:          entity.ReviewStatusNew,
			CreatedAt:       time.Date(2025, 4, 30, 8, 0, 0, 0, time.UTC),
		}
		if _, err := repo.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", s.id, err)
		}
	}

	items, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"early", "mid", "late"} {
		if items[i].ID != want {
			t.Fatalf("position %d: want %s got %s", i, want, items[i].ID)
		}
	}

	due := date(2025, 5, 10)
	dueItems, err := repo.List(ctx, &repository.ListReviewItemQuery{DueOn: &due})
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(dueItems) != 1 || dueItems[0].ID != "mid" {
		t.Fatalf("expected only mid due, got %+v", dueItems)
	}
}

func TestSnapshotReaderDropsMalformedTimestamps(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, completed, completed_at, scheduled_date, category, estimated_minutes, actual_seconds)
		VALUES
			(1, 1, '2025-03-01T14:00:00Z', '2025-03-01', 'Biology', 30, 1500),
			(2, 1, 'not-a-timestamp', 'also-bad', '', 0, 0)
	`); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	reader := NewSnapshotReader(db, log)

	tasks, err := reader.Tasks(ctx)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("malformed rows must still be counted, got %d", len(tasks))
	}
	var bad *entity.TaskRecord
	for i := range tasks {
		if tasks[i].ID == 2 {
			bad = &tasks[i]
		}
	}
	if bad == nil {
		t.Fatal("row with malformed timestamps missing")
	}
	if bad.CompletedAt != nil || bad.ScheduledDate != nil {
		t.Fatalf("malformed timestamps must be dropped: %+v", bad)
	}
}

func TestSnapshotReaderKeepsJournalEntriesWithBadDates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, err := db.ExecContext(ctx, `
		INSERT INTO journal_entries (date, content) VALUES
			('2025-03-01', 'Good session today.'),
			('garbage', 'Still a real entry.')
	`); err != nil {
		t.Fatalf("seed journal: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	reader := NewSnapshotReader(db, log)

	entries, err := reader.JournalEntries(ctx)
	if err != nil {
		t.Fatalf("journal entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries with bad dates must still be counted, got %d", len(entries))
	}
	var bad *entity.JournalEntry
	for i := range entries {
		if entries[i].Content == "Still a real entry." {
			bad = &entries[i]
		}
	}
	if bad == nil {
		t.Fatal("entry with malformed date missing")
	}
	if !bad.Date.IsZero() {
		t.Fatalf("malformed date must be dropped, got %v", bad.Date)
	}
}

func TestScoreStoreClampsAtZero(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreStore(newTestDB(t))

	if balance, err := scores.Get(ctx); err != nil || balance != 0 {
		t.Fatalf("fresh balance: %d, %v", balance, err)
	}
	if balance, err := scores.Add(ctx, 120); err != nil || balance != 120 {
		t.Fatalf("after +120: %d, %v", balance, err)
	}
	if balance, err := scores.Add(ctx, -50); err != nil || balance != 70 {
		t.Fatalf("after -50: %d, %v", balance, err)
	}
	if balance, err := scores.Add(ctx, -500); err != nil || balance != 0 {
		t.Fatalf("overspend must clamp to zero: %d, %v", balance, err)
	}
}
