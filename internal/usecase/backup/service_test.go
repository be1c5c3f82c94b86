package backup

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/database"
)

func TestServiceExportImportRoundTrip(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()

	srcDSN := "file:" + filepath.Join(t.TempDir(), "src.db") + "?_fk=1"
	srcDB := openMigrated(t, srcDSN)
	seedData(t, ctx, srcDB)

	exporter, err := NewService(srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstDSN := "file:" + filepath.Join(t.TempDir(), "dst.db") + "?_fk=1"
	dstDB := openMigrated(t, dstDSN)

	importer, err := NewService(dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	for _, table := range []string{"review_items", "tasks", "journal_entries", "score", "user_achievements", "owned_rewards", "equipped_cosmetics"} {
		src := snapshotTable(t, ctx, srcDB, table)
		dst := snapshotTable(t, ctx, dstDB, table)
		if !reflect.DeepEqual(src, dst) {
			t.Fatalf("table %s mismatch after import:\nwant %#v\ngot  %#v", table, src, dst)
		}
	}
}

func TestServiceExportTablesFilter(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()

	srcDSN := "file:" + filepath.Join(t.TempDir(), "src.db") + "?_fk=1"
	srcDB := openMigrated(t, srcDSN)
	seedData(t, ctx, srcDB)

	exporter, err := NewService(srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf, WithTables([]string{"review_items"})); err != nil {
		t.Fatalf("filtered export failed: %v", err)
	}

	dstDSN := "file:" + filepath.Join(t.TempDir(), "dst.db") + "?_fk=1"
	dstDB := openMigrated(t, dstDSN)

	importer, err := NewService(dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("filtered import failed: %v", err)
	}

	if got := snapshotTable(t, ctx, dstDB, "review_items"); len(got) != 2 {
		t.Fatalf("expected 2 review items, got %d", len(got))
	}
	if got := snapshotTable(t, ctx, dstDB, "tasks"); len(got) != 0 {
		t.Fatalf("expected no tasks, got %#v", got)
	}
}

func TestServiceImportReplacesExistingRows(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()

	srcDSN := "file:" + filepath.Join(t.TempDir(), "src.db") + "?_fk=1"
	srcDB := openMigrated(t, srcDSN)
	seedData(t, ctx, srcDB)

	exporter, err := NewService(srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstDSN := "file:" + filepath.Join(t.TempDir(), "dst.db") + "?_fk=1"
	dstDB := openMigrated(t, dstDSN)
	mustExec(t, ctx, dstDB, `
		INSERT INTO review_items (id, title, content, first_review_date, next_review_date,
			current_interval_days, times_reviewed, status, created_at)
		VALUES ('stale', 'Stale item', '', '2025-01-01', '2025-01-01', 0, 0, 'new', '2025-01-01T00:00:00Z')
	`)

	importer, err := NewService(dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var staleCount int
	if err := dstDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_items WHERE id = 'stale'`).Scan(&staleCount); err != nil {
		t.Fatalf("count stale: %v", err)
	}
	if staleCount != 0 {
		t.Fatal("expected pre-existing row to be replaced by import")
	}
}

func TestServiceImportRejectsMissingMeta(t *testing.T) {
	requireSQLite(t)

	dsn := "file:" + filepath.Join(t.TempDir(), "dst.db") + "?_fk=1"
	openMigrated(t, dsn)

	importer, err := NewService(dsn)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	stream := `{"type":"score","payload":{"id":1,"points":10}}` + "\n"
	if err := importer.Import(context.Background(), bytes.NewReader([]byte(stream))); err == nil {
		t.Fatal("expected error for stream without meta record")
	}
}

func openMigrated(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open %s: %v", dsn, err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate %s: %v", dsn, err)
	}
	return db
}

func seedData(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	mustExec(t, ctx, db, `
		INSERT INTO review_items (id, title, content, first_review_date, last_reviewed_date,
			next_review_date, difficulty, current_interval_days, times_reviewed, status, created_at)
		VALUES
			('ri-1', 'Photosynthesis', 'Light reactions', '2025-03-01', '2025-03-08', '2025-03-15', 'easy', 7, 2, 'learning', '2025-03-01T09:00:00Z'),
			('ri-2', 'Krebs cycle', '', '2025-03-02', NULL, '2025-03-02', NULL, 0, 0, 'new', '2025-03-02T10:30:00Z')
	`)
	mustExec(t, ctx, db, `
		INSERT INTO tasks (id, completed, completed_at, scheduled_date, category, estimated_minutes, actual_seconds)
		VALUES
			(1, 1, '2025-03-01T14:00:00Z', '2025-03-01', 'Biology', 30, 1500),
			(2, 0, NULL, '2025-03-03', 'Math', 45, 0)
	`)
	mustExec(t, ctx, db, `INSERT INTO journal_entries (date, content) VALUES ('2025-03-01', 'Good session today.')`)
	mustExec(t, ctx, db, `INSERT INTO score (id, points) VALUES (1, 250)`)
	mustExec(t, ctx, db, `INSERT INTO user_achievements (id, unlocked_at) VALUES ('INITIATE', '2025-03-01T14:01:00Z')`)
	mustExec(t, ctx, db, `INSERT INTO owned_rewards (id, purchased_at, expires_at) VALUES ('ZEN_MODE_THEME', '2025-03-02T08:00:00Z', NULL)`)
	mustExec(t, ctx, db, `INSERT INTO equipped_cosmetics (slot, reward_id) VALUES ('avatar_frame', 'GOLDEN_AVATAR_FRAME')`)
}

func mustExec(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("exec failed: %v\nquery: %s", err, query)
	}
}

// snapshotTable reads every row of a table into ordered string maps so
// databases can be compared wholesale.
func snapshotTable(t *testing.T, ctx context.Context, db *sql.DB, table string) []map[string]string {
	t.Helper()
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		t.Fatalf("query %s: %v", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatalf("columns %s: %v", table, err)
	}

	var result []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range dest {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			t.Fatalf("scan %s: %v", table, err)
		}
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if values[i].Valid {
				row[col] = values[i].String
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate %s: %v", table, err)
	}
	return result
}

func requireSQLite(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
		return
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Skipf("skipping sqlite-dependent tests: %v", err)
	}
}
