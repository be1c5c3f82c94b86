package database

// schema creates every persisted collection. Calendar dates are stored as
// yyyy-mm-dd text; full timestamps as RFC 3339 text. The tasks, journal and
// score tables are read-only snapshots owned by sibling components and are
// only ever written through the backup import path.
const schema = `
CREATE TABLE IF NOT EXISTS review_items (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	first_review_date TEXT NOT NULL,
	last_reviewed_date TEXT,
	next_review_date TEXT NOT NULL,
	difficulty TEXT,
	current_interval_days INTEGER NOT NULL DEFAULT 0,
	times_reviewed INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'new',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_items_next_review
	ON review_items(next_review_date);

CREATE TABLE IF NOT EXISTS user_achievements (
	id TEXT PRIMARY KEY,
	unlocked_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT,
	scheduled_date TEXT,
	category TEXT NOT NULL DEFAULT '',
	estimated_minutes INTEGER NOT NULL DEFAULT 0,
	actual_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS journal_entries (
	date TEXT PRIMARY KEY,
	content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS score (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	points INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS owned_rewards (
	id TEXT PRIMARY KEY,
	purchased_at TEXT NOT NULL,
	expires_at TEXT
);

CREATE TABLE IF NOT EXISTS equipped_cosmetics (
	slot TEXT PRIMARY KEY,
	reward_id TEXT NOT NULL
);
`
