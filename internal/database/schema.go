package database

// schema は起動時に順番に実行されるDDLです。
var schema = []string{
	`CREATE TABLE IF NOT EXISTS committees (
		id         INTEGER PRIMARY KEY,
		title      TEXT NOT NULL,
		appendix   TEXT,
		status     TEXT NOT NULL DEFAULT 'not-started',
		percent    INTEGER NOT NULL DEFAULT 0,
		start_date TEXT,
		end_date   TEXT,
		notes      TEXT,
		updated_at TEXT DEFAULT (datetime('now', 'localtime'))
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		committee_id INTEGER NOT NULL,
		text         TEXT NOT NULL,
		done         INTEGER NOT NULL DEFAULT 0,
		sort_order   INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (committee_id) REFERENCES committees(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_committee ON tasks(committee_id, sort_order)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
}
