package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY,
    book_title TEXT,
    source_path TEXT,
    token_count INTEGER,
    chapter_count INTEGER,
    duration_ms INTEGER,
    created_at TEXT
);

CREATE TABLE IF NOT EXISTS chapters (
    id INTEGER PRIMARY KEY,
    run_id INTEGER REFERENCES runs(id),
    chapter INTEGER,
    tokens INTEGER,
    war_density REAL,
    peace_density REAL,
    label TEXT
);

CREATE INDEX IF NOT EXISTS chapters_run ON chapters(run_id, chapter);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
