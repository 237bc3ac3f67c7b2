package db

import (
	"database/sql"
	"fmt"
	"time"

	"warpeace/internal/classify"
	"warpeace/internal/report"
)

// PersistRun stores a finished run and its chapters in one transaction and
// returns the run id.
func PersistRun(dbPath string, r report.Report, at time.Time) (int64, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs(book_title, source_path, token_count, chapter_count, duration_ms, created_at) VALUES(?,?,?,?,?,?)`,
		r.BookTitle,
		r.SourcePath,
		r.TokenCount,
		r.ChapterCount,
		r.DurationMs,
		at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run last insert id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO chapters(run_id, chapter, tokens, war_density, peace_density, label) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare chapter insert: %w", err)
	}
	defer stmt.Close()
	for _, c := range r.Chapters {
		if _, err := stmt.Exec(runID, c.Chapter, c.Tokens, c.WarDensity, c.PeaceDensity, string(c.Label)); err != nil {
			return 0, fmt.Errorf("insert chapter %d: %w", c.Chapter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return runID, nil
}

// LoadLabels returns the labels of a stored run in chapter order.
func LoadLabels(dbPath string, runID int64) ([]classify.Label, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT label FROM chapters WHERE run_id = ? ORDER BY chapter`, runID)
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	defer rows.Close()

	var out []classify.Label
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		out = append(out, classify.Label(label))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}
	return out, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	switch table {
	case "runs", "chapters":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
