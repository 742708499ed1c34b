package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend keeps scores in a SQLite database, one row per score.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLiteBackend struct {
	db *sql.DB
}

// ScoreEntry is a stored score with the time it was recorded.
type ScoreEntry struct {
	Title     string
	Score     int
	CreatedAt time.Time
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Writes from concurrent ssh sessions go through one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(title, score DESC);
	`
	_, err := b.db.Exec(schema)
	return err
}

// Load reads every title's scores, highest first.
func (b *SQLiteBackend) Load() (Table, error) {
	rows, err := b.db.Query(`SELECT title, score FROM scores ORDER BY title, score DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	t := make(Table)
	for rows.Next() {
		var title string
		var score int
		if err := rows.Scan(&title, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t[title] = append(t[title], score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return t, nil
}

// Save replaces the stored rows with the table. Scores already stored keep
// their original timestamps.
func (b *SQLiteBackend) Save(t Table) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	for title, scores := range t {
		existing, err := b.entries(tx, title)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM scores WHERE title = ?`, title); err != nil {
			return fmt.Errorf("storage: cannot clear scores: %w", err)
		}

		for _, score := range scores {
			created := time.Now().UTC()
			for i, e := range existing {
				if e.Score == score {
					created = e.CreatedAt
					existing = append(existing[:i], existing[i+1:]...)
					break
				}
			}
			if _, err := tx.Exec(
				`INSERT INTO scores (title, score, created_at) VALUES (?, ?, ?)`,
				title, score, created.Format(timeLayout),
			); err != nil {
				return fmt.Errorf("storage: cannot save score: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// Entries returns a title's scores with their timestamps, highest first.
func (b *SQLiteBackend) Entries(title string) ([]ScoreEntry, error) {
	return b.entries(b.db, title)
}

const timeLayout = "2006-01-02 15:04:05"

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func (b *SQLiteBackend) entries(q queryer, title string) ([]ScoreEntry, error) {
	rows, err := q.Query(
		`SELECT title, score, created_at
		 FROM scores
		 WHERE title = ?
		 ORDER BY score DESC`,
		title,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.Title, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// The driver returns either time.Time or a string depending on how
		// the row was written.
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse(timeLayout, v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
