// Package store handles SQLite persistence of cipher runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tprotect/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps a fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			direction TEXT NOT NULL,
			source TEXT NOT NULL,
			input_chars INTEGER NOT NULL,
			output_chars INTEGER NOT NULL,
			letters INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_letters (
			run_id TEXT NOT NULL,
			letter TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, letter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_letters_letter ON run_letters(letter);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and the letter counts of its input. A zero CreatedAt
// is replaced by the current time. It returns the generated run id.
func (s *Store) InsertRun(ctx context.Context, run model.Run, letters []model.LetterCount) (string, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, mode, direction, source, input_chars, output_chars, letters)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Mode,
		string(run.Direction),
		run.Source,
		run.InputChars,
		run.OutputChars,
		run.Letters,
	)
	if err != nil {
		return "", err
	}

	if len(letters) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_letters (run_id, letter, count) VALUES (?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, lc := range letters {
			if _, err = stmt.ExecContext(ctx, runID, lc.Letter, lc.Count); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// ListRuns returns runs in chronological order filtered by mode; Last keeps
// only the most recent N.
func (s *Store) ListRuns(ctx context.Context, filter model.HistoryFilter) ([]model.RunSummary, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, filter.Mode)
	}
	query := fmt.Sprintf(`SELECT run_id, created_at, mode, direction, source, input_chars, output_chars, letters
		FROM runs
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		var createdAt, direction string
		if err := rows.Scan(&r.RunID, &createdAt, &r.Mode, &direction, &r.Source, &r.InputChars, &r.OutputChars, &r.Letters); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = parsed
		r.Direction = model.Direction(direction)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(runs) > filter.Last {
		runs = runs[len(runs)-filter.Last:]
	}
	return runs, nil
}

// ListLetterTotals sums letter counts across the given runs, most frequent first.
func (s *Store) ListLetterTotals(ctx context.Context, runIDs []string) ([]model.LetterTotal, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT letter, SUM(count) AS total
		FROM run_letters
		WHERE run_id IN (%s)
		GROUP BY letter
		ORDER BY total DESC, letter ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LetterTotal
	for rows.Next() {
		var lt model.LetterTotal
		if err := rows.Scan(&lt.Letter, &lt.Count); err != nil {
			return nil, err
		}
		result = append(result, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
