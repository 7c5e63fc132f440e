package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite file.
// The pool is pinned to one connection, so all operations are serialized.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the notes database at path.
// The special path ":memory:" keeps everything in memory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Table and column names match databases created by earlier versions of the bot.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS thanks (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		to_whom TEXT NOT NULL,
		text    TEXT NOT NULL,
		date    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_thanks_date ON thanks(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, recipient, body string, date time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO thanks (to_whom, text, date) VALUES (?, ?, ?)`,
		recipient, body, FormatDate(date))
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert note id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Query(ctx context.Context, since time.Time) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, to_whom, text, date FROM thanks
		 WHERE date >= ?
		 ORDER BY to_whom, date, id`, FormatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var (
			n       Note
			dateStr string
		)
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Body, &dateStr); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		d, err := ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("note %d has bad date %q: %w", n.ID, dateStr, err)
		}
		n.CreatedDate = d
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (s *SQLiteStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM thanks WHERE date < ?`, FormatDate(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune notes: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM thanks`)
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *SQLiteStore) Contains(ctx context.Context, recipient, body string, date time.Time) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM thanks WHERE to_whom = ? AND text = ? AND date = ? LIMIT 1`,
		recipient, body, FormatDate(date)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup note: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
