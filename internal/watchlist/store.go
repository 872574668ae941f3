// Package watchlist persists the user's tracked symbols in SQLite.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Store is the durable watchlist. All operations are idempotent.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the watchlist database at dbPath.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS watchlist (
    symbol TEXT PRIMARY KEY,
    added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Add tracks a symbol. Adding one that is already tracked changes
// nothing; the bool reports whether the watchlist grew.
func (s *Store) Add(ctx context.Context, symbol string) (bool, error) {
	symbol = symbols.Normalize(symbol)
	if err := symbols.Validate(symbol); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO watchlist (symbol) VALUES (?)
ON CONFLICT(symbol) DO NOTHING
`, symbol)
	if err != nil {
		return false, fmt.Errorf("insert watchlist entry: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// Remove untracks a symbol. Removing an untracked symbol changes
// nothing; the bool reports whether an entry was deleted.
func (s *Store) Remove(ctx context.Context, symbol string) (bool, error) {
	symbol = symbols.Normalize(symbol)

	res, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE symbol = ?`, symbol)
	if err != nil {
		return false, fmt.Errorf("delete watchlist entry: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// List returns all entries, oldest first.
func (s *Store) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT symbol, added_at
FROM watchlist
ORDER BY added_at ASC, symbol ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.Symbol, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list watchlist rows: %w", err)
	}
	return entries, nil
}

// Symbols returns just the tracked symbols, oldest first.
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	syms := make([]string, 0, len(entries))
	for _, e := range entries {
		syms = append(syms, e.Symbol)
	}
	return syms, nil
}

// Contains reports whether a symbol is tracked.
func (s *Store) Contains(ctx context.Context, symbol string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM watchlist WHERE symbol = ? LIMIT 1`, symbols.Normalize(symbol))

	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check watchlist entry: %w", err)
	}
	return true, nil
}
