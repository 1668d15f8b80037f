// Package sqlitestore is the bundled SQLite implementation of the reminders
// store contract. It stands in for the OS reminders database when the server
// runs without a native binding.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/notexe/mcp-reminders/internal/store"
)

// DefaultListName is seeded on first run so the store is never empty.
const DefaultListName = "Reminders"

// Store provides SQLite-backed storage for reminder lists and items.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lists (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS items (
			id        TEXT    PRIMARY KEY,
			list_id   TEXT    NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			name      TEXT    NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			due_date  TEXT    NOT NULL DEFAULT '',
			priority  INTEGER NOT NULL DEFAULT 0,
			flagged   INTEGER NOT NULL DEFAULT 0,
			body      TEXT    NOT NULL DEFAULT '',
			created_at TEXT   NOT NULL,
			updated_at TEXT   NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_list ON items(list_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateList adds a new list and returns its identifier.
func (s *Store) CreateList(ctx context.Context, name string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO lists (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", fmt.Errorf("failed to create list: %w", err)
	}
	return id, nil
}

// EnsureDefaultList seeds the default list when the store has no lists yet.
func (s *Store) EnsureDefaultList(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count lists: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err := s.CreateList(ctx, DefaultListName)
	return err
}

// Lists enumerates every list in creation order.
func (s *Store) Lists(ctx context.Context) ([]store.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM lists ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []store.List
	for rows.Next() {
		var l store.List
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// Items fetches one list's items. The requested field set is a hint; all
// columns are cheap to read here, so every field comes back populated.
func (s *Store) Items(ctx context.Context, listID string, _ []store.Field) ([]store.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, completed, due_date, priority, flagged, body
		FROM items WHERE list_id = ? ORDER BY rowid ASC
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []store.Item
	for rows.Next() {
		var it store.Item
		var completed, flagged int
		var dueDate string

		if err := rows.Scan(&it.ID, &it.Name, &completed, &dueDate,
			&it.Priority, &flagged, &it.Body); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		it.Completed = completed != 0
		it.Flagged = flagged != 0
		if dueDate != "" {
			it.DueDate, _ = time.Parse(time.RFC3339, dueDate)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem inserts a new item and returns the assigned identifier.
func (s *Store) CreateItem(ctx context.Context, listID string, draft store.ItemDraft) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	dueDate := ""
	if draft.DueDate != nil && !draft.DueDate.IsZero() {
		dueDate = draft.DueDate.UTC().Format(time.RFC3339)
	}
	body := ""
	if draft.Body != nil {
		body = *draft.Body
	}
	flagged := 0
	if draft.Flagged != nil && *draft.Flagged {
		flagged = 1
	}
	priority := 0
	if draft.Priority != nil {
		priority = *draft.Priority
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, list_id, name, completed, due_date, priority, flagged, body, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?, ?)
	`, id, listID, draft.Name, dueDate, priority, flagged, body, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert item: %w", err)
	}
	return id, nil
}

// UpdateItem applies a partial update to an item.
func (s *Store) UpdateItem(ctx context.Context, itemID string, patch store.ItemPatch) error {
	setClauses := []string{}
	args := []interface{}{}

	if patch.Completed != nil {
		setClauses = append(setClauses, "completed = ?")
		args = append(args, boolInt(*patch.Completed))
	}
	if patch.Flagged != nil {
		setClauses = append(setClauses, "flagged = ?")
		args = append(args, boolInt(*patch.Flagged))
	}
	if patch.Priority != nil {
		setClauses = append(setClauses, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Body != nil {
		setClauses = append(setClauses, "body = ?")
		args = append(args, *patch.Body)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	args = append(args, itemID)

	query := "UPDATE items SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("item %s not found", itemID)
	}
	return nil
}

// DeleteItem removes an item by identifier.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("item %s not found", itemID)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
