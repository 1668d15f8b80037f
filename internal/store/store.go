// Package store defines the contract for the native reminders store that
// backs the MCP server. Lists and items live in the store; this layer knows
// nothing about tags, locations, or smart lists.
package store

import (
	"context"
	"time"
)

// Field names an item attribute a caller wants populated on fetch.
// Implementations may return more fields than requested, never fewer.
type Field string

const (
	FieldID        Field = "id"
	FieldName      Field = "name"
	FieldCompleted Field = "completed"
	FieldDueDate   Field = "dueDate"
	FieldPriority  Field = "priority"
	FieldFlagged   Field = "flagged"
	FieldBody      Field = "body"
)

// List is a native, user-visible reminders list.
type List struct {
	ID   string
	Name string
}

// Item is a raw store row. A zero DueDate is the store's sentinel for
// "no date set".
type Item struct {
	ID        string
	Name      string
	Completed bool
	DueDate   time.Time
	Priority  int
	Flagged   bool
	Body      string
}

// ItemDraft holds the fields for a new item. Nil optionals are omitted
// from the create.
type ItemDraft struct {
	Name     string
	DueDate  *time.Time
	Body     *string
	Flagged  *bool
	Priority *int
}

// ItemPatch holds a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Completed *bool
	Flagged   *bool
	Priority  *int
	Body      *string
}

// Store is the native reminders store collaborator. Implementations are
// expected to reflect external edits between calls; callers never cache
// enumeration results.
type Store interface {
	// Lists enumerates every real list.
	Lists(ctx context.Context) ([]List, error)

	// Items fetches the items of one list with at least the requested fields.
	Items(ctx context.Context, listID string, fields []Field) ([]Item, error)

	// CreateItem adds an item to a list and returns the new identifier,
	// or "" if the store did not report one.
	CreateItem(ctx context.Context, listID string, draft ItemDraft) (string, error)

	// UpdateItem applies a partial update to an item by identifier.
	UpdateItem(ctx context.Context, itemID string, patch ItemPatch) error

	// DeleteItem removes an item by identifier.
	DeleteItem(ctx context.Context, itemID string) error
}
