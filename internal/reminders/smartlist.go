package reminders

import (
	"strings"
	"time"

	"github.com/notexe/mcp-reminders/internal/store"
)

// SmartList is a read-only virtual list computed from a predicate over the
// union of every real list's items.
type SmartList struct {
	Name    string
	Aliases []string
	Match   func(item store.Item, now time.Time) bool
}

const (
	// smartPrefix is an optional namespace callers may use to name a
	// smart list explicitly, e.g. "smart:today".
	smartPrefix = "smart:"

	// smartDisplayPrefix is how smart lists are rendered in list
	// enumerations, e.g. "Smart: Today".
	smartDisplayPrefix = "Smart: "
)

// smartLists is the fixed registry. It is never mutated after init.
var smartLists = []SmartList{
	{
		Name:  "All",
		Match: func(store.Item, time.Time) bool { return true },
	},
	{
		Name: "Today",
		Match: func(it store.Item, now time.Time) bool {
			return !it.Completed && hasDueDate(it.DueDate) && sameLocalDay(it.DueDate, now)
		},
	},
	{
		Name:    "Scheduled",
		Aliases: []string{"Upcoming"},
		Match: func(it store.Item, _ time.Time) bool {
			return !it.Completed && hasDueDate(it.DueDate)
		},
	},
	{
		Name: "Flagged",
		Match: func(it store.Item, _ time.Time) bool {
			return !it.Completed && it.Flagged
		},
	},
	{
		Name:    "Completed",
		Aliases: []string{"Done"},
		Match: func(it store.Item, _ time.Time) bool {
			return it.Completed
		},
	},
	{
		Name:    "Overdue",
		Aliases: []string{"Past Due"},
		Match: func(it store.Item, now time.Time) bool {
			return !it.Completed && hasDueDate(it.DueDate) && it.DueDate.Before(now)
		},
	},
}

// smartPredicateFields is what every predicate may read; aggregation widens
// its fetches to include these.
var smartPredicateFields = []store.Field{
	store.FieldID, store.FieldName, store.FieldCompleted,
	store.FieldDueDate, store.FieldFlagged,
}

// matchSmartList resolves a user-supplied name against the registry,
// case-insensitively, tolerating the "smart:" prefix. Returns nil when
// nothing matches.
func matchSmartList(name string) *SmartList {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSpace(strings.TrimPrefix(n, smartPrefix))
	for i := range smartLists {
		sl := &smartLists[i]
		if n == strings.ToLower(sl.Name) {
			return sl
		}
		for _, alias := range sl.Aliases {
			if n == strings.ToLower(alias) {
				return sl
			}
		}
	}
	return nil
}

// hasDueDate reports whether the store value is a real date. A zero value
// or the epoch is the store's sentinel for "no date".
func hasDueDate(t time.Time) bool {
	return !t.IsZero() && t.Unix() != 0
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
