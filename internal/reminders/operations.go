package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/notexe/mcp-reminders/internal/store"
)

// Service exposes the public reminder operations over a store.
type Service struct {
	store store.Store
}

// NewService wraps a store with the virtualization layer.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// recordFields is what the public Reminder shape needs from the store.
var recordFields = []store.Field{
	store.FieldID, store.FieldName, store.FieldCompleted,
	store.FieldDueDate, store.FieldPriority, store.FieldFlagged,
	store.FieldBody,
}

// dueDateLayouts are the accepted input formats for due dates, tried in
// order. Layouts without a zone are interpreted in local time.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable due date %q (use RFC3339, 2006-01-02 15:04:05 or 2006-01-02)", value)
}

// ListNames returns every real list name followed by the smart lists
// rendered with their display prefix.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Op: "get_lists", Msg: "failed to enumerate lists", Err: err}
	}
	names := make([]string, 0, len(lists)+len(smartLists))
	for _, l := range lists {
		names = append(names, l.Name)
	}
	for i := range smartLists {
		names = append(names, smartDisplayPrefix+smartLists[i].Name)
	}
	return names, nil
}

// ListReminders returns the decoded records of a real or smart list.
func (s *Service) ListReminders(ctx context.Context, listName string) ([]Reminder, error) {
	const op = "get_reminders"
	rl, err := s.resolveList(ctx, op, listName)
	if err != nil {
		return nil, err
	}

	items, err := s.fetchForList(ctx, rl, recordFields, time.Now())
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Op: op, List: listName, Err: err}
	}

	records := make([]Reminder, 0, len(items))
	for _, it := range items {
		records = append(records, itemToReminder(it))
	}
	return records, nil
}

// itemToReminder maps a raw store row to the public record shape, decoding
// the embedded metadata and applying safe defaults.
func itemToReminder(it store.Item) Reminder {
	notes, meta := decodeBody(it.Body)
	r := Reminder{
		Name:      it.Name,
		Completed: it.Completed,
		Flagged:   it.Flagged,
		Notes:     notes,
		Tags:      meta.Tags,
		Location:  meta.Location,
	}
	if it.Priority >= PriorityMin && it.Priority <= PriorityMax {
		r.Priority = it.Priority
	}
	if hasDueDate(it.DueDate) {
		due := it.DueDate
		r.DueDate = &due
	}
	return r
}

// ListTags scans one list (or every list when listName is empty) and
// returns the union of tags, deduplicated case-insensitively with the
// first-seen casing, sorted with locale-aware collation.
func (s *Service) ListTags(ctx context.Context, listName string) ([]string, error) {
	const op = "get_tags"

	var items []store.Item
	var err error
	if listName == "" {
		items, err = s.fetchAllItems(ctx, []store.Field{store.FieldID, store.FieldBody})
	} else {
		var rl resolvedList
		rl, err = s.resolveList(ctx, op, listName)
		if err != nil {
			return nil, err
		}
		items, err = s.fetchForList(ctx, rl, []store.Field{store.FieldID, store.FieldBody}, time.Now())
	}
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Op: op, List: listName, Err: err}
	}

	seen := make(map[string]bool)
	var tags []string
	for _, it := range items {
		_, meta := decodeBody(it.Body)
		for _, t := range meta.Tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, t)
		}
	}

	collate.New(language.Und).SortStrings(tags)
	return tags, nil
}

// CreateParams holds the inputs of CreateReminder. DueDate is the raw
// caller string, parsed strictly.
type CreateParams struct {
	ListName string
	Title    string
	DueDate  string
	Notes    string
	Flagged  *bool
	Priority *int
	Tags     []string
	Location *Location
}

// CreateReminder adds an item to a real list, packing tags and location
// into the body. Returns whether the store reported a new identifier.
func (s *Service) CreateReminder(ctx context.Context, p CreateParams) (bool, error) {
	const op = "create_reminder"

	if strings.TrimSpace(p.Title) == "" {
		return false, &Error{Kind: KindValidation, Op: op, List: p.ListName, Msg: "title must not be empty"}
	}

	rl, err := s.resolveList(ctx, op, p.ListName)
	if err != nil {
		return false, err
	}
	if rl.smart != nil {
		return false, &Error{
			Kind: KindValidation, Op: op, List: p.ListName,
			Msg: fmt.Sprintf("smart list %q is read-only and cannot be a creation target", rl.smart.Name),
		}
	}

	draft := store.ItemDraft{Name: p.Title, Flagged: p.Flagged}

	if p.DueDate != "" {
		due, err := parseDueDate(p.DueDate)
		if err != nil {
			return false, &Error{Kind: KindValidation, Op: op, List: p.ListName, Err: err}
		}
		draft.DueDate = &due
	}

	if p.Priority != nil {
		if *p.Priority < PriorityMin || *p.Priority > PriorityMax {
			return false, &Error{
				Kind: KindValidation, Op: op, List: p.ListName,
				Msg: fmt.Sprintf("priority %d out of range [%d, %d]", *p.Priority, PriorityMin, PriorityMax),
			}
		}
		draft.Priority = p.Priority
	}

	// Creation is a controlled-input path: invalid location fields fail
	// loudly instead of being dropped.
	loc, err := NormalizeLocation(p.Location, true)
	if err != nil {
		return false, &Error{Kind: KindValidation, Op: op, List: p.ListName, Err: err}
	}

	body := composeBody(p.Notes, Metadata{Tags: p.Tags, Location: loc})
	if body != "" {
		draft.Body = &body
	}

	id, err := s.store.CreateItem(ctx, rl.regular.ID, draft)
	if err != nil {
		return false, &Error{Kind: KindUpstream, Op: op, List: p.ListName, Msg: "failed to create item", Err: err}
	}
	return id != "", nil
}

// AttributeChanges is a partial update for SetReminderAttributes. Nil
// fields are left untouched. A non-nil empty Tags slice clears the tags.
// SetLocation marks that a location value was supplied: nil clears it,
// non-nil replaces it.
type AttributeChanges struct {
	Flagged     *bool
	Priority    *int
	Tags        []string
	Location    *Location
	SetLocation bool
}

func (c AttributeChanges) isZero() bool {
	return c.Flagged == nil && c.Priority == nil && c.Tags == nil && !c.SetLocation
}

// SetReminderAttributes updates the first item in the resolved list whose
// name matches exactly. Returns false when no item matches; a call with no
// supplied field is a successful no-op.
func (s *Service) SetReminderAttributes(ctx context.Context, listName, reminderName string, ch AttributeChanges) (bool, error) {
	const op = "set_attributes"

	if ch.isZero() {
		return true, nil
	}

	if ch.Priority != nil && (*ch.Priority < PriorityMin || *ch.Priority > PriorityMax) {
		return false, &Error{
			Kind: KindValidation, Op: op, List: listName, Reminder: reminderName,
			Msg: fmt.Sprintf("priority %d out of range [%d, %d]", *ch.Priority, PriorityMin, PriorityMax),
		}
	}

	rl, err := s.resolveList(ctx, op, listName)
	if err != nil {
		return false, err
	}

	// The current body is needed only when metadata is being touched.
	var extra []store.Field
	if ch.Tags != nil || ch.SetLocation {
		extra = []store.Field{store.FieldBody}
	}
	item, found, err := s.findByName(ctx, op, rl, listName, reminderName, extra)
	if err != nil || !found {
		return false, err
	}

	patch := store.ItemPatch{Flagged: ch.Flagged, Priority: ch.Priority}

	if ch.Tags != nil || ch.SetLocation {
		notes, meta := decodeBody(item.Body)
		if ch.Tags != nil {
			meta.Tags = NormalizeTags(ch.Tags)
		}
		if ch.SetLocation {
			loc, err := NormalizeLocation(ch.Location, true)
			if err != nil {
				return false, &Error{Kind: KindValidation, Op: op, List: listName, Reminder: reminderName, Err: err}
			}
			meta.Location = loc
		}
		body := composeBody(notes, meta)
		patch.Body = &body
	}

	if err := s.store.UpdateItem(ctx, item.ID, patch); err != nil {
		return false, &Error{Kind: KindUpstream, Op: op, List: listName, Reminder: reminderName, Msg: "failed to update item", Err: err}
	}
	return true, nil
}

// CompleteReminder sets the completed flag on the first name match in the
// resolved list. Returns false when no item matches.
func (s *Service) CompleteReminder(ctx context.Context, listName, reminderName string) (bool, error) {
	const op = "complete_reminder"

	rl, err := s.resolveList(ctx, op, listName)
	if err != nil {
		return false, err
	}
	item, found, err := s.findByName(ctx, op, rl, listName, reminderName, nil)
	if err != nil || !found {
		return false, err
	}

	completed := true
	if err := s.store.UpdateItem(ctx, item.ID, store.ItemPatch{Completed: &completed}); err != nil {
		return false, &Error{Kind: KindUpstream, Op: op, List: listName, Reminder: reminderName, Msg: "failed to complete item", Err: err}
	}
	return true, nil
}

// DeleteReminder removes the first name match in the resolved list.
// Returns false when no item matches.
func (s *Service) DeleteReminder(ctx context.Context, listName, reminderName string) (bool, error) {
	const op = "delete_reminder"

	rl, err := s.resolveList(ctx, op, listName)
	if err != nil {
		return false, err
	}
	item, found, err := s.findByName(ctx, op, rl, listName, reminderName, nil)
	if err != nil || !found {
		return false, err
	}

	if err := s.store.DeleteItem(ctx, item.ID); err != nil {
		return false, &Error{Kind: KindUpstream, Op: op, List: listName, Reminder: reminderName, Msg: "failed to delete item", Err: err}
	}
	return true, nil
}

// findByName is the shared lookup for the write operations: first item in
// fetch order whose name matches exactly, requesting the minimal field set
// plus whatever the caller needs. Matching against a smart list runs over
// the live-filtered union, same as reads.
func (s *Service) findByName(ctx context.Context, op string, rl resolvedList, listName, name string, extra []store.Field) (store.Item, bool, error) {
	fields := unionFields([]store.Field{store.FieldID, store.FieldName}, extra)
	items, err := s.fetchForList(ctx, rl, fields, time.Now())
	if err != nil {
		return store.Item{}, false, &Error{Kind: KindUpstream, Op: op, List: listName, Reminder: name, Err: err}
	}
	for _, it := range items {
		if it.Name == name {
			return it, true, nil
		}
	}
	return store.Item{}, false, nil
}
