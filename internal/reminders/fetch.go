package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/notexe/mcp-reminders/internal/store"
)

// fetchAllItems pulls every real list's items with the requested fields
// widened by what the smart predicates need, deduplicating by identifier.
// The first occurrence across list iteration order wins. Per-list fetches
// run concurrently; the merge preserves list order.
func (s *Service) fetchAllItems(ctx context.Context, fields []store.Field) ([]store.Item, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate lists: %w", err)
	}

	wanted := unionFields(fields, smartPredicateFields)

	results := make([][]store.Item, len(lists))
	errs := make([]error, len(lists))
	var wg sync.WaitGroup
	for i := range lists {
		wg.Add(1)
		go func(i int, listID string) {
			defer wg.Done()
			results[i], errs[i] = s.store.Items(ctx, listID, wanted)
		}(i, lists[i].ID)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items for list %q: %w", lists[i].Name, err)
		}
	}

	seen := make(map[string]bool)
	var merged []store.Item
	for _, items := range results {
		for _, it := range items {
			if it.ID != "" {
				if seen[it.ID] {
					continue
				}
				seen[it.ID] = true
			}
			merged = append(merged, it)
		}
	}
	return merged, nil
}

// fetchForList fetches the items of a resolved list: a direct single-list
// fetch for a regular list (field set not widened), or the predicate-filtered
// union for a smart list.
func (s *Service) fetchForList(ctx context.Context, rl resolvedList, fields []store.Field, now time.Time) ([]store.Item, error) {
	if rl.regular != nil {
		return s.store.Items(ctx, rl.regular.ID, fields)
	}

	all, err := s.fetchAllItems(ctx, fields)
	if err != nil {
		return nil, err
	}
	var out []store.Item
	for _, it := range all {
		if rl.smart.Match(it, now) {
			out = append(out, it)
		}
	}
	return out, nil
}

// unionFields merges two field sets preserving first-seen order.
func unionFields(a, b []store.Field) []store.Field {
	seen := make(map[store.Field]bool, len(a)+len(b))
	out := make([]store.Field, 0, len(a)+len(b))
	for _, fs := range [2][]store.Field{a, b} {
		for _, f := range fs {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
