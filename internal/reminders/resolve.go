package reminders

import (
	"context"
	"strings"

	"github.com/notexe/mcp-reminders/internal/store"
)

// resolvedList classifies a user-supplied list name: exactly one of the two
// fields is set.
type resolvedList struct {
	regular *store.List
	smart   *SmartList
}

// resolveList classifies a list name against the current store catalog.
// Real lists are checked first, so a real list shadowing a smart-list name
// wins. Resolution is never cached; the catalog can change between calls.
func (s *Service) resolveList(ctx context.Context, op, name string) (resolvedList, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return resolvedList{}, &Error{Kind: KindUpstream, Op: op, List: name, Msg: "failed to enumerate lists", Err: err}
	}

	trimmed := strings.TrimSpace(name)
	for i := range lists {
		if strings.EqualFold(trimmed, lists[i].Name) {
			return resolvedList{regular: &lists[i]}, nil
		}
	}

	if sl := matchSmartList(name); sl != nil {
		return resolvedList{smart: sl}, nil
	}

	return resolvedList{}, &Error{Kind: KindNotFound, Op: op, List: name, Msg: "no such list"}
}
