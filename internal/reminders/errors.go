package reminders

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an operation failure so callers can match on the class
// instead of parsing messages.
type Kind int

const (
	// KindNotFound means a list name resolved to neither a real nor a
	// smart list.
	KindNotFound Kind = iota + 1

	// KindValidation means the caller supplied malformed input on a strict
	// write path (bad due date, out-of-range location, smart list as a
	// mutation target).
	KindValidation

	// KindUpstream means the store collaborator itself failed.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error carries the failure kind plus the identifying arguments of the
// operation that raised it.
type Error struct {
	Kind     Kind
	Op       string
	List     string
	Reminder string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.List != "" {
		fmt.Fprintf(&b, " (list %q", e.List)
		if e.Reminder != "" {
			fmt.Fprintf(&b, ", reminder %q", e.Reminder)
		}
		b.WriteString(")")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a reminders error of the given kind.
func IsKind(err error, k Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == k
}
