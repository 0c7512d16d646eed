// Package parse builds the ACTION/GOTO table for a compiled grammar.Grammar
// (spec.md §4.3 step 9) and drives the classic shift-reduce parse loop over
// it (spec.md §4.4). Grounded on original_source/yacc.py's `action`/`parse`
// methods for the algorithm and the teacher's parse/slr.go/parse/lr.go for
// the Go-idiomatic shape (LRAction as a tagged variant, the
// notifyStatePush/notifyStatePop/notifyAction trace idiom).
package parse

import "fmt"

// Kind tags the variant an Action holds: spec.md §9's re-architecture note
// asks for "a tagged variant Action = Shift | Reduce(rule_id) | Accept"
// rather than the teacher's LRAction struct-of-optional-fields
// (Type/Production/Symbol/State all present regardless of Type).
type Kind int

const (
	// None is the zero value: no action is defined for this cell, i.e. a
	// syntax error.
	None Kind = iota
	Shift
	Reduce
	Accept
)

func (k Kind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "none"
	}
}

// Action is one ACTION table cell. Only the field matching Kind is
// meaningful: To for Shift, Rule for Reduce, neither for Accept or None.
type Action struct {
	Kind Kind
	To   int // Shift: state to transition to.
	Rule int // Reduce: rule index to reduce by.
}

// IsNone reports whether this cell has no defined action (a syntax error).
func (a Action) IsNone() bool {
	return a.Kind == None
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.To)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Rule)
	case Accept:
		return "accept"
	default:
		return "error"
	}
}
