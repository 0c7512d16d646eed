package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dwyer/sly/automaton"
	"github.com/dwyer/sly/grammar"
	"github.com/dwyer/sly/lrerrors"
)

// Table is the compiled ACTION/GOTO table for a grammar, plus the canonical
// collection it was built from (kept around for String's diagnostic dump
// and for conflict-message item listings).
type Table struct {
	gram       *grammar.Grammar
	collection *automaton.Collection

	// action[state][terminal] is the resolved cell (spec.md §3's "For a
	// well-formed grammar this set is a singleton at every cell the parser
	// consults" — reduce/reduce conflicts are rejected at Compile time, so
	// by the time a Table exists every populated cell really is singular).
	action []map[string]Action

	// goto_[state][symbol] = next state. Named with a trailing underscore
	// since `goto` is a Go keyword.
	goto_ []map[string]int
}

// CompileOption configures Compile.
type CompileOption func(*compileOpts)

type compileOpts struct {
	onWarn func(string)
}

// OnWarn registers fn to be called once per shift/reduce conflict
// encountered during table construction, with a human-readable description
// of the conflicting items and terminal (spec.md §7: "Shift/reduce
// conflicts are warnings, not errors"). If unset, warnings are still
// collected and returned as the second return value of Compile, just not
// streamed as they are found.
func OnWarn(fn func(string)) CompileOption {
	return func(o *compileOpts) { o.onWarn = fn }
}

// Compile builds the ACTION/GOTO table for g, which must already be
// Compile'd (grammar.Grammar.Compile). It returns the table, a slice of
// shift/reduce conflict warnings (possibly empty), and an error if the
// grammar is not SLR(1) — which for this construction means only
// reduce/reduce conflicts, since shift/reduce is always resolved in favor
// of shift (spec.md §4.3 Conflicts: "Resolution policy: shift wins").
//
// Grounded on original_source/yacc.py's `action` property (the per-state,
// per-item ACTION-cell construction spec.md §4.3 step 9 describes) and the
// teacher's constructSimpleLRParseTable (parse/slr.go) for the Go shape:
// build the canonical collection first, then populate ACTION/GOTO cells
// from it, accumulating ambiguity warnings rather than panicking on the
// first shift/reduce conflict found.
func Compile(g *grammar.Grammar, opts ...CompileOption) (*Table, []string, error) {
	o := &compileOpts{}
	for _, opt := range opts {
		opt(o)
	}

	coll := automaton.Build(g)

	t := &Table{
		gram:       g,
		collection: coll,
		action:     make([]map[string]Action, len(coll.States)),
		goto_:      make([]map[string]int, len(coll.States)),
	}

	var warnings []string

	for _, state := range coll.States {
		t.action[state.Index] = map[string]Action{}
		t.goto_[state.Index] = map[string]int{}

		for sym, next := range coll.Transitions(state.Index) {
			if g.IsTerminal(sym) {
				t.setAction(state.Index, sym, Action{Kind: Shift, To: next})
			} else {
				t.goto_[state.Index][sym] = next
			}
		}

		for _, item := range state.Items {
			if !item.Complete(g) {
				continue
			}
			rule := g.Rule(item.Rule)

			if item.Rule == 0 {
				// The augmented rule $accept -> start is complete:
				// ACTION[state][$end] |= accept (spec.md §4.3 step 9). No
				// $end token is ever shifted; reaching this item with
				// lookahead $end is itself the signal to accept.
				if warn := t.setAction(state.Index, grammar.End, Action{Kind: Accept}); warn != "" {
					return nil, warnings, lrerrors.NewConfigError("table construction", fmt.Errorf("%s", warn))
				}
				continue
			}

			for _, term := range g.FollowSet(rule.NonTerminal).Elements() {
				warn, conflict := t.tryReduce(state.Index, term, item.Rule)
				if conflict == conflictReduceReduce {
					return nil, warnings, lrerrors.NewConfigError("table construction", fmt.Errorf("%s", warn))
				}
				if warn != "" {
					warnings = append(warnings, warn)
					if o.onWarn != nil {
						o.onWarn(warn)
					}
				}
			}
		}
	}

	return t, warnings, nil
}

type conflictKind int

const (
	conflictNone conflictKind = iota
	conflictShiftReduce
	conflictReduceReduce
)

// setAction installs act at [state][term] if the cell is empty. If the
// existing cell already holds a different action, setAction reports the
// conflict as a diagnostic string (empty if no conflict). It is used for
// shift cells, each of which is its cell's first write (a state has at most
// one transition per symbol and shifts are installed before any reduce),
// and for the accept cell, where a non-empty result aborts Compile.
func (t *Table) setAction(state int, term string, act Action) string {
	existing, ok := t.action[state][term]
	if !ok {
		t.action[state][term] = act
		return ""
	}
	if existing == act {
		return ""
	}
	return fmt.Sprintf("conflicting actions %s and %s on terminal %q in state %d", existing, act, term, state)
}

// tryReduce attempts to install a Reduce(rule) action at [state][term],
// applying spec.md §4.3's conflict-resolution policy: a shift already
// present wins (the cell is left untouched and a warning is reported); two
// reduces is fatal.
func (t *Table) tryReduce(state int, term string, rule int) (warning string, kind conflictKind) {
	existing, ok := t.action[state][term]
	if !ok {
		t.action[state][term] = Action{Kind: Reduce, Rule: rule}
		return "", conflictNone
	}
	if existing.Kind == Reduce && existing.Rule == rule {
		return "", conflictNone
	}

	switch existing.Kind {
	case Shift:
		return fmt.Sprintf("shift/reduce conflict on terminal %q in state %d: shifting (rule %d not reduced)\n%s",
			term, state, rule, t.itemsOf(state)), conflictShiftReduce
	case Reduce:
		return fmt.Sprintf("reduce/reduce conflict on terminal %q in state %d: rule %d and rule %d both apply",
			term, state, existing.Rule, rule), conflictReduceReduce
	case Accept:
		return fmt.Sprintf("accept/reduce conflict on terminal %q in state %d (rule %d)", term, state, rule), conflictReduceReduce
	default:
		t.action[state][term] = Action{Kind: Reduce, Rule: rule}
		return "", conflictNone
	}
}

// Action returns the ACTION table cell for (state, terminal). A cell with
// Kind == None means no action is defined — a syntax error (spec.md §4.4).
func (t *Table) Action(state int, terminal string) Action {
	return t.action[state][terminal]
}

// Goto returns the GOTO table entry for (state, symbol), and true, or (0,
// false) if there is no such transition.
func (t *Table) Goto(state int, symbol string) (int, bool) {
	next, ok := t.goto_[state][symbol]
	return next, ok
}

// NumStates returns the number of states in the compiled collection.
func (t *Table) NumStates() int {
	return len(t.collection.States)
}

// ExpectedTerminals returns the human-readable names of every terminal that
// has a defined (non-None) ACTION cell in state, in grammar declaration
// order — used to build a SyntaxError's "expected" list (spec.md §7:
// "at verbose level, the set of expected terminals (keys of ACTION[s])").
func (t *Table) ExpectedTerminals(state int) []string {
	var out []string
	for _, term := range t.gram.Terminals() {
		if act, ok := t.action[state][term]; ok && act.Kind != None {
			out = append(out, t.gram.Human(term))
		}
	}
	return out
}

// String renders the ACTION/GOTO grid with rosed, one row per state, one
// "A:<term>" column per terminal and one "G:<nt>" column per nonterminal —
// following the teacher's slrTable.String() (parse/slr.go) header/row
// construction nearly line for line.
func (t *Table) String() string {
	terms := t.gram.Terminals()
	nonTerms := t.gram.NonTerminals()

	headers := []string{"state"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}

	for state := 0; state < t.NumStates(); state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, term := range terms {
			act, ok := t.action[state][term]
			cell := ""
			if ok {
				switch act.Kind {
				case Accept:
					cell = "acc"
				case Shift:
					cell = fmt.Sprintf("s%d", act.To)
				case Reduce:
					cell = fmt.Sprintf("r%d", act.Rule)
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			cell := ""
			if next, ok := t.goto_[state][nt]; ok {
				cell = fmt.Sprintf("%d", next)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// itemsOf renders every item in state, one per line, for the verbose detail
// spec.md §4.3 Conflicts asks a shift/reduce warning to carry ("at verbose
// level, list the items and the conflicting terminals").
func (t *Table) itemsOf(state int) string {
	var b strings.Builder
	for _, it := range t.collection.States[state].Items {
		fmt.Fprintf(&b, "  %s\n", it.String(t.gram))
	}
	return b.String()
}
