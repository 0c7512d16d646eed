// Package automaton builds the canonical collection of LR(0) item sets for
// a grammar.Grammar: the closure and goto operations, and the state
// machine they generate. This is a direct, spec-scoped construction — not
// the teacher's generic NFA[E]/DFA[E] subset-construction engine
// (internal/ictiobus/automaton/nfa.go, dfa.go), which exists to turn
// regular expressions into automata and has no notion of a grammar item at
// all. Grounded instead on original_source/yacc.py's `closure`, `get_goto`,
// and `items` methods (Algorithm 4.44/4.46 in the dragon-book numbering the
// teacher's parse package cites).
package automaton

import (
	"sort"

	"github.com/dwyer/sly/grammar"
)

// State is one node of the canonical collection: a closed set of items,
// indexed by its discovery order (spec.md §4.3 "Determinism": state 0 is
// always the closure of the augmented start item).
type State struct {
	Index int
	Items []grammar.Item
}

// Collection is the canonical LR(0) collection: states plus the goto
// transitions between them.
type Collection struct {
	States []State

	// transitions[i][X] = j means State i transitions to State j on symbol
	// X, i.e. Goto(States[i], X) == States[j].
	transitions []map[string]int
}

// Goto returns the state index reached from state i on symbol, and true, or
// (0, false) if there is no such transition.
func (c *Collection) Goto(state int, symbol string) (int, bool) {
	j, ok := c.transitions[state][symbol]
	return j, ok
}

// Transitions returns the outgoing symbol->state map for a state, in no
// particular order; callers that need determinism should sort the symbols
// themselves. parse.Compile ranges over it unsorted: each symbol fills its
// own ACTION or GOTO cell, so the order does not change the table.
func (c *Collection) Transitions(state int) map[string]int {
	return c.transitions[state]
}

// itemSet is an insertion-ordered set of items: used for closure/goto
// intermediate results, where item declaration order doesn't change the
// mathematical result but does make State.Items deterministic and
// reproducible for diagnostics and table dumps.
type itemSet struct {
	has   map[grammar.Item]bool
	order []grammar.Item
}

func newItemSet() *itemSet {
	return &itemSet{has: make(map[grammar.Item]bool)}
}

func (s *itemSet) add(it grammar.Item) bool {
	if s.has[it] {
		return false
	}
	s.has[it] = true
	s.order = append(s.order, it)
	return true
}

// key returns a canonical string identifying the set's content regardless
// of insertion order, for item-set deduplication when building the
// canonical collection.
func (s *itemSet) key() string {
	sorted := make([]grammar.Item, len(s.order))
	copy(sorted, s.order)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rule != sorted[j].Rule {
			return sorted[i].Rule < sorted[j].Rule
		}
		return sorted[i].Dot < sorted[j].Dot
	})
	b := make([]byte, 0, len(sorted)*6)
	for _, it := range sorted {
		b = append(b, it.Key()...)
		b = append(b, ';')
	}
	return string(b)
}

// Closure computes the closure of an item set (Algorithm: for every item A
// -> α . B β in the set with B a nonterminal, add every item B -> . γ for
// each of B's productions, until no more items can be added). Grounded on
// original_source/yacc.py's `closure` method.
func Closure(g *grammar.Grammar, items []grammar.Item) []grammar.Item {
	set := newItemSet()
	for _, it := range items {
		set.add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range set.order {
			sym, ok := it.AtDot(g)
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}
			for ruleIdx, r := range g.Rules() {
				if r.NonTerminal != sym {
					continue
				}
				if set.add(grammar.Item{Rule: ruleIdx, Dot: 0}) {
					changed = true
				}
			}
		}
	}
	return set.order
}

// Goto computes Goto(items, symbol): advance the dot past symbol in every
// item of items that has symbol immediately after its dot, then close the
// result. Grounded on original_source/yacc.py's `get_goto` method.
func Goto(g *grammar.Grammar, items []grammar.Item, symbol string) []grammar.Item {
	var moved []grammar.Item
	for _, it := range items {
		sym, ok := it.AtDot(g)
		if ok && sym == symbol {
			moved = append(moved, it.Advance())
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return Closure(g, moved)
}

// Build constructs the canonical collection of LR(0) item sets for g, which
// must already be Compile'd (so rule 0 is the augmented $accept rule).
// Grounded on original_source/yacc.py's `items` method: start from the
// closure of the augmented start item, then repeatedly compute Goto for
// every state and every grammar symbol, adding any newly-discovered state,
// until a fixpoint is reached.
func Build(g *grammar.Grammar) *Collection {
	start := Closure(g, []grammar.Item{{Rule: 0, Dot: 0}})

	c := &Collection{}
	seen := map[string]int{}

	addState := func(items []grammar.Item) int {
		k := newItemSet()
		for _, it := range items {
			k.add(it)
		}
		key := k.key()
		if idx, ok := seen[key]; ok {
			return idx
		}
		idx := len(c.States)
		c.States = append(c.States, State{Index: idx, Items: items})
		c.transitions = append(c.transitions, map[string]int{})
		seen[key] = idx
		return idx
	}

	addState(start)

	symbols := allSymbols(g)

	for i := 0; i < len(c.States); i++ {
		for _, sym := range symbols {
			next := Goto(g, c.States[i].Items, sym)
			if len(next) == 0 {
				continue
			}
			j := addState(next)
			c.transitions[i][sym] = j
		}
	}

	return c
}

// allSymbols returns every grammar symbol (terminals then nonterminals) in
// a fixed order, so that repeated Build calls over the same grammar always
// discover states in the same order regardless of Go's map iteration.
func allSymbols(g *grammar.Grammar) []string {
	out := make([]string, 0, len(g.Terminals())+len(g.NonTerminals()))
	out = append(out, g.Terminals()...)
	out = append(out, g.NonTerminals()...)
	return out
}
