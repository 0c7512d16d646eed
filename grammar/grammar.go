// Package grammar models a context-free grammar the way spec.md §3-4.3
// describes: an ordered list of rules, a designated start symbol, and the
// FIRST/FOLLOW sets and augmentation the table builder needs.
//
// Grounded on original_source/yacc.py's Parser constructor and its
// `nonterminals`/`terminals`/`first`/`follow` properties (the algorithm),
// and on the teacher's grammar/grammar_test.go builder-method API shape
// (`AddRule`, `Validate`) — adapted to eager, explicit construction per
// spec.md §9's re-architecture note against `hasattr`-guarded
// memoization ("two construction passes suffice").
package grammar

import (
	"fmt"

	"github.com/dwyer/sly/internal/util"
	"github.com/dwyer/sly/lrerrors"
)

// Reserved symbol names. A grammar must not define any of these as a
// nonterminal (spec.md §6).
const (
	Accept = "$accept"
	End    = "$end"
	Empty  = "%empty"
)

// Reducer computes the semantic value of a nonterminal from the ordered
// sequence of semantic values of its production's right-hand-side symbols.
// A nil Reducer is the default described in spec.md §9 decision 4: it
// returns values[0] if len(values) >= 1, else nil.
type Reducer func(values []any) any

// Rule is one grammar production: NonTerminal -> Production, with an
// optional Reducer invoked when the parser driver reduces by this rule.
// Production may be empty (an epsilon production).
type Rule struct {
	NonTerminal string
	Production  []string
	Reducer     Reducer
}

// Grammar is a compiled, augmented context-free grammar: rules, symbol
// classification, and FIRST/FOLLOW sets. Build one with NewGrammar and
// AddRule (or the FromRules/FromGroupedRules convenience constructors),
// then call Compile once before handing it to automaton/parse.
type Grammar struct {
	start string
	rules []Rule

	compiled     bool
	nonTerminals *util.StringSet
	terminals    *util.StringSet
	human        map[string]string
	first        map[string]*util.StringSet
	follow       map[string]*util.StringSet
}

// NewGrammar returns an empty Grammar with the given start symbol. Rules are
// added with AddRule; call Compile when done.
func NewGrammar(start string) *Grammar {
	return &Grammar{
		start:        start,
		nonTerminals: util.NewStringSet(),
		human:        map[string]string{},
	}
}

// AddRule adds a production NonTerminal -> production to the grammar and
// returns its rule index in the compiled grammar (the index parse.Action
// uses to name the rule being reduced). Compile places the synthetic
// $accept rule at index 0, so the rules added here are numbered from 1. It
// is an error to call AddRule after Compile.
func (g *Grammar) AddRule(nonTerminal string, production []string, reducer Reducer) (int, error) {
	if g.compiled {
		return 0, fmt.Errorf("grammar: cannot add rules after Compile")
	}
	if isReserved(nonTerminal) {
		return 0, lrerrors.NewConfigError("grammar", fmt.Errorf("%q is a reserved symbol and cannot be used as a nonterminal", nonTerminal))
	}
	g.nonTerminals.Add(nonTerminal)
	idx := len(g.rules) + 1
	prod := make([]string, len(production))
	copy(prod, production)
	g.rules = append(g.rules, Rule{NonTerminal: nonTerminal, Production: prod, Reducer: reducer})
	return idx, nil
}

func isReserved(sym string) bool {
	return sym == Accept || sym == End || sym == Empty
}

// Describe registers a human-readable name for symbol, used in syntax-error
// messages (spec.md §7's "expected terminals" reporting). If none is
// registered, the symbol's own name is used.
func (g *Grammar) Describe(symbol, human string) {
	g.human[symbol] = human
}

// Human returns the human-readable name for symbol, defaulting to symbol
// itself.
func (g *Grammar) Human(symbol string) string {
	if h, ok := g.human[symbol]; ok {
		return h
	}
	return symbol
}

// Alt is one alternative production for a nonterminal: used by
// FromGroupedRules to express "a mapping of nonterminal to list of (rhs,
// reducer)" (spec.md §4.3's second accepted input shape) as an ordered,
// deterministic slice rather than a Go map (whose iteration order is not
// stable, which would break spec.md §4.3's determinism invariant on rule
// indices).
type Alt struct {
	Production []string
	Reducer    Reducer
}

// NonTerminalRules groups every alternative production for one nonterminal.
type NonTerminalRules struct {
	NonTerminal string
	Alts        []Alt
}

// FromRules builds a Grammar from an ordered list of rules, the "ordered
// list of (nt, rhs, reducer) triples" shape from spec.md §4.3. If start is
// "", the first rule's nonterminal is used, matching
// original_source/yacc.py's `self.start = start or grammar[0][0]` fallback.
func FromRules(rules []Rule, start string) (*Grammar, error) {
	if start == "" && len(rules) > 0 {
		start = rules[0].NonTerminal
	}
	g := NewGrammar(start)
	for _, r := range rules {
		if _, err := g.AddRule(r.NonTerminal, r.Production, r.Reducer); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromGroupedRules builds a Grammar from the "mapping of nonterminal to list
// of (rhs, reducer)" shape from spec.md §4.3, expressed as an ordered slice
// of groups rather than a Go map. If start is "", the first group's
// nonterminal is used.
func FromGroupedRules(groups []NonTerminalRules, start string) (*Grammar, error) {
	if start == "" && len(groups) > 0 {
		start = groups[0].NonTerminal
	}
	g := NewGrammar(start)
	for _, group := range groups {
		for _, alt := range group.Alts {
			if _, err := g.AddRule(group.NonTerminal, alt.Production, alt.Reducer); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// StartSymbol returns the grammar's (un-augmented) start nonterminal.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// Rules returns every rule, including the synthetic $accept rule at index 0
// once Compile has run.
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// Rule returns the rule at index i.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// NonTerminals returns every nonterminal, in first-declared order,
// including the synthetic $accept once Compile has run.
func (g *Grammar) NonTerminals() []string {
	return g.nonTerminals.Elements()
}

// Terminals returns every terminal, in first-appearance order, including
// $end once Compile has run.
func (g *Grammar) Terminals() []string {
	return g.terminals.Elements()
}

// IsNonTerminal reports whether sym is one of the grammar's nonterminals.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonTerminals.Has(sym)
}

// IsTerminal reports whether sym is a terminal: anything that isn't a
// nonterminal, per spec.md §3.
func (g *Grammar) IsTerminal(sym string) bool {
	return !g.IsNonTerminal(sym)
}

// Compile validates the grammar, augments it with the synthetic $accept ->
// start rule (spec.md §9 open question 1, resolved in favor of leaving
// $end out of the augmented production itself: the accept action is
// installed on the completed $accept -> start . item at lookahead $end,
// rather than requiring the driver to shift a synthetic $end token before
// accepting — the latter form would leave $end's scanner value, not
// start's reduced value, on top of vsp when Parse returns), classifies
// symbols, and computes FIRST/FOLLOW. It is idempotent: calling it twice
// is a no-op the second time.
func (g *Grammar) Compile() error {
	if g.compiled {
		return nil
	}
	if err := g.validate(); err != nil {
		return err
	}
	g.augment()
	g.classifySymbols()
	g.computeFirst()
	// A grammar with no terminal to ever shift can still accept input if
	// its start symbol derives the empty string (spec.md §8: "Empty input
	// parses iff the start symbol derives ε"); it is only unmatchable when
	// it has neither a terminal nor an epsilon derivation, e.g. S -> S.
	if g.terminals.Len() <= 1 && !g.first[g.start].Has(Empty) {
		return fmt.Errorf("grammar: no terminals and start symbol cannot derive the empty string; nothing this grammar defines can ever match input")
	}
	g.computeFollow()
	g.compiled = true
	return nil
}

func (g *Grammar) validate() error {
	if g.start == "" {
		return fmt.Errorf("grammar: no start symbol")
	}
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar: no rules")
	}
	hasStartRule := false
	for _, r := range g.rules {
		if r.NonTerminal == g.start {
			hasStartRule = true
			break
		}
	}
	if !hasStartRule {
		return fmt.Errorf("grammar: start symbol %q has no rules", g.start)
	}
	return nil
}

func (g *Grammar) augment() {
	accept := Rule{NonTerminal: Accept, Production: []string{g.start}}
	g.rules = append([]Rule{accept}, g.rules...)
	g.nonTerminals.Add(Accept)
}

func (g *Grammar) classifySymbols() {
	g.terminals = util.NewStringSet()
	for _, r := range g.rules {
		for _, sym := range r.Production {
			if !g.nonTerminals.Has(sym) {
				g.terminals.Add(sym)
			}
		}
	}
	g.terminals.Add(End)
}

// computeFirst computes FIRST(X) for every symbol X by fixpoint iteration
// over rule prefixes (spec.md §4.3 step 4), not the recursive
// partial-memoization original_source/yacc.py uses: that recursive approach
// can return an incomplete set for some left-recursive or mutually-recursive
// grammars depending on rule declaration order, which spec.md §8 requires
// this module to handle correctly and unconditionally (the boundary case "A
// -> A a | a must terminate... and parse correctly").
func (g *Grammar) computeFirst() {
	first := make(map[string]*util.StringSet, g.nonTerminals.Len()+g.terminals.Len())
	for _, t := range g.terminals.Elements() {
		first[t] = util.StringSetOf(t)
	}
	for _, nt := range g.nonTerminals.Elements() {
		first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			target := first[r.NonTerminal]
			if len(r.Production) == 0 {
				if addTo(target, Empty) {
					changed = true
				}
				continue
			}

			allNullable := true
			for _, sym := range r.Production {
				symFirst := first[sym]
				for _, f := range symFirst.Elements() {
					if f == Empty {
						continue
					}
					if addTo(target, f) {
						changed = true
					}
				}
				if !symFirst.Has(Empty) {
					allNullable = false
					break
				}
			}
			if allNullable {
				if addTo(target, Empty) {
					changed = true
				}
			}
		}
	}
	g.first = first
}

// computeFollow computes FOLLOW(X) for every nonterminal X by fixpoint
// iteration (spec.md §4.3 step 5), including the propagation case spec.md
// §9 open question 2 says a correct SLR(1) construction requires: for a
// rule A -> αB with B a trailing nonterminal, FOLLOW(B) ⊇ FOLLOW(A). A
// single combined fixpoint over "first-of-the-rest, or FOLLOW(lhs) if the
// rest is nullable" naturally covers both the direct case and the
// propagation case, and needs no separate second pass.
func (g *Grammar) computeFollow() {
	follow := make(map[string]*util.StringSet, g.nonTerminals.Len())
	for _, nt := range g.nonTerminals.Elements() {
		follow[nt] = util.NewStringSet()
	}
	follow[Accept].Add(End)

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			prod := r.Production
			for i, sym := range prod {
				if !g.nonTerminals.Has(sym) {
					continue
				}
				target := follow[sym]
				rest := prod[i+1:]

				restNullable := true
				for _, rsym := range rest {
					rf := g.first[rsym]
					for _, f := range rf.Elements() {
						if f == Empty {
							continue
						}
						if addTo(target, f) {
							changed = true
						}
					}
					if !rf.Has(Empty) {
						restNullable = false
						break
					}
				}
				if restNullable {
					for _, f := range follow[r.NonTerminal].Elements() {
						if addTo(target, f) {
							changed = true
						}
					}
				}
			}
		}
	}
	g.follow = follow
}

func addTo(s *util.StringSet, v string) (added bool) {
	if s.Has(v) {
		return false
	}
	s.Add(v)
	return true
}

// First returns FIRST(sym) as terminal names, plus Empty if sym can derive
// the empty string. Valid only after Compile.
func (g *Grammar) First(sym string) []string {
	if set, ok := g.first[sym]; ok {
		return set.Elements()
	}
	return []string{sym}
}

// Follow returns FOLLOW(sym) as terminal names. Valid only after Compile and
// only meaningful for nonterminals.
func (g *Grammar) Follow(sym string) []string {
	if set, ok := g.follow[sym]; ok {
		return set.Elements()
	}
	return nil
}

// FollowSet returns the underlying FOLLOW(sym) set, for callers (the parse
// package's ACTION-table builder) that need Has lookups without paying for a
// slice copy on every reduce candidate.
func (g *Grammar) FollowSet(sym string) *util.StringSet {
	return g.follow[sym]
}
