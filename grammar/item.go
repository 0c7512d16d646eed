package grammar

import "fmt"

// Item is an LR(0) item: a rule together with a dot position marking how
// much of the production has been matched so far. Adapted from the
// teacher's grammar/item.go LR0Item (which stores the nonterminal and split
// left/right symbol slices directly) into the simpler (rule index, dot)
// pair original_source/yacc.py's `LRItem` class uses, since the Grammar
// already owns the rule table and can look up a rule by index in O(1).
type Item struct {
	Rule int
	Dot  int
}

// AtDot returns the symbol immediately after the dot, and true, or ("",
// false) if the dot is at the end of the production (the item is complete).
func (it Item) AtDot(g *Grammar) (string, bool) {
	prod := g.Rule(it.Rule).Production
	if it.Dot >= len(prod) {
		return "", false
	}
	return prod[it.Dot], true
}

// Advance returns the item with the dot moved one symbol to the right.
// Callers must check AtDot first; Advance does not bounds-check.
func (it Item) Advance() Item {
	return Item{Rule: it.Rule, Dot: it.Dot + 1}
}

// Complete reports whether the dot has reached the end of the production,
// i.e. this item represents a candidate reduction.
func (it Item) Complete(g *Grammar) bool {
	return it.Dot >= len(g.Rule(it.Rule).Production)
}

// String renders the item in the conventional "A -> α . β" form, used for
// the item listing in the parse package's shift/reduce conflict warnings.
func (it Item) String(g *Grammar) string {
	r := g.Rule(it.Rule)
	out := r.NonTerminal + " ->"
	for i, sym := range r.Production {
		if i == it.Dot {
			out += " ."
		}
		out += " " + sym
	}
	if it.Dot == len(r.Production) {
		out += " ."
	}
	return out
}

// Key returns a comparable string uniquely identifying this item, used as a
// map key when building item sets (Go structs of only comparable fields are
// already map-keyable, but Key gives automaton a stable string form from
// which it builds an item set's key when deduplicating states, without
// reaching into Grammar).
func (it Item) Key() string {
	return fmt.Sprintf("%d.%d", it.Rule, it.Dot)
}
