package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwyer/sly/grammar"
)

// Test_Compile_Deterministic checks spec.md §8's "Round-trip / idempotence"
// property for table construction: building the table from the same
// grammar twice produces identical state count and action/goto maps.
func Test_Compile_Deterministic(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)

	t1, w1, err := Compile(g)
	require.NoError(t, err)
	t2, w2, err := Compile(g)
	require.NoError(t, err)

	assert.Equal(len(w1), len(w2))
	assert.Equal(t1.NumStates(), t2.NumStates())
	for s := 0; s < t1.NumStates(); s++ {
		for _, term := range g.Terminals() {
			assert.Equal(t1.Action(s, term), t2.Action(s, term), "state %d term %q", s, term)
		}
		for _, nt := range g.NonTerminals() {
			next1, ok1 := t1.Goto(s, nt)
			next2, ok2 := t2.Goto(s, nt)
			assert.Equal(ok1, ok2)
			assert.Equal(next1, next2)
		}
	}
}

// Test_Compile_ShiftOnlyAtItemsWithTerminalAfterDot is spec.md §8
// invariant 4: for every terminal t with shift in ACTION[I][t], some item
// (i, j) in I has rhs[i][j] == t.
func Test_Compile_ShiftOnlyAtItemsWithTerminalAfterDot(t *testing.T) {
	g := arithmeticGrammar(t)
	table, _, err := Compile(g)
	require.NoError(t, err)

	coll := table.collection
	for _, state := range coll.States {
		for _, term := range g.Terminals() {
			act := table.Action(state.Index, term)
			if act.Kind != Shift {
				continue
			}
			found := false
			for _, it := range state.Items {
				if sym, ok := it.AtDot(g); ok && sym == term {
					found = true
					break
				}
			}
			require.True(t, found, "state %d shifts %q but has no item with %q after the dot", state.Index, term, term)
		}
	}
}

// Test_Compile_ReduceOnlyWhenTerminalInFollow is spec.md §8 invariant 3:
// for every terminal t with reduce(r) in ACTION[I][t], t is in
// FOLLOW(lhs_of(r)) and some item (r, |rhs_r|) is in I.
func Test_Compile_ReduceOnlyWhenTerminalInFollow(t *testing.T) {
	g := arithmeticGrammar(t)
	table, _, err := Compile(g)
	require.NoError(t, err)

	coll := table.collection
	for _, state := range coll.States {
		for _, term := range g.Terminals() {
			act := table.Action(state.Index, term)
			if act.Kind != Reduce {
				continue
			}
			rule := g.Rule(act.Rule)
			require.True(t, g.FollowSet(rule.NonTerminal).Has(term),
				"state %d reduces rule %d on %q, but %q is not in FOLLOW(%s)", state.Index, act.Rule, term, term, rule.NonTerminal)

			found := false
			for _, it := range state.Items {
				if it.Rule == act.Rule && it.Complete(g) {
					found = true
					break
				}
			}
			require.True(t, found, "state %d reduces rule %d but has no completed item for it", state.Index, act.Rule)
		}
	}
}

func Test_ExpectedTerminals_OnlyListsDefinedActions(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)
	table, _, err := Compile(g)
	require.NoError(t, err)

	expected := table.ExpectedTerminals(0)
	assert.NotEmpty(expected)
	for _, human := range expected {
		found := false
		for _, term := range g.Terminals() {
			if g.Human(term) == human {
				found = true
				break
			}
		}
		assert.True(found, "unexpected terminal name %q", human)
	}
}

func Test_Action_IsNone_OnUndefinedCell(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)
	table, _, err := Compile(g)
	require.NoError(t, err)

	// State 0 has no reduce/shift/accept action on ")" — nothing starts a
	// production with a bare close-paren.
	act := table.Action(0, ")")
	assert.True(act.IsNone())
}

func Test_Table_String_DoesNotPanic(t *testing.T) {
	g := arithmeticGrammar(t)
	table, _, err := Compile(g)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		_ = table.String()
	})
}

func Test_Compile_AcceptAction_OnAugmentedRuleAtEnd(t *testing.T) {
	g := grammar.NewGrammar("S")
	_, err := g.AddRule("S", []string{"a"}, nil)
	require.NoError(t, err)
	require.NoError(t, g.Compile())

	table, _, err := Compile(g)
	require.NoError(t, err)

	// state 0 --a--> (reduce S->a on $end) --goto S--> ($accept -> S . complete: accept on $end).
	afterA, ok := table.collection.Goto(0, "a")
	require.True(t, ok)
	require.Equal(t, Reduce, table.Action(afterA, grammar.End).Kind)

	afterS, ok := table.collection.Goto(0, "S")
	require.True(t, ok)
	require.Equal(t, Accept, table.Action(afterS, grammar.End).Kind)
}
