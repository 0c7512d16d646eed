package automaton

import (
	"testing"

	"github.com/dwyer/sly/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.NewGrammar("E")
	g.AddRule("E", []string{"E", "+", "T"}, nil)
	g.AddRule("E", []string{"T"}, nil)
	g.AddRule("T", []string{"T", "*", "F"}, nil)
	g.AddRule("T", []string{"F"}, nil)
	g.AddRule("F", []string{"(", "E", ")"}, nil)
	g.AddRule("F", []string{"id"}, nil)
	require.NoError(t, g.Compile())
	return g
}

func Test_Build_StateZero_IsAugmentedClosure(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)
	c := Build(g)

	require.NotEmpty(t, c.States)
	s0 := c.States[0]
	// state 0 must contain the augmented start item itself.
	assert.Contains(s0.Items, grammar.Item{Rule: 0, Dot: 0})
	// ...and, by closure, the initial items of E's own productions, such as
	// E -> . E + T (the augmented item $accept -> . E is not counted here).
	foundE := false
	for _, it := range s0.Items {
		if sym, ok := it.AtDot(g); ok && sym == "E" && it.Dot == 0 && it.Rule != 0 {
			foundE = true
		}
	}
	assert.True(foundE)
}

func Test_Build_Deterministic(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)
	c1 := Build(g)
	c2 := Build(g)

	assert.Equal(len(c1.States), len(c2.States))
	for i := range c1.States {
		assert.ElementsMatch(c1.States[i].Items, c2.States[i].Items)
	}
}

func Test_Goto_ShiftOnTerminal(t *testing.T) {
	assert := assert.New(t)
	g := arithmeticGrammar(t)
	c := Build(g)

	// From state 0, shifting "id" must land in a state whose items are all
	// complete on F -> id . (a reduce-ready state).
	idState, ok := c.Goto(0, "id")
	assert.True(ok)
	items := c.States[idState].Items
	assert.Len(items, 1)
	assert.True(items[0].Complete(g))
}

func Test_Closure_NoSpuriousItems_OnTerminalGrammar(t *testing.T) {
	assert := assert.New(t)
	g := grammar.NewGrammar("S")
	g.AddRule("S", []string{"a"}, nil)
	require.NoError(t, g.Compile())

	items := Closure(g, []grammar.Item{{Rule: 0, Dot: 0}})
	// The augmented item $accept -> . S, plus the one item its closure adds
	// for S's production; the symbol after that dot is the terminal a, so
	// nothing further is added.
	assert.Len(items, 2) // $accept -> . S, and S -> . a
}

func Test_LeftRecursive_Closure_Terminates(t *testing.T) {
	assert := assert.New(t)
	g := grammar.NewGrammar("A")
	g.AddRule("A", []string{"A", "a"}, nil)
	g.AddRule("A", []string{"a"}, nil)
	require.NoError(t, g.Compile())

	c := Build(g)
	assert.NotEmpty(c.States)
}
