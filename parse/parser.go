package parse

import (
	"fmt"

	"github.com/dwyer/sly/grammar"
	"github.com/dwyer/sly/lex"
	"github.com/dwyer/sly/lrerrors"
)

// Parser drives the shift-reduce loop over a compiled Table. One Parser
// owns one grammar and one table; both are immutable once built
// (spec.md §5 "Lifecycle": "Tables are computed once on construction and
// are immutable thereafter"). A single Parser is not reentrant — Parse
// mutates the Scanner passed to it and must not be called again, from a
// reducer or otherwise, until it returns (spec.md §5 "Reentrancy").
type Parser struct {
	gram  *grammar.Grammar
	table *Table
	trace func(string)
}

// NewParser returns a Parser for the given grammar and its compiled table.
// g must be the same grammar (or a grammar with an identical rule
// numbering) that table was built from.
func NewParser(g *grammar.Grammar, table *Table) *Parser {
	return &Parser{gram: g, table: table}
}

// Table returns the parser's compiled ACTION/GOTO table.
func (p *Parser) Table() *Table {
	return p.table
}

// OnTrace registers fn to be called with one line of diagnostic text per
// stack push/pop and per ACTION consulted during Parse, following the
// teacher's RegisterTraceListener/notifyTrace idiom (parse/lr.go). A nil
// fn (the default) disables tracing entirely — there is no separate
// verbosity level to toggle, the callback itself is the toggle.
func (p *Parser) OnTrace(fn func(string)) {
	p.trace = fn
}

func (p *Parser) notifyf(format string, args ...any) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Parse runs the classic shift-reduce driver loop (spec.md §4.4) over
// scanner, pulling tokens from lx. It returns the semantic value the start
// rule's reduction chain produced, or the first lrerrors.LexError or
// lrerrors.SyntaxError encountered.
//
// Grounded on original_source/yacc.py's `parse` method: ssp/vsp as two
// parallel slices (state stack, value stack), one lexer call to pre-charge
// the first token and one more after every shift (never after a reduce),
// and — the one defensive addition spec.md §9 decision 4/SPEC_FULL.md §9
// call for beyond the Python original — a recovered reducer panic reported
// as a *lrerrors.ReduceError rather than propagated as a bare runtime
// panic.
func (p *Parser) Parse(scanner *lex.Scanner, lx lex.LexFunc) (any, error) {
	ssp := []int{0}
	vsp := []any{nil}

	token, err := lx(scanner)
	if err != nil {
		return nil, err
	}
	p.notifyf("next token: %q", tokenOrEnd(token))

	for {
		term := tokenOrEnd(token)
		state := ssp[len(ssp)-1]
		p.notifyf("state.peek(): %d", state)

		action := p.table.Action(state, term)
		p.notifyf("action: %s", action)

		switch action.Kind {
		case Shift:
			ssp = append(ssp, action.To)
			vsp = append(vsp, scanner.Lval)
			p.notifyf("state.push(): %d", action.To)

			token, err = lx(scanner)
			if err != nil {
				return nil, err
			}
			p.notifyf("next token: %q", tokenOrEnd(token))

		case Reduce:
			rule := p.gram.Rule(action.Rule)
			n := len(rule.Production)

			args := make([]any, n)
			copy(args, vsp[len(vsp)-n:])

			result, err := p.reduce(action.Rule, rule, args)
			if err != nil {
				return nil, err
			}

			ssp = ssp[:len(ssp)-n]
			vsp = vsp[:len(vsp)-n]
			for i := 0; i < n; i++ {
				p.notifyf("state.pop()")
			}

			top := ssp[len(ssp)-1]
			next, ok := p.table.Goto(top, rule.NonTerminal)
			if !ok {
				return nil, lrerrors.NewSyntaxError(scanner.Line, scanner.Column, scanner.Text, p.table.ExpectedTerminals(top))
			}
			ssp = append(ssp, next)
			vsp = append(vsp, result)
			p.notifyf("state.push(): %d", next)

		case Accept:
			return vsp[len(vsp)-1], nil

		default:
			return nil, lrerrors.NewSyntaxError(scanner.Line, scanner.Column, scanner.Text, p.table.ExpectedTerminals(state))
		}
	}
}

// reduce invokes rule's reducer over args, or applies the default reducer
// (spec.md §9 decision 4: first value if n >= 1, else nil) if none is set.
// A panic inside a user reducer is recovered and reported as a
// *lrerrors.ReduceError rather than crashing the parse.
func (p *Parser) reduce(ruleIdx int, rule grammar.Rule, args []any) (result any, err error) {
	if rule.Reducer == nil {
		if len(args) >= 1 {
			return args[0], nil
		}
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = lrerrors.NewReduceError(ruleIdx, r)
		}
	}()
	return rule.Reducer(args), nil
}

func tokenOrEnd(token lex.Token) string {
	if token == "" {
		return grammar.End
	}
	return token
}
