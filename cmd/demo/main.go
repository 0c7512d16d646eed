/*
Demo builds and runs the spec.md §8 scenario S1 arithmetic grammar end to
end: alias-expanded token patterns, a grammar.Grammar for

	E -> E '+' T | T
	T -> T '*' F | F
	F -> '(' E ')' | 'id'

compiled to a parse.Table, parsed by a parse.Parser whose reducers build a
nested []any tree — the same shape spec.md §8 S1 names as the expected
result of parsing "id + id * id": ['+', 'id', ['*', 'id', 'id']].

Usage:

	demo [-dump-table] [EXPRESSION]

EXPRESSION defaults to "id + id * id".

	-dump-table
		Print the compiled ACTION/GOTO table before parsing.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dwyer/sly/grammar"
	"github.com/dwyer/sly/lex"
	"github.com/dwyer/sly/parse"
)

func buildLexer() (lex.LexFunc, error) {
	aliases := map[string]string{
		"digit": `[0-9]`,
		"alpha": `[A-Za-z_]`,
		"ident": `{alpha}({alpha}|{digit})*`,
	}

	specs := []lex.Spec{
		{Pattern: `[ \t\n]+`, Action: lex.Skip()},
		{Pattern: `\+`, Action: lex.Emit("+")},
		{Pattern: `\*`, Action: lex.Emit("*")},
		{Pattern: `\(`, Action: lex.Emit("(")},
		{Pattern: `\)`, Action: lex.Emit(")")},
		{Pattern: `{ident}`, Action: lex.Emit("id")},
	}

	return lex.Generate(specs, aliases)
}

func buildGrammar() (*grammar.Grammar, error) {
	g := grammar.NewGrammar("E")

	if _, err := g.AddRule("E", []string{"E", "+", "T"}, func(v []any) any {
		return []any{"+", v[0], v[2]}
	}); err != nil {
		return nil, err
	}
	if _, err := g.AddRule("E", []string{"T"}, nil); err != nil {
		return nil, err
	}
	if _, err := g.AddRule("T", []string{"T", "*", "F"}, func(v []any) any {
		return []any{"*", v[0], v[2]}
	}); err != nil {
		return nil, err
	}
	if _, err := g.AddRule("T", []string{"F"}, nil); err != nil {
		return nil, err
	}
	if _, err := g.AddRule("F", []string{"(", "E", ")"}, func(v []any) any {
		return v[1]
	}); err != nil {
		return nil, err
	}
	if _, err := g.AddRule("F", []string{"id"}, nil); err != nil {
		return nil, err
	}

	if err := g.Compile(); err != nil {
		return nil, err
	}
	return g, nil
}

func main() {
	dumpTable := flag.Bool("dump-table", false, "print the compiled ACTION/GOTO table before parsing")
	flag.Parse()

	input := "id + id * id"
	if flag.NArg() > 0 {
		input = flag.Arg(0)
	}

	g, err := buildGrammar()
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: building grammar:", err)
		os.Exit(1)
	}

	table, warnings, err := parse.Compile(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: compiling table:", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "demo: warning:", w)
	}

	if *dumpTable {
		fmt.Println(table.String())
	}

	lx, err := buildLexer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: building lexer:", err)
		os.Exit(1)
	}

	scanner := lex.NewScanner(input)
	parser := parse.NewParser(g, table)

	value, err := parser.Parse(scanner, lx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: parse error:", err)
		os.Exit(1)
	}

	fmt.Printf("%#v\n", value)
}
