// Package lex compiles an ordered list of (pattern, action) token
// specifications into a lexer function, resolves `{name}` regex aliases,
// and defines the Scanner value the lexer and a parser driver share.
//
// The matching algorithm is first-match-by-declaration-order, anchored at
// the start of the remaining input, with no longest-match scan — grounded
// directly on original_source/lex.py's `generate(tokens)`. See spec.md
// §4.2.
package lex

import (
	"fmt"
	"regexp"

	"github.com/dwyer/sly/lrerrors"
)

// Spec pairs a regular expression with the Action to take when it matches.
// Patterns are tried in slice order; the first to match wins (spec.md §4.2
// step 1).
type Spec struct {
	Pattern string
	Action  Action
}

type compiledSpec struct {
	re     *regexp.Regexp
	action Action
}

// LexFunc is a compiled lexer: given a Scanner, it consumes zero or more
// lexemes (restarting transparently past any that produce no token) and
// returns the next token, or "" when the Scanner's remaining input is
// exhausted.
type LexFunc func(*Scanner) (Token, error)

// Generate compiles specs into a LexFunc. Each pattern is anchored so that
// it only matches at the start of the remaining input, matching `re.match`
// semantics in the Python original (as opposed to `re.search`, which would
// scan forward for a match anywhere).
//
// aliases, if non-nil, is expanded with ExpandAliases once up front and
// applied to every pattern before it is compiled, so specs may reference
// `{name}` macros.
func Generate(specs []Spec, aliases map[string]string) (LexFunc, error) {
	var expandedAliases map[string]string
	if len(aliases) > 0 {
		var err error
		expandedAliases, err = ExpandAliases(aliases)
		if err != nil {
			return nil, lrerrors.NewConfigError("alias expansion", err)
		}
	}

	compiled := make([]compiledSpec, len(specs))
	for i, spec := range specs {
		pattern := spec.Pattern
		if expandedAliases != nil {
			var err error
			pattern, err = ExpandPattern(pattern, expandedAliases)
			if err != nil {
				return nil, lrerrors.NewConfigError("alias expansion", err)
			}
		}

		// Anchor at the start: Go's regexp has no separate "match at
		// position 0 only" call the way Python's re.match does, so the
		// anchor is baked into the pattern itself.
		re, err := regexp.Compile(`\A(?:` + pattern + `)`)
		if err != nil {
			return nil, lrerrors.NewConfigError("pattern compilation", fmt.Errorf("%q: %w", spec.Pattern, err))
		}
		compiled[i] = compiledSpec{re: re, action: spec.Action}
	}

	return func(s *Scanner) (Token, error) {
		for s.In != "" {
			matched := false
			for _, cs := range compiled {
				loc := cs.re.FindStringIndex(s.In)
				if loc == nil {
					continue
				}
				matched = true

				text := s.In[:loc[1]]
				s.SetText(text)
				s.Advance(loc[1])

				tok, err := cs.action.apply(s)
				if err != nil {
					return "", err
				}
				if tok != "" {
					return tok, nil
				}
				// token is "": skip this lexeme (whitespace/comments) and
				// restart the outer loop at the new s.In.
				break
			}
			if !matched {
				return "", lrerrors.NewLexError(s.Line, s.Column, s.In)
			}
		}
		// s.In is empty: end of input. The caller (parser driver) maps
		// this to the reserved $end terminal.
		return "", nil
	}, nil
}
