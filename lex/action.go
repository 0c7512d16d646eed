package lex

// Action is what a Spec pairs with a pattern: either a callable that
// inspects/mutates the Scanner and returns a token (or "" to skip), or a
// static token value assigned whenever the pattern matches. This is the
// "action is either a callable... or a static token value" contract from
// spec.md §4.2, and the struct-with-a-kind-tag shape follows the teacher's
// lex/action.go (`Action{Type ActionType, ClassID string, ...}`), trimmed
// to the two kinds spec.md actually describes (no lexer-state transitions —
// this module's lexer, like the original it's grounded on, has none).
type Action struct {
	kind actionKind
	fn   func(*Scanner) (Token, error)
	tok  Token
}

type actionKind int

const (
	actionSkip actionKind = iota
	actionStatic
	actionFunc
)

// Emit returns an Action that, on match, sets Scanner.Lval to the matched
// lexeme and reports tok as the token. This is spec.md §4.2 step 3's "else
// if action is a non-null static value" branch.
func Emit(tok Token) Action {
	return Action{kind: actionStatic, tok: tok}
}

// Skip returns an Action that discards the match and causes the lexer to
// restart at the next lexeme — the standard whitespace/comment trick
// (spec.md §4.2 step 4).
func Skip() Action {
	return Action{kind: actionSkip}
}

// Call returns an Action that invokes fn on match. fn may mutate
// scanner.Lval and returns either a token to emit or "" to skip (spec.md
// §4.2 step 3's callable branch).
func Call(fn func(scanner *Scanner) (Token, error)) Action {
	return Action{kind: actionFunc, fn: fn}
}

func (a Action) apply(s *Scanner) (Token, error) {
	switch a.kind {
	case actionStatic:
		s.Lval = s.Text
		return a.tok, nil
	case actionFunc:
		return a.fn(s)
	default:
		return "", nil
	}
}
