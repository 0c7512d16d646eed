package lex

// Scanner is the mutable object shared between a generated lexer and a
// parser driver, per spec.md §4.5/§6. There is no separate "Lexer" object
// and no "Parser" object duck-typing around each other the way the original
// Python does it (`yy` is just `self`, the Parser instance); this module
// factors that shared object out into its own named type, with the field
// names spec.md §6 specifies.
type Scanner struct {
	// In is the remaining, unconsumed input.
	In string

	// Text is the most recently matched lexeme. Setting it (via SetText)
	// is the single point where Line/Column advance, since that is driven
	// by walking the *previous* value of Text one rune at a time.
	Text string

	// Leng is len(Text), kept in sync by SetText.
	Leng int

	// Lval is the current semantic value, set by a callable Action and
	// read by the parser driver when it shifts.
	Lval any

	// Line and Column are 1-based. Column resets to 1 after a newline.
	Line, Column int
}

// NewScanner returns a Scanner positioned at the start of input, with Line
// and Column at their 1-based initial values.
func NewScanner(input string) *Scanner {
	return &Scanner{In: input, Line: 1, Column: 1}
}

// SetText records text as the most recently matched lexeme. Before
// overwriting Text, it walks the *outgoing* (previous) value of Text one
// rune at a time, advancing Line/Column for each character of it: a newline
// resets Column to 1 and increments Line, anything else increments Column.
//
// This one-lexeme lag is deliberate and matches yacc.py's `set_text`
// exactly (it walks `self._text`, the value being replaced, not the
// incoming one) — per spec.md §4.5: "for each character in the previous
// text... this advances position by one lexeme at a time, which is why the
// update is driven by the setter." The position reported alongside a token
// therefore reflects everything matched strictly before that token, not
// including it; SyntaxError reporting relies on this: it reads Line/Column
// after the offending token's lexeme has been set as Text, which gives the
// position where that lexeme starts.
func (s *Scanner) SetText(text string) {
	for _, c := range s.Text {
		if c == '\n' {
			s.Line++
			s.Column = 1
		} else {
			s.Column++
		}
	}
	s.Text = text
	s.Leng = len(text)
}

// Advance consumes n bytes from the front of In. It is called after a match
// with the length of the matched text.
func (s *Scanner) Advance(n int) {
	s.In = s.In[n:]
}
