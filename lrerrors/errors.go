// Package lrerrors defines the three error kinds raised by this module:
// configuration errors (construction time), lex errors, and parse errors
// (both run time). See spec.md §7.
package lrerrors

import (
	"fmt"
	"strings"

	"github.com/dwyer/sly/internal/util"
)

// ConfigError is returned when a grammar or token specification is malformed
// in a way that can be detected without running the lexer or parser: an
// unknown alias reference, a regex that fails to compile, a grammar that
// defines a reserved symbol, or a reduce/reduce conflict.
type ConfigError struct {
	// Stage names the construction step that failed, e.g. "alias
	// expansion" or "table construction".
	Stage string

	Err error
}

func NewConfigError(stage string, err error) *ConfigError {
	return &ConfigError{Stage: stage, Err: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LexError is returned when no token pattern matches the remaining input at
// a non-empty position.
type LexError struct {
	Line, Column int

	// Remaining is the unconsumed input at the point of failure, truncated
	// for readability.
	Remaining string
}

const lexErrorPreviewLen = 40

func NewLexError(line, column int, remaining string) *LexError {
	preview := remaining
	if len(preview) > lexErrorPreviewLen {
		preview = preview[:lexErrorPreviewLen] + "..."
	}
	preview = strings.ReplaceAll(preview, "\n", "\\n")
	return &LexError{Line: line, Column: column, Remaining: preview}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: no pattern matches %q", e.Line, e.Column, e.Remaining)
}

// SyntaxError is returned when the parser driver finds no ACTION entry for
// the current (state, token) pair.
type SyntaxError struct {
	Line, Column int
	Lexeme       string

	// Expected lists the human-readable names of terminals that would have
	// been accepted in this state. The parser driver always fills it in;
	// it may be nil.
	Expected []string
}

func NewSyntaxError(line, column int, lexeme string, expected []string) *SyntaxError {
	return &SyntaxError{Line: line, Column: column, Lexeme: lexeme, Expected: expected}
}

func (e *SyntaxError) Error() string {
	base := fmt.Sprintf("syntax error at %d:%d: unexpected %q", e.Line, e.Column, e.Lexeme)
	if len(e.Expected) == 0 {
		return base
	}
	return fmt.Sprintf("%s (expected %s)", base, util.MakeTextList(e.Expected))
}

// ReduceError wraps a panic recovered from a user-supplied reducer during a
// reduce action, attaching the rule index that was being reduced. This is the
// one defensive boundary-crossing check this module adds beyond the
// original: a bad reducer aborts the parse as a reported error rather than
// propagating a bare runtime panic.
type ReduceError struct {
	Rule      int
	Recovered any
}

func NewReduceError(rule int, recovered any) *ReduceError {
	return &ReduceError{Rule: rule, Recovered: recovered}
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("reducer for rule %d panicked: %v", e.Rule, e.Recovered)
}
