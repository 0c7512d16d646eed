package lrerrors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConfigError_UnwrapsToCause(t *testing.T) {
	assert := assert.New(t)
	cause := errors.New("boom")
	err := NewConfigError("table construction", cause)

	assert.ErrorIs(err, cause)
	assert.Contains(err.Error(), "table construction")
	assert.Contains(err.Error(), "boom")
}

func Test_LexError_TruncatesLongRemaining(t *testing.T) {
	assert := assert.New(t)
	remaining := strings.Repeat("x", lexErrorPreviewLen+10)
	err := NewLexError(3, 7, remaining)

	assert.True(strings.HasSuffix(err.Remaining, "..."))
	assert.LessOrEqual(len(err.Remaining), lexErrorPreviewLen+3)
	assert.Contains(err.Error(), "3:7")
}

func Test_LexError_EscapesNewlines(t *testing.T) {
	assert := assert.New(t)
	err := NewLexError(1, 1, "a\nb")
	assert.Equal(`a\nb`, err.Remaining)
}

func Test_SyntaxError_NoExpected_OmitsParenthetical(t *testing.T) {
	assert := assert.New(t)
	err := NewSyntaxError(2, 5, "+", nil)
	assert.Equal(`syntax error at 2:5: unexpected "+"`, err.Error())
}

func Test_SyntaxError_WithExpected_ListsThem(t *testing.T) {
	assert := assert.New(t)
	err := NewSyntaxError(2, 5, "+", []string{"id", "("})
	assert.Contains(err.Error(), "expected id and (")
}

func Test_ReduceError_WrapsRecoveredPanic(t *testing.T) {
	assert := assert.New(t)
	err := NewReduceError(4, "index out of range")
	assert.Equal(4, err.Rule)
	assert.Contains(err.Error(), "rule 4")
	assert.Contains(err.Error(), "index out of range")
}
