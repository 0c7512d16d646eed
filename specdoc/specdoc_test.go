package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const doc = `# A tiny language

Tokens first.

` + "```tokens" + `
id = [A-Za-z]+
plus = \+
` + "```" + `

Then the grammar.

` + "```grammar" + `
E = E plus T | T
` + "```" + `

Some trailing prose that isn't a code block at all.
`

func Test_Extract_SeparatesBlocksByLanguageTag(t *testing.T) {
	assert := assert.New(t)
	blocks := Extract([]byte(doc))

	assert.Contains(blocks.Tokens(), "id = [A-Za-z]+")
	assert.Contains(blocks.Tokens(), "plus = \\+")
	assert.Contains(blocks.Grammar(), "E = E plus T | T")
}

func Test_Extract_NoMatchingBlocks_ReturnsEmpty(t *testing.T) {
	assert := assert.New(t)
	blocks := Extract([]byte("# Just prose\n\nNo code blocks here.\n"))
	assert.Empty(blocks.Tokens())
	assert.Empty(blocks.Grammar())
}

func Test_Extract_ConcatenatesMultipleBlocksWithSameTag(t *testing.T) {
	assert := assert.New(t)
	doc := "```tokens\none\n```\n\nmore text\n\n```tokens\ntwo\n```\n"
	blocks := Extract([]byte(doc))
	assert.Contains(blocks.Tokens(), "one")
	assert.Contains(blocks.Tokens(), "two")
}
