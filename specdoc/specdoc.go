// Package specdoc extracts fenced code blocks from a literate markdown
// design document, so a grammar and its token specification can be
// authored as ` ```tokens ` / ` ```grammar ` blocks inside a `.md` file
// that doubles as the document a reader reads to understand the
// language, rather than as a separate source file.
//
// Grounded on internal/ictiobus/fishi.go's GetFishiFromMarkdown: that
// function parses markdown with gomarkdown/markdown and walks the AST
// with a mkast.NodeVisitFunc-compatible renderer that only emits
// *ast.CodeBlock nodes tagged with one specific language ("fishi"),
// concatenating them into a single source blob. This package generalizes
// that one-language renderer into Extract, which buckets blocks by
// language tag instead of assuming there is only one kind of block to
// find — this module's spec documents have two independent kinds
// (tokens, grammar), not tunaq's one.
package specdoc

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mkast "github.com/gomarkdown/markdown/ast"
	mkparser "github.com/gomarkdown/markdown/parser"
)

// Blocks maps a fenced code block's language tag (the text after the
// opening ```) to the concatenation of every block tagged with it, in
// document order, separated by newlines.
type Blocks map[string]string

// Extract parses doc as markdown and returns every fenced code block,
// grouped by language tag. Language tags are matched case-insensitively
// and with surrounding whitespace trimmed, the same normalization
// GetFishiFromMarkdown applies before comparing against "fishi".
func Extract(doc []byte) Blocks {
	tree := markdown.Parse(doc, mkparser.New())
	blocks := Blocks{}

	var v blockVisitor
	v.blocks = blocks
	markdown.Render(tree, v)

	return blocks
}

// blockVisitor implements markdown.Renderer by discarding everything
// except fenced code blocks, which it files into blocks by language tag.
// Grounded on fishiScanner in internal/ictiobus/fishi.go, the same
// minimal three-method shape (RenderNode/RenderHeader/RenderFooter).
type blockVisitor struct {
	blocks Blocks
}

func (v blockVisitor) RenderNode(w io.Writer, node mkast.Node, entering bool) mkast.WalkStatus {
	if !entering {
		return mkast.GoToNext
	}
	code, ok := node.(*mkast.CodeBlock)
	if !ok || code == nil {
		return mkast.GoToNext
	}
	tag := strings.ToLower(strings.TrimSpace(string(code.Info)))
	if tag == "" {
		return mkast.GoToNext
	}
	if existing, ok := v.blocks[tag]; ok {
		v.blocks[tag] = existing + string(code.Literal)
	} else {
		v.blocks[tag] = string(code.Literal)
	}
	return mkast.GoToNext
}

func (v blockVisitor) RenderHeader(w io.Writer, node mkast.Node) {}
func (v blockVisitor) RenderFooter(w io.Writer, node mkast.Node) {}

// Tokens returns the "tokens" block, trimmed, or "" if none was found.
func (b Blocks) Tokens() string {
	return strings.TrimSpace(b["tokens"])
}

// Grammar returns the "grammar" block, trimmed, or "" if none was found.
func (b Blocks) Grammar() string {
	return strings.TrimSpace(b["grammar"])
}
