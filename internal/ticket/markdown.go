package ticket

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// plainText extracts the first level-one heading as the title and the
// remaining prose as plain text. Code blocks and raw HTML are dropped.
func plainText(src []byte) (string, string) {
	reader := text.NewReader(src)
	doc := markdown.Parser().Parse(reader)

	var (
		title string
		body  bytes.Buffer
	)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && body.Len() > 0 && !bytes.HasSuffix(body.Bytes(), []byte("\n")) {
				body.WriteByte('\n')
			}

			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = inlineText(node, src)

				return ast.WalkSkipChildren, nil
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			body.Write(node.Segment.Value(src))

			if node.SoftLineBreak() || node.HardLineBreak() {
				body.WriteByte('\n')
			}
		case *ast.String:
			body.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(title), strings.TrimSpace(body.String())
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(src))
		case *ast.String:
			buf.Write(c.Value)
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}
