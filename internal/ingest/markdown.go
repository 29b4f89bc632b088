package ingest

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// flattenMarkdown reduces markdown to plain text, one block per paragraph,
// so the chunker sees the same paragraph structure a plain-text document
// would have. Formatting is dropped; heading and list text is kept.
func flattenMarkdown(source []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		var buf bytes.Buffer
		collectText(node, source, &buf)
		if block := strings.TrimSpace(buf.String()); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func collectText(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return
	case *ast.AutoLink:
		buf.Write(n.URL(source))
		return
	}

	// Code blocks have no child nodes; their content lives in raw segments.
	if node.Type() == ast.TypeBlock && node.FirstChild() == nil {
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		return
	}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		collectText(child, source, buf)
	}
}
