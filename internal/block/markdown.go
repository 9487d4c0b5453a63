package block

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. ATX heading
// levels map to StyleLevel; other top-level blocks become body text.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var blocks []TextBlock
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := NormalizeSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			level := node.Level
			if level > 3 {
				level = 0
			}
			blocks = append(blocks, TextBlock{
				Text:       title,
				Page:       1,
				StyleLevel: level,
			})
		default:
			t := NormalizeSpace(mdText(n, src))
			if t != "" {
				blocks = append(blocks, TextBlock{Text: t, Page: 1})
			}
		}
	}

	out := &Document{Name: filename}
	out.Pages = []Page{{Number: 1, Blocks: blocks}}
	return out, nil
}

// mdText gets the text content of a goldmark AST node.
func mdText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(mdText(c, src))
		}
	}
	return buf.String()
}
