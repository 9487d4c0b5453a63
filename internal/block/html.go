package block

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. h1-h3 elements become blocks with
// StyleLevel set; paragraph-like elements become body blocks. HTML has
// no page geometry, so everything lands on page 1.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks []TextBlock
	appendBlock := func(text string, level int) {
		text = NormalizeSpace(text)
		if text == "" {
			return
		}
		blocks = append(blocks, TextBlock{
			Text:       text,
			Page:       1,
			StyleLevel: level,
		})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := htmlHeadingLevel(n.Data); level > 0 {
				if level <= 3 {
					appendBlock(htmlTextContent(n), level)
				} else {
					appendBlock(htmlTextContent(n), 0)
				}
				return // text already extracted
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header", "title":
				return
			case "p", "li", "td", "blockquote", "pre":
				appendBlock(htmlTextContent(n), 0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	out := &Document{Name: filename}
	out.Pages = []Page{{Number: 1, Blocks: blocks}}
	return out, nil
}

func htmlHeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func htmlTextContent(n *html.Node) string {
	var buf []byte
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf = append(buf, n.Data...)
			buf = append(buf, ' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return string(buf)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
