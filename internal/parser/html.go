package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Heading tags become heading blocks, <table>
// elements become table blocks, <img> elements become figure blocks, and
// text-bearing elements become paragraph blocks.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*docmodel.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm")
	if t := findTitle(doc); t != "" {
		title = t
	}

	b := &docBuilder{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				b.heading(textContent(n), level, 0)
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				b.table(renderHTMLTable(n), 0)
				return
			case "img":
				b.figure(imageText(n), 0)
				return
			case "p", "li", "blockquote", "pre":
				b.paragraph(textContent(n), 0)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return b.build(title)
}

func headingLevel(tag string) int {
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

// renderHTMLTable flattens a <table> into pipe rows. A leading row made of
// <th> cells is treated as the header and followed by a separator row.
func renderHTMLTable(table *html.Node) string {
	var rows []string

	var collectRows func(*html.Node)
	collectRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			allHeader := true
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, textContent(c))
					if c.Data != "th" {
						allHeader = false
					}
				}
			}
			if len(cells) == 0 {
				return
			}
			rows = append(rows, pipeRow(cells))
			if allHeader && len(rows) == 1 {
				rows = append(rows, pipeSeparator(len(cells)))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectRows(c)
		}
	}
	collectRows(table)

	return strings.Join(rows, "\n")
}

// imageText renders an <img> as figure content, preferring alt text.
func imageText(img *html.Node) string {
	var alt, src string
	for _, attr := range img.Attr {
		switch attr.Key {
		case "alt":
			alt = attr.Val
		case "src":
			src = attr.Val
		}
	}
	if alt != "" {
		return fmt.Sprintf("![%s](%s)", alt, src)
	}
	if src != "" {
		return fmt.Sprintf("![](%s)", src)
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
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
