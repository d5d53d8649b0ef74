package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Pipe tables become
// table blocks, image-only paragraphs become figure blocks, and everything
// else maps to heading/paragraph blocks in source order.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*docmodel.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	b := &docBuilder{}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.heading(extractText(node, src), node.Level, 0)

		case *east.Table:
			b.table(renderMarkdownTable(node, src), 0)

		case *ast.Paragraph:
			if img := soleImage(node, src); img != nil {
				b.figure(figureText(img, src), 0)
			} else {
				b.paragraph(extractText(node, src), 0)
			}

		default:
			b.paragraph(extractText(n, src), 0)
		}
	}

	title := strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")
	return b.build(title)
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}

	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	sep := ""
	if n.Type() == ast.TypeBlock {
		sep = "\n"
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, sep))
}

// renderMarkdownTable flattens a goldmark table node back into pipe rows
// with a header separator, the form the chunker's row-group splitting
// recognizes.
func renderMarkdownTable(tbl *east.Table, src []byte) string {
	var rows []string
	cols := 0

	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, extractText(cell, src))
		}
		if len(cells) == 0 {
			continue
		}

		rows = append(rows, pipeRow(cells))
		if _, isHeader := row.(*east.TableHeader); isHeader {
			cols = len(cells)
			rows = append(rows, pipeSeparator(cols))
		}
	}

	return strings.Join(rows, "\n")
}

// soleImage returns the paragraph's image when the paragraph holds nothing
// but that image (a standalone figure), nil otherwise.
func soleImage(p *ast.Paragraph, src []byte) *ast.Image {
	var img *ast.Image
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Image:
			if img != nil {
				return nil
			}
			img = node
		case *ast.Text:
			if strings.TrimSpace(string(node.Value(src))) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	return img
}

func figureText(img *ast.Image, src []byte) string {
	alt := extractText(img, src)
	return fmt.Sprintf("![%s](%s)", alt, string(img.Destination))
}
