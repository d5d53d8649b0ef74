package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*docmodel.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docslice-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := &docBuilder{}

	for _, item := range doc.Document.Body.Items {
		switch node := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(node)
			if text == "" {
				continue
			}
			if level := docxHeadingLevel(node); level > 0 {
				b.heading(text, level, 0)
			} else {
				b.paragraph(text, 0)
			}

		case *docx.Table:
			if text := docxTableText(node); text != "" {
				b.table(text, 0)
			}
		}
	}

	return b.build(strings.TrimSuffix(filename, ".docx"))
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	switch {
	case strings.EqualFold(style, "Heading1") || strings.EqualFold(style, "heading 1"):
		return 1
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return 2
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return 3
	case strings.EqualFold(style, "Heading4") || strings.EqualFold(style, "heading 4"):
		return 4
	case strings.EqualFold(style, "Heading5") || strings.EqualFold(style, "heading 5"):
		return 5
	case strings.EqualFold(style, "Heading6") || strings.EqualFold(style, "heading 6"):
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// docxTableText flattens a docx table into pipe rows. The first row is
// assumed to be the header, matching how word processors build tables.
func docxTableText(tbl *docx.Table) string {
	var rows []string
	for _, tr := range tbl.TableRows {
		var cells []string
		for _, tc := range tr.TableCells {
			var cell strings.Builder
			for _, para := range tc.Paragraphs {
				if t := docxParagraphText(para); t != "" {
					if cell.Len() > 0 {
						cell.WriteString(" ")
					}
					cell.WriteString(t)
				}
			}
			cells = append(cells, cell.String())
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, pipeRow(cells))
		if len(rows) == 1 {
			rows = append(rows, pipeSeparator(len(cells)))
		}
	}
	return strings.Join(rows, "\n")
}
