package parser

import (
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// docBuilder accumulates blocks in reading order, assigning sequence indices
// and collecting the raw concatenated text as it goes. All parsers funnel
// through it so the validation in docmodel.NewDocument applies uniformly.
type docBuilder struct {
	blocks []docmodel.Block
	raw    strings.Builder
	seq    int
}

func (b *docBuilder) add(t docmodel.BlockType, text string, level, page int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.blocks = append(b.blocks, docmodel.Block{
		Type:          t,
		Text:          text,
		HeadingLevel:  level,
		PageNumber:    page,
		SequenceIndex: b.seq,
	})
	b.seq++
	if b.raw.Len() > 0 {
		b.raw.WriteString("\n\n")
	}
	b.raw.WriteString(text)
}

func (b *docBuilder) paragraph(text string, page int) {
	b.add(docmodel.BlockParagraph, text, 0, page)
}

func (b *docBuilder) heading(text string, level, page int) {
	b.add(docmodel.BlockHeading, text, level, page)
}

func (b *docBuilder) table(text string, page int) {
	b.add(docmodel.BlockTable, text, 0, page)
}

func (b *docBuilder) figure(text string, page int) {
	b.add(docmodel.BlockFigure, text, 0, page)
}

func (b *docBuilder) build(title string) (*docmodel.Document, error) {
	return docmodel.NewDocument(title, b.blocks, b.raw.String())
}

// pipeRow renders table cells as a markdown-style pipe row.
func pipeRow(cells []string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSpace(c))
		sb.WriteString(" |")
	}
	return sb.String()
}

// pipeSeparator renders the markdown header separator for n columns. Table
// blocks emit it after their header row so downstream row-group splitting
// can identify the header syntactically.
func pipeSeparator(n int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i := 0; i < n; i++ {
		sb.WriteString(" --- |")
	}
	return sb.String()
}
