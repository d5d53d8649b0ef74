package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docslice/internal/docmodel"
)

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	input := "# Title\n\nIntro paragraph.\n\n## Section\n\nBody text here."
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "readme.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(doc.Blocks))
	}

	want := []struct {
		typ   docmodel.BlockType
		text  string
		level int
	}{
		{docmodel.BlockHeading, "Title", 1},
		{docmodel.BlockParagraph, "Intro paragraph.", 0},
		{docmodel.BlockHeading, "Section", 2},
		{docmodel.BlockParagraph, "Body text here.", 0},
	}
	for i, w := range want {
		b := doc.Blocks[i]
		if b.Type != w.typ || b.Text != w.text || b.HeadingLevel != w.level {
			t.Errorf("block[%d] = {%s %q %d}, want {%s %q %d}",
				i, b.Type, b.Text, b.HeadingLevel, w.typ, w.text, w.level)
		}
	}
	if doc.MaxHeadingDepth != 2 {
		t.Errorf("MaxHeadingDepth = %d, want 2", doc.MaxHeadingDepth)
	}
}

func TestMarkdownParser_PipeTableBecomesTableBlock(t *testing.T) {
	input := "Before.\n\n| name | qty |\n| --- | --- |\n| apple | 3 |\n| pear | 5 |\n\nAfter."
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "inventory.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.TableCount != 1 {
		t.Fatalf("TableCount = %d, want 1", doc.TableCount)
	}
	var tbl *docmodel.Block
	for i := range doc.Blocks {
		if doc.Blocks[i].Type == docmodel.BlockTable {
			tbl = &doc.Blocks[i]
		}
	}
	if tbl == nil {
		t.Fatal("no table block produced")
	}

	lines := strings.Split(tbl.Text, "\n")
	if len(lines) != 4 {
		t.Fatalf("table rendered as %d rows, want 4 (header, separator, 2 data)", len(lines))
	}
	if lines[0] != "| name | qty |" {
		t.Errorf("header row = %q", lines[0])
	}
	if lines[1] != "| --- | --- |" {
		t.Errorf("separator row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "apple") || !strings.Contains(lines[3], "pear") {
		t.Errorf("data rows wrong: %q, %q", lines[2], lines[3])
	}
}

func TestMarkdownParser_StandaloneImageBecomesFigure(t *testing.T) {
	input := "Some text.\n\n![diagram of the system](arch.png)\n\nMore text."
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	fig := doc.Blocks[1]
	if fig.Type != docmodel.BlockFigure {
		t.Fatalf("middle block type = %q, want figure", fig.Type)
	}
	if fig.Text != "![diagram of the system](arch.png)" {
		t.Errorf("figure text = %q", fig.Text)
	}
}

func TestMarkdownParser_InlineImageStaysParagraph(t *testing.T) {
	input := "See ![icon](i.png) for details."
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Type != docmodel.BlockParagraph {
		t.Errorf("block type = %q, want paragraph for mixed text and image", doc.Blocks[0].Type)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks, got %d", len(doc.Blocks))
	}
}
