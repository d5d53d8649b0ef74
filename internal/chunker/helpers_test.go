package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// tokText returns text whose estimated size is exactly n tokens.
func tokText(n int) string {
	return strings.Repeat("abcd", n)
}

// mustDoc builds a document of paragraph blocks, one per text.
func mustDoc(t *testing.T, texts []string) *docmodel.Document {
	t.Helper()
	blocks := make([]docmodel.Block, len(texts))
	for i, text := range texts {
		blocks[i] = docmodel.Block{Type: docmodel.BlockParagraph, Text: text, SequenceIndex: i}
	}
	return mustBlocks(t, blocks)
}

// mustBlocks builds a document from explicit blocks, failing the test on a
// validation error.
func mustBlocks(t *testing.T, blocks []docmodel.Block) *docmodel.Document {
	t.Helper()
	doc, err := docmodel.NewDocument("test", blocks, "")
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func para(seq, page int, text string) docmodel.Block {
	return docmodel.Block{Type: docmodel.BlockParagraph, Text: text, PageNumber: page, SequenceIndex: seq}
}

func heading(seq, level int, text string) docmodel.Block {
	return docmodel.Block{Type: docmodel.BlockHeading, Text: text, HeadingLevel: level, SequenceIndex: seq}
}

func table(seq int, text string) docmodel.Block {
	return docmodel.Block{Type: docmodel.BlockTable, Text: text, SequenceIndex: seq}
}
