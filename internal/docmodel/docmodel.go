// Package docmodel defines the normalized view of extracted document content
// that the chunker consumes, and the chunk records it produces. A Document is
// built once from the extraction engine's output and treated as read-only
// from then on.
package docmodel

import "fmt"

// BlockType identifies the kind of content a block holds. The set is closed:
// ingestion rejects anything else.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockTable     BlockType = "table"
	BlockFigure    BlockType = "figure"
)

// Valid reports whether bt is one of the recognized block types.
func (bt BlockType) Valid() bool {
	switch bt {
	case BlockParagraph, BlockHeading, BlockTable, BlockFigure:
		return true
	}
	return false
}

// Block is one content block in document reading order, as produced by the
// extraction engine.
type Block struct {
	Type          BlockType `json:"block_type"`
	Text          string    `json:"text"`
	HeadingLevel  int       `json:"heading_level,omitempty"` // 1-6 for headings, 0 otherwise
	PageNumber    int       `json:"page_number,omitempty"`   // 1-based, 0 if unknown
	SequenceIndex int       `json:"sequence_index"`
}

// Document is an ordered block sequence plus derived signals. Build it with
// NewDocument; do not modify it afterwards.
type Document struct {
	Title   string
	Blocks  []Block
	RawText string

	// Derived signals, computed once at construction.
	HasPageInfo     bool // true only when every block carries a page number
	TableCount      int
	MaxHeadingDepth int
	TotalCharCount  int
}

// BlockError reports a malformed block. The whole ingestion fails on the
// first one found; no partial document is returned.
type BlockError struct {
	SequenceIndex int
	Reason        string
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %s", e.SequenceIndex, e.Reason)
}

// NewDocument validates blocks and computes the derived signals. rawText is
// the extraction engine's concatenated text; when empty it is derived from
// the blocks.
func NewDocument(title string, blocks []Block, rawText string) (*Document, error) {
	doc := &Document{
		Title:       title,
		Blocks:      blocks,
		RawText:     rawText,
		HasPageInfo: len(blocks) > 0,
	}

	prevSeq := -1
	for _, b := range blocks {
		if !b.Type.Valid() {
			return nil, &BlockError{SequenceIndex: b.SequenceIndex, Reason: fmt.Sprintf("unknown block type %q", b.Type)}
		}
		if b.Text == "" {
			return nil, &BlockError{SequenceIndex: b.SequenceIndex, Reason: "missing text"}
		}
		if b.SequenceIndex <= prevSeq {
			return nil, &BlockError{SequenceIndex: b.SequenceIndex, Reason: fmt.Sprintf("sequence index not increasing (previous %d)", prevSeq)}
		}
		prevSeq = b.SequenceIndex
		if b.PageNumber < 0 {
			return nil, &BlockError{SequenceIndex: b.SequenceIndex, Reason: fmt.Sprintf("negative page number %d", b.PageNumber)}
		}
		if b.HeadingLevel < 0 || b.HeadingLevel > 6 {
			return nil, &BlockError{SequenceIndex: b.SequenceIndex, Reason: fmt.Sprintf("heading level %d out of range", b.HeadingLevel)}
		}

		if b.PageNumber == 0 {
			doc.HasPageInfo = false
		}
		if b.Type == BlockTable {
			doc.TableCount++
		}
		if b.Type == BlockHeading && b.HeadingLevel > doc.MaxHeadingDepth {
			doc.MaxHeadingDepth = b.HeadingLevel
		}
		doc.TotalCharCount += len(b.Text)
	}

	if doc.RawText == "" {
		doc.RawText = joinBlockText(blocks)
	}

	return doc, nil
}

func joinBlockText(blocks []Block) string {
	var out string
	for i, b := range blocks {
		if i > 0 {
			out += "\n\n"
		}
		out += b.Text
	}
	return out
}
