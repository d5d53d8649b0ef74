package chunker

import (
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// segment is a raw chunk-to-be: accumulated block text plus the context the
// orchestrator needs to assemble the final chunk record.
type segment struct {
	text         strings.Builder
	ctype        docmodel.ChunkType
	sectionTitle string
	atHeading    bool // segment began at a heading block
	pageMin      int  // 0 when no contributing block had a page number
	pageMax      int
	tokens       int
	oversized    bool // a single block alone exceeded MaxChunkSize
	tableIndex   int  // table ordinal within the document, -1 when not a table
	tablePart    int  // part index for split tables, -1 when unsplit
}

func newSegment() *segment {
	return &segment{ctype: docmodel.ChunkText, tableIndex: -1, tablePart: -1}
}

// append adds a block's text to the segment, separated by a blank line, and
// widens the page span.
func (s *segment) append(b docmodel.Block) {
	s.appendText(b.Text)
	s.coverPage(b.PageNumber)
}

// appendText adds raw text without page tracking.
func (s *segment) appendText(text string) {
	if s.text.Len() > 0 {
		s.text.WriteString("\n\n")
	}
	s.text.WriteString(text)
	s.tokens = EstimateTokens(s.text.String())
}

func (s *segment) coverPage(page int) {
	if page <= 0 {
		return
	}
	if s.pageMin == 0 || page < s.pageMin {
		s.pageMin = page
	}
	if page > s.pageMax {
		s.pageMax = page
	}
}

func (s *segment) empty() bool {
	return s.text.Len() == 0
}

// pages returns the page span, or nil when no contributing block carried one.
func (s *segment) pages() *docmodel.PageRange {
	if s.pageMin == 0 {
		return nil
	}
	return &docmodel.PageRange{Start: s.pageMin, End: s.pageMax}
}

// tokensWith reports the segment's estimated size if text were appended.
func (s *segment) tokensWith(text string) int {
	if s.text.Len() == 0 {
		return EstimateTokens(text)
	}
	return EstimateTokens(s.text.String() + "\n\n" + text)
}
