package chunker

import "github.com/dgallion1/docslice/internal/docmodel"

// structuralChunker segments the whole document with the hierarchy-respecting
// buffer walk. The same walk is reused by the table-aware chunker (for prose
// runs between tables) and the page-aware chunker (within each page).
type structuralChunker struct{}

func (structuralChunker) segment(doc *docmodel.Document, cfg Config) []*segment {
	return structuralPass(doc.Blocks, cfg, "")
}

// structuralPass walks blocks in order, accumulating a buffer and tracking
// the most recent heading as the current section. Closing rules, in order:
//   - a block that alone exceeds MaxChunkSize becomes its own chunk
//     unmodified (hard-splitting inside a block is out of scope);
//   - a heading closes the open buffer when the buffer already meets
//     MinChunkSize, so breaks land before headings rather than after;
//   - otherwise the buffer closes when the next block would push it past
//     MaxChunkSize and it already meets MinChunkSize. Below MinChunkSize the
//     block is force-appended: oversized-but-rare beats undersized.
//
// Table and figure blocks never enter the buffer; they are emitted as
// isolated segments so tabular content cannot blend with narrative text no
// matter which strategy invoked the pass.
// initialSection seeds the current-section title so callers segmenting a
// sub-range (a prose run between tables, a single page) keep the heading
// context established earlier in the document.
func structuralPass(blocks []docmodel.Block, cfg Config, initialSection string) []*segment {
	var segs []*segment
	buf := newSegment()
	currentSection := initialSection

	flush := func() {
		if !buf.empty() {
			segs = append(segs, buf)
		}
		buf = newSegment()
	}

	for _, b := range blocks {
		switch b.Type {
		case docmodel.BlockTable, docmodel.BlockFigure:
			flush()
			seg := newSegment()
			if b.Type == docmodel.BlockTable {
				seg.ctype = docmodel.ChunkTable
			} else {
				seg.ctype = docmodel.ChunkFigure
			}
			seg.sectionTitle = currentSection
			seg.append(b)
			seg.oversized = seg.tokens > cfg.MaxChunkSize
			segs = append(segs, seg)
			continue

		case docmodel.BlockHeading:
			if cfg.PreserveStructure && buf.tokens >= cfg.MinChunkSize {
				flush()
			}
			currentSection = b.Text
			if buf.empty() {
				buf.sectionTitle = b.Text
				if cfg.PreserveStructure {
					buf.atHeading = true
					buf.ctype = docmodel.ChunkSection
				}
			}
			buf.append(b)
			continue
		}

		// Paragraph.
		if EstimateTokens(b.Text) > cfg.MaxChunkSize {
			flush()
			seg := newSegment()
			seg.sectionTitle = currentSection
			seg.append(b)
			seg.oversized = true
			segs = append(segs, seg)
			continue
		}

		switch {
		case buf.empty():
			buf.sectionTitle = currentSection
			buf.append(b)
		case buf.tokensWith(b.Text) <= cfg.MaxChunkSize:
			buf.append(b)
		case buf.tokens >= cfg.MinChunkSize:
			flush()
			buf.sectionTitle = currentSection
			buf.append(b)
		default:
			// Buffer still below minimum: exceed the max rather than emit
			// an undersized chunk.
			buf.append(b)
		}
	}

	flush()
	return segs
}
