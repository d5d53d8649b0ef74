package chunker

import "github.com/dgallion1/docslice/internal/docmodel"

// pageAwareChunker keeps chunks within a single page when page metadata
// exists. Each per-page run goes through the structural walk, so size rules
// and table isolation hold inside pages too. A page's trailing undersized
// chunk merges into the following page's first chunk (or, on the last page,
// back into the chunk before it) instead of being emitted on its own.
//
// Callers must check Document.HasPageInfo first; the orchestrator substitutes
// the structural chunker and flags page_fallback when page data is absent.
type pageAwareChunker struct{}

func (pageAwareChunker) segment(doc *docmodel.Document, cfg Config) []*segment {
	var segs []*segment
	blocks := doc.Blocks
	currentSection := ""

	i := 0
	for i < len(blocks) {
		page := blocks[i].PageNumber
		j := i
		for j < len(blocks) && blocks[j].PageNumber == page {
			j++
		}

		preRunSection := currentSection
		for k := i; k < j; k++ {
			if blocks[k].Type == docmodel.BlockHeading {
				currentSection = blocks[k].Text
			}
		}

		pageSegs := structuralPass(blocks[i:j], cfg, preRunSection)
		segs = append(segs, pageSegs...)
		i = j
	}

	return mergeUndersized(segs, cfg)
}

// mergeUndersized folds text/section segments below MinChunkSize into a
// neighbor, preferring the following segment. Table and figure segments are
// never merge targets or sources.
func mergeUndersized(segs []*segment, cfg Config) []*segment {
	out := make([]*segment, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		if !mergeable(seg) || seg.tokens >= cfg.MinChunkSize {
			out = append(out, seg)
			continue
		}

		// Prefer merging forward into the next page's first chunk.
		if i+1 < len(segs) && mergeable(segs[i+1]) {
			next := segs[i+1]
			merged := newSegment()
			merged.ctype = seg.ctype
			merged.atHeading = seg.atHeading
			merged.sectionTitle = seg.sectionTitle
			merged.appendText(seg.text.String())
			merged.appendText(next.text.String())
			merged.pageMin, merged.pageMax = seg.pageMin, seg.pageMax
			merged.coverPage(next.pageMin)
			merged.coverPage(next.pageMax)
			segs[i+1] = merged
			continue
		}

		// Otherwise fold back into the previous text segment.
		if n := len(out); n > 0 && mergeable(out[n-1]) {
			prev := out[n-1]
			prev.appendText(seg.text.String())
			prev.coverPage(seg.pageMin)
			prev.coverPage(seg.pageMax)
			continue
		}

		out = append(out, seg)
	}
	return out
}

func mergeable(s *segment) bool {
	return s.ctype == docmodel.ChunkText || s.ctype == docmodel.ChunkSection
}
