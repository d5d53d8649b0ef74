// Package chunker converts a document's ordered content blocks into bounded,
// AI-consumable chunks. Segmentation balances size bounds, structural
// fidelity, table/figure isolation, and page continuity; everything is a
// pure function over its arguments, so identical inputs always produce
// byte-identical output and the package is safe to call concurrently across
// independent documents.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// ChunkDocument segments doc according to cfg and the requested strategy
// (StrategyAuto or "" selects one from document signals). It validates cfg,
// runs the chosen segmenter, applies overlap when configured, and assigns
// final sequence indices and stable chunk IDs. Neither doc nor cfg is
// mutated; a zero-block document yields an empty sequence, not an error.
func ChunkDocument(doc *docmodel.Document, cfg Config, override Strategy) ([]docmodel.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if doc == nil || len(doc.Blocks) == 0 {
		return []docmodel.Chunk{}, nil
	}

	strat, fellBack, err := Resolve(doc, override)
	if err != nil {
		return nil, err
	}

	segs := segmenterFor(strat).segment(doc, cfg)

	chunks := make([]docmodel.Chunk, 0, len(segs))
	for i, seg := range segs {
		meta := map[string]any{
			docmodel.MetaStrategy: string(strat),
		}
		if seg.sectionTitle != "" {
			meta[docmodel.MetaSectionTitle] = seg.sectionTitle
		}
		if seg.tableIndex >= 0 {
			meta[docmodel.MetaTableIndex] = seg.tableIndex
		}
		if seg.tablePart >= 0 {
			meta[docmodel.MetaTablePart] = seg.tablePart
		}
		if fellBack {
			meta[docmodel.MetaPageFallback] = true
		}

		content := seg.text.String()
		chunks = append(chunks, docmodel.Chunk{
			SequenceIndex: i,
			Content:       content,
			Type:          seg.ctype,
			TokenCount:    EstimateTokens(content),
			Pages:         seg.pages(),
			Metadata:      meta,
		})
	}

	if cfg.OverlapSize > 0 {
		applyOverlap(chunks, cfg)
	}

	// IDs come last so they hash the final content, overlap included.
	for i := range chunks {
		chunks[i].ChunkID = chunkID(i, chunks[i].Content)
	}

	return chunks, nil
}

// chunkID derives a stable identifier from the chunk's position and a short
// content hash, so reprocessing the same document reproduces the same IDs.
func chunkID(index int, content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("chunk_%d_%s", index, hex.EncodeToString(sum[:4]))
}
