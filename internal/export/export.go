// Package export serializes chunk sequences for downstream consumers. The
// chunk field names are part of the output contract and must not drift.
package export

import (
	"encoding/json"
	"io"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// Result is the envelope around one document's chunk sequence.
type Result struct {
	DocID        string           `json:"doc_id,omitempty"`
	Title        string           `json:"title,omitempty"`
	Strategy     string           `json:"strategy,omitempty"`
	PageFallback bool             `json:"page_fallback,omitempty"`
	ChunkCount   int              `json:"chunk_count"`
	TotalTokens  int              `json:"total_tokens"`
	Chunks       []docmodel.Chunk `json:"chunks"`
}

// Build assembles a Result, reading the effective strategy and fallback flag
// from the metadata every chunk carries.
func Build(docID, title string, chunks []docmodel.Chunk) Result {
	res := Result{
		DocID:      docID,
		Title:      title,
		ChunkCount: len(chunks),
		Chunks:     chunks,
	}
	if res.Chunks == nil {
		res.Chunks = []docmodel.Chunk{}
	}
	for _, c := range chunks {
		res.TotalTokens += c.TokenCount
	}
	if len(chunks) > 0 {
		if s, ok := chunks[0].Metadata[docmodel.MetaStrategy].(string); ok {
			res.Strategy = s
		}
		if fb, ok := chunks[0].Metadata[docmodel.MetaPageFallback].(bool); ok {
			res.PageFallback = fb
		}
	}
	return res
}

// WriteJSON writes the result as indented JSON, for file export.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Marshal returns the compact JSON form, for API responses.
func Marshal(res Result) ([]byte, error) {
	return json.Marshal(res)
}
