package docmodel

// ChunkType identifies the kind of content a chunk holds.
type ChunkType string

const (
	ChunkText    ChunkType = "text"
	ChunkSection ChunkType = "section"
	ChunkTable   ChunkType = "table"
	ChunkFigure  ChunkType = "figure"
)

// Metadata keys stamped onto chunks. These are part of the output contract,
// so consumers can rely on the names.
const (
	MetaSectionTitle      = "section_title"
	MetaTableIndex        = "table_index"
	MetaTablePart         = "table_part"
	MetaIsOverlapExtended = "is_overlap_extended"
	MetaPageFallback      = "page_fallback"
	MetaStrategy          = "strategy"
)

// PageRange is the inclusive page span a chunk was drawn from.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Chunk is a bounded text segment ready for downstream AI consumption.
// Chunks are produced once per chunking call and never updated; reprocessing
// a document yields a fresh sequence.
type Chunk struct {
	ChunkID       string         `json:"chunk_id"`
	SequenceIndex int            `json:"sequence_index"`
	Content       string         `json:"content"`
	Type          ChunkType      `json:"chunk_type"`
	TokenCount    int            `json:"token_count"`
	Pages         *PageRange     `json:"source_page_range,omitempty"`
	Metadata      map[string]any `json:"metadata"`
}
