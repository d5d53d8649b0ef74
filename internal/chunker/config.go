package chunker

// Config controls chunking behavior. All sizes are in estimated tokens
// (see EstimateTokens). A Config is validated once and never mutated.
type Config struct {
	MaxChunkSize      int  // Upper token bound per chunk (soft: a single oversized block may exceed it).
	MinChunkSize      int  // Lower token bound before a chunk may be closed.
	OverlapSize       int  // Trailing tokens duplicated into the next chunk. 0 disables overlap.
	PreserveStructure bool // Honor heading boundaries and sentence-safe overlap slicing.
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize:      1000,
		MinChunkSize:      100,
		OverlapSize:       0,
		PreserveStructure: true,
	}
}

// Validate checks the invariants between the size bounds. A violation is a
// caller error, reported as *ConfigError.
func (c Config) Validate() error {
	if c.MinChunkSize <= 0 {
		return &ConfigError{Field: "min_chunk_size", Reason: "must be greater than zero"}
	}
	if c.MaxChunkSize < c.MinChunkSize {
		return &ConfigError{Field: "max_chunk_size", Reason: "must be at least min_chunk_size"}
	}
	if c.OverlapSize < 0 {
		return &ConfigError{Field: "overlap_size", Reason: "must not be negative"}
	}
	if c.OverlapSize >= c.MinChunkSize {
		return &ConfigError{Field: "overlap_size", Reason: "must be less than min_chunk_size"}
	}
	return nil
}
