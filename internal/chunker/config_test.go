package chunker

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name      string
		cfg       Config
		wantField string // "" means valid
	}{
		{"defaults", DefaultConfig(), ""},
		{"min zero", Config{MaxChunkSize: 1000, MinChunkSize: 0}, "min_chunk_size"},
		{"min negative", Config{MaxChunkSize: 1000, MinChunkSize: -5}, "min_chunk_size"},
		{"max below min", Config{MaxChunkSize: 50, MinChunkSize: 100}, "max_chunk_size"},
		{"max equals min", Config{MaxChunkSize: 100, MinChunkSize: 100}, ""},
		{"overlap negative", Config{MaxChunkSize: 1000, MinChunkSize: 100, OverlapSize: -1}, "overlap_size"},
		{"overlap equals min", Config{MaxChunkSize: 1000, MinChunkSize: 100, OverlapSize: 100}, "overlap_size"},
		{"overlap just below min", Config{MaxChunkSize: 1000, MinChunkSize: 100, OverlapSize: 99}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, cfgErr.Field)
			}
		})
	}
}

func TestInvalidConfigProducesNoChunks(t *testing.T) {
	doc := mustDoc(t, []string{"some paragraph text"})
	cfg := Config{MaxChunkSize: 50, MinChunkSize: 100}

	chunks, err := ChunkDocument(doc, cfg, StrategyAuto)
	if err == nil {
		t.Fatal("expected error for max < min")
	}
	if chunks != nil {
		t.Errorf("expected no chunks alongside the error, got %d", len(chunks))
	}
}
