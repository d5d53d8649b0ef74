package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults, used when a request does not override them.
	DefaultMaxChunkSize      int
	DefaultMinChunkSize      int
	DefaultOverlapSize       int
	DefaultPreserveStructure bool

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCSLICE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMaxChunkSize:      envInt("DEFAULT_MAX_CHUNK_SIZE", 1000),
		DefaultMinChunkSize:      envInt("DEFAULT_MIN_CHUNK_SIZE", 100),
		DefaultOverlapSize:       envInt("DEFAULT_OVERLAP_SIZE", 0),
		DefaultPreserveStructure: envBool("DEFAULT_PRESERVE_STRUCTURE", true),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultMaxChunkSize <= 0 {
		cfg.DefaultMaxChunkSize = 1000
	}
	if cfg.DefaultMinChunkSize <= 0 {
		cfg.DefaultMinChunkSize = 100
	}
	if cfg.DefaultOverlapSize < 0 {
		cfg.DefaultOverlapSize = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCSLICE_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
