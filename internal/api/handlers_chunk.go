package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/docmodel"
	"github.com/dgallion1/docslice/internal/export"
	"github.com/dgallion1/docslice/internal/parser"
)

// chunkRequest is the JSON body for POST /api/chunk. Callers submit an
// already-parsed document as an ordered sequence of blocks.
type chunkRequest struct {
	DocID    string          `json:"doc_id"`
	Title    string          `json:"title"`
	Blocks   []blockRequest  `json:"blocks"`
	RawText  string          `json:"raw_text"`
	Strategy string          `json:"strategy"`
	Config   *configOverride `json:"config"`
}

type blockRequest struct {
	Type         string `json:"block_type"`
	Text         string `json:"text"`
	HeadingLevel int    `json:"heading_level"`
	PageNumber   int    `json:"page_number"`
	Sequence     int    `json:"sequence_index"`
}

type configOverride struct {
	MaxChunkSize      *int  `json:"max_chunk_size"`
	MinChunkSize      *int  `json:"min_chunk_size"`
	OverlapSize       *int  `json:"overlap_size"`
	PreserveStructure *bool `json:"preserve_structure"`
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req chunkRequest
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	blocks := make([]docmodel.Block, len(req.Blocks))
	for i, b := range req.Blocks {
		blocks[i] = docmodel.Block{
			Type:          docmodel.BlockType(b.Type),
			Text:          b.Text,
			HeadingLevel:  b.HeadingLevel,
			PageNumber:    b.PageNumber,
			SequenceIndex: b.Sequence,
		}
	}

	var doc *docmodel.Document
	if len(blocks) > 0 {
		var err error
		doc, err = docmodel.NewDocument(req.Title, blocks, req.RawText)
		if err != nil {
			jsonError(w, err.Error(), statusFor(err))
			return
		}
	}

	cfg := s.chunkConfig(req.Config)
	chunks, err := chunker.ChunkDocument(doc, cfg, chunker.Strategy(req.Strategy))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	docID := req.DocID
	if docID == "" {
		docID = contentHashHex([]byte(req.RawText + req.Title))[:16]
	}

	s.writeResult(w, export.Build(docID, req.Title, chunks))
}

func (s *Server) handleChunkFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename, parser.Options{FallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cfg := s.chunkConfig(nil)
	if v := r.FormValue("max_chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxChunkSize = n
		}
	}
	if v := r.FormValue("min_chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinChunkSize = n
		}
	}
	if v := r.FormValue("overlap_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OverlapSize = n
		}
	}
	if v := r.FormValue("preserve_structure"); v != "" {
		cfg.PreserveStructure = v == "true"
	}

	chunks, err := chunker.ChunkDocument(doc, cfg, chunker.Strategy(r.FormValue("strategy")))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = contentHashHex(data)[:16]
	}
	title := r.FormValue("title")
	if title == "" {
		title = doc.Title
	}

	s.writeResult(w, export.Build(docID, title, chunks))
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	exts := make([]string, 0, len(parser.SupportedExtensions))
	for ext := range parser.SupportedExtensions {
		exts = append(exts, ext)
	}
	strategies := []string{
		string(chunker.StrategyAuto),
		string(chunker.StrategyStructural),
		string(chunker.StrategyTableAware),
		string(chunker.StrategyPageAware),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"extensions": exts,
		"strategies": strategies,
	})
}

// chunkConfig builds a chunker config from server defaults plus optional
// per-request overrides.
func (s *Server) chunkConfig(o *configOverride) chunker.Config {
	cfg := chunker.Config{
		MaxChunkSize:      s.cfg.DefaultMaxChunkSize,
		MinChunkSize:      s.cfg.DefaultMinChunkSize,
		OverlapSize:       s.cfg.DefaultOverlapSize,
		PreserveStructure: s.cfg.DefaultPreserveStructure,
	}
	if o == nil {
		return cfg
	}
	if o.MaxChunkSize != nil {
		cfg.MaxChunkSize = *o.MaxChunkSize
	}
	if o.MinChunkSize != nil {
		cfg.MinChunkSize = *o.MinChunkSize
	}
	if o.OverlapSize != nil {
		cfg.OverlapSize = *o.OverlapSize
	}
	if o.PreserveStructure != nil {
		cfg.PreserveStructure = *o.PreserveStructure
	}
	return cfg
}

func (s *Server) writeResult(w http.ResponseWriter, res export.Result) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

// statusFor maps validation errors to 400 and everything else to 500.
func statusFor(err error) int {
	var cfgErr *chunker.ConfigError
	var stratErr *chunker.StrategyError
	var blockErr *docmodel.BlockError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &stratErr), errors.As(err, &blockErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func contentHashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
