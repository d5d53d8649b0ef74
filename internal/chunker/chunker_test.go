package chunker

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/dgallion1/docslice/internal/docmodel"
)

func TestChunkDocument_EmptyDocumentYieldsEmptySequence(t *testing.T) {
	chunks, err := ChunkDocument(nil, DefaultConfig(), StrategyAuto)
	if err != nil {
		t.Fatalf("nil document: %v", err)
	}
	if chunks == nil || len(chunks) != 0 {
		t.Errorf("expected empty non-nil sequence, got %v", chunks)
	}

	doc, err := docmodel.NewDocument("empty", nil, "")
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	chunks, err = ChunkDocument(doc, DefaultConfig(), StrategyAuto)
	if err != nil {
		t.Fatalf("zero-block document: %v", err)
	}
	if chunks == nil || len(chunks) != 0 {
		t.Errorf("expected empty non-nil sequence, got %v", chunks)
	}
}

func TestChunkDocument_UnknownStrategyFails(t *testing.T) {
	doc := mustDoc(t, []string{tokText(150)})

	_, err := ChunkDocument(doc, DefaultConfig(), Strategy("semantic"))
	var stratErr *StrategyError
	if !errors.As(err, &stratErr) {
		t.Fatalf("expected *StrategyError, got %v", err)
	}
	if stratErr.Name != "semantic" {
		t.Errorf("error names %q, want %q", stratErr.Name, "semantic")
	}
}

func TestChunkDocument_Deterministic(t *testing.T) {
	blocks := []docmodel.Block{
		heading(0, 1, "Intro"),
		para(1, 1, tokText(200)),
		table(2, bigTable(5)),
		para(3, 2, tokText(300)),
	}
	blocks[2].PageNumber = 1
	doc := mustBlocks(t, blocks)
	cfg := Config{MaxChunkSize: 400, MinChunkSize: 100, OverlapSize: 30, PreserveStructure: true}

	a, err := ChunkDocument(doc, cfg, StrategyAuto)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := ChunkDocument(doc, cfg, StrategyAuto)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical input must produce identical output")
	}
}

func TestChunkDocument_ChunkIDsStableAndWellFormed(t *testing.T) {
	doc := mustDoc(t, []string{tokText(150), tokText(400)})
	cfg := Config{MaxChunkSize: 500, MinChunkSize: 100, PreserveStructure: true}

	idPattern := regexp.MustCompile(`^chunk_\d+_[0-9a-f]{8}$`)

	a, _ := ChunkDocument(doc, cfg, StrategyAuto)
	b, _ := ChunkDocument(doc, cfg, StrategyAuto)
	for i := range a {
		if !idPattern.MatchString(a[i].ChunkID) {
			t.Errorf("chunk %d: malformed ID %q", i, a[i].ChunkID)
		}
		if a[i].ChunkID != b[i].ChunkID {
			t.Errorf("chunk %d: ID changed between runs: %q vs %q", i, a[i].ChunkID, b[i].ChunkID)
		}
		if a[i].SequenceIndex != i {
			t.Errorf("chunk %d: sequence index %d", i, a[i].SequenceIndex)
		}
	}
}

func TestChunkDocument_PreservesBlockOrder(t *testing.T) {
	texts := []string{
		"alpha " + tokText(100),
		"bravo " + tokText(100),
		"charlie " + tokText(100),
		"delta " + tokText(100),
	}
	doc := mustDoc(t, texts)
	cfg := Config{MaxChunkSize: 150, MinChunkSize: 50, PreserveStructure: true}

	chunks, err := ChunkDocument(doc, cfg, StrategyStructural)
	if err != nil {
		t.Fatalf("ChunkDocument: %v", err)
	}

	var all strings.Builder
	for _, c := range chunks {
		all.WriteString(c.Content)
		all.WriteString("\n")
	}
	joined := all.String()
	last := -1
	for _, marker := range []string{"alpha", "bravo", "charlie", "delta"} {
		idx := strings.Index(joined, marker)
		if idx < 0 {
			t.Fatalf("marker %q missing from output", marker)
		}
		if idx <= last {
			t.Errorf("marker %q out of order", marker)
		}
		last = idx
	}
}

func TestChunkDocument_ContentReconstructable(t *testing.T) {
	// With overlap on, stripping each extended chunk's injected prefix must
	// recover exactly the original chunk contents.
	p1 := sentenceText(40)
	p2 := sentenceText(40)
	p3 := sentenceText(40)
	doc := mustDoc(t, []string{p1, p2, p3})
	cfg := Config{MaxChunkSize: 500, MinChunkSize: 100, OverlapSize: 25, PreserveStructure: true}

	chunks, err := ChunkDocument(doc, cfg, StrategyStructural)
	if err != nil {
		t.Fatalf("ChunkDocument: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	originals := []string{p1, p2, p3}
	for i, c := range chunks {
		content := c.Content
		if c.Metadata[docmodel.MetaIsOverlapExtended] == true {
			parts := strings.SplitN(content, "\n\n", 2)
			if len(parts) != 2 {
				t.Fatalf("chunk %d: extended chunk has no prefix separator", i)
			}
			content = parts[1]
		}
		if content != originals[i] {
			t.Errorf("chunk %d: stripped content does not match original", i)
		}
	}
}

func TestSelectStrategy(t *testing.T) {
	withTable := mustBlocks(t, []docmodel.Block{
		para(0, 1, tokText(100)),
		table(1, bigTable(2)),
	})
	withPages := mustBlocks(t, []docmodel.Block{
		para(0, 1, tokText(100)),
		para(1, 2, tokText(100)),
	})
	plain := mustDoc(t, []string{tokText(100)})

	if got := SelectStrategy(withTable); got != StrategyTableAware {
		t.Errorf("table doc: %q, want table_aware", got)
	}
	if got := SelectStrategy(withPages); got != StrategyPageAware {
		t.Errorf("paged doc: %q, want page_aware", got)
	}
	if got := SelectStrategy(plain); got != StrategyStructural {
		t.Errorf("plain doc: %q, want structural", got)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"", "auto", "structural", "table_aware", "page_aware"} {
		if _, err := ParseStrategy(name); err != nil {
			t.Errorf("ParseStrategy(%q): unexpected error %v", name, err)
		}
	}
	if _, err := ParseStrategy("recursive"); err == nil {
		t.Error("ParseStrategy should reject unknown names")
	}
}
