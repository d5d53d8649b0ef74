package chunker

import (
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// tableAwareChunker guarantees tabular and figure content never blends with
// narrative text. Contiguous table blocks form one dedicated table segment
// (figures likewise); the prose runs in between go through the structural
// walk. Segments come back interleaved in original document order.
type tableAwareChunker struct{}

func (tableAwareChunker) segment(doc *docmodel.Document, cfg Config) []*segment {
	var segs []*segment
	blocks := doc.Blocks
	tableIdx := 0
	currentSection := ""

	i := 0
	for i < len(blocks) {
		switch blocks[i].Type {
		case docmodel.BlockTable:
			j := i
			for j < len(blocks) && blocks[j].Type == docmodel.BlockTable {
				j++
			}
			segs = append(segs, tableSegments(blocks[i:j], tableIdx, currentSection, cfg)...)
			tableIdx++
			i = j

		case docmodel.BlockFigure:
			j := i
			for j < len(blocks) && blocks[j].Type == docmodel.BlockFigure {
				j++
			}
			seg := newSegment()
			seg.ctype = docmodel.ChunkFigure
			seg.sectionTitle = currentSection
			for _, b := range blocks[i:j] {
				seg.append(b)
			}
			seg.oversized = seg.tokens > cfg.MaxChunkSize
			segs = append(segs, seg)
			i = j

		default:
			preRunSection := currentSection
			j := i
			for j < len(blocks) && blocks[j].Type != docmodel.BlockTable && blocks[j].Type != docmodel.BlockFigure {
				if blocks[j].Type == docmodel.BlockHeading {
					currentSection = blocks[j].Text
				}
				j++
			}
			segs = append(segs, structuralPass(blocks[i:j], cfg, preRunSection)...)
			i = j
		}
	}

	return segs
}

// tableSegments turns one contiguous table run into segments. The run stays
// a single segment unless it exceeds MaxChunkSize, in which case it is split
// by row groups with the header row (when syntactically identifiable as a
// markdown-style header plus separator) duplicated at the top of each piece.
func tableSegments(run []docmodel.Block, tableIdx int, section string, cfg Config) []*segment {
	whole := newSegment()
	whole.ctype = docmodel.ChunkTable
	whole.sectionTitle = section
	whole.tableIndex = tableIdx
	for _, b := range run {
		whole.append(b)
	}

	if whole.tokens <= cfg.MaxChunkSize {
		return []*segment{whole}
	}

	rows := strings.Split(whole.text.String(), "\n")
	headerRows := tableHeaderRows(rows)
	header := strings.Join(rows[:headerRows], "\n")
	dataRows := rows[headerRows:]

	if len(dataRows) == 0 {
		// Nothing to group; emit as-is and accept the soft-limit violation.
		whole.oversized = true
		return []*segment{whole}
	}

	var groups []string
	cur := header
	hasRow := false
	for _, row := range dataRows {
		next := cur
		if next != "" {
			next += "\n"
		}
		next += row
		if hasRow && EstimateTokens(next) > cfg.MaxChunkSize {
			groups = append(groups, cur)
			cur = header
			if cur != "" {
				cur += "\n"
			}
			cur += row
			continue
		}
		cur = next
		hasRow = true
	}
	if hasRow {
		groups = append(groups, cur)
	}

	if len(groups) == 1 {
		whole.oversized = true
		return []*segment{whole}
	}

	segs := make([]*segment, 0, len(groups))
	for part, g := range groups {
		seg := newSegment()
		seg.ctype = docmodel.ChunkTable
		seg.sectionTitle = section
		seg.tableIndex = tableIdx
		seg.tablePart = part
		seg.appendText(g)
		seg.pageMin = whole.pageMin
		seg.pageMax = whole.pageMax
		seg.oversized = seg.tokens > cfg.MaxChunkSize
		segs = append(segs, seg)
	}
	return segs
}

// tableHeaderRows reports how many leading rows form a syntactically
// identifiable header: a pipe row followed by a markdown separator row
// (---, :--- and the like) counts as two, anything else as zero.
func tableHeaderRows(rows []string) int {
	if len(rows) >= 2 && strings.Contains(rows[0], "|") && isSeparatorRow(rows[1]) {
		return 2
	}
	return 0
}

func isSeparatorRow(row string) bool {
	if !strings.Contains(row, "-") {
		return false
	}
	for _, r := range row {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
