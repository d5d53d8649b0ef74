package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// CSVParser handles CSV files. The whole file becomes one table block (pipe
// rows with the header repeated), batched when very long so a single block
// does not balloon past what one table chunk could ever hold.
type CSVParser struct{}

// rows per table block; the chunker splits further by row groups if needed.
const csvBatchSize = 200

func (p *CSVParser) Parse(r io.Reader, filename string) (*docmodel.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	b := &docBuilder{}
	title := strings.TrimSuffix(filename, ".csv")

	if len(records) == 0 {
		return b.build(title)
	}

	headers := records[0]
	dataRows := records[1:]

	header := pipeRow(headers) + "\n" + pipeSeparator(len(headers))

	if len(dataRows) == 0 {
		b.table(header, 0)
		return b.build(title)
	}

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString(header)
		for _, row := range dataRows[i:end] {
			text.WriteString("\n")
			text.WriteString(pipeRow(row))
		}
		b.table(text.String(), 0)
	}

	return b.build(title)
}
