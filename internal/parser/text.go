package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*docmodel.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := &docBuilder{}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			b.paragraph(current.String(), 0)
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.build(strings.TrimSuffix(filename, ".txt"))
}
