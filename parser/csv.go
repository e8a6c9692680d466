package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVParser emits one chunk per data row: tabular content carries its own
// record boundary and is not meant to be re-split by the chunker.
type CSVParser struct{}

func (p *CSVParser) SupportedFormats() []string { return []string{"csv"} }

func (p *CSVParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows rather than failing the whole file

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no rows found in CSV")
	}

	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		rows = records
		header = nil
	}

	sections := make([]Section, 0, len(rows))
	for i, row := range rows {
		sections = append(sections, Section{
			Content:    rowToRecord(header, row),
			Type:       "table",
			PageNumber: 0,
			Metadata: map[string]string{
				"row_index": fmt.Sprintf("%d", i),
			},
		})
	}

	return &ParseResult{
		Sections: sections,
		Method:   "native",
	}, nil
}

// rowToRecord renders one CSV row as "col: value" pairs when a header is
// available, falling back to a pipe-joined record otherwise.
func rowToRecord(header, row []string) string {
	if header == nil {
		return strings.Join(row, " | ")
	}
	var b strings.Builder
	for i, val := range row {
		if i >= len(header) {
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(header[i])
		b.WriteString(": ")
		b.WriteString(val)
	}
	return b.String()
}
