package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// TextParser handles plain text (.txt) files, trying a cascade of
// encodings when the bytes are not valid UTF-8.
type TextParser struct{}

func (p *TextParser) SupportedFormats() []string { return []string{"txt"} }

func (p *TextParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	content, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return &ParseResult{
			Method: "native",
		}, nil
	}

	return &ParseResult{
		Sections: []Section{
			{
				Heading: filepath.Base(path),
				Content: content,
				Level:   1,
				Type:    "paragraph",
			},
		},
		Method: "native",
	}, nil
}

// decodeText tries utf-8, then latin-1 (ISO-8859-1), then cp1252, in that
// order, returning the first successful decode. utf-8 is checked with
// utf8.Valid; ISO-8859-1 maps every byte 1:1 onto Unicode's first 256 code
// points, so the latin-1 decode accepts any input and the cp1252 step is
// reached only if it fails. cp1252 differs only in the 0x80-0x9F range.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, enc := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err == nil {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("%w: no supported encoding matched", ErrDecodeFailed)
}
