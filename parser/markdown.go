package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MarkdownParser passes Markdown content through verbatim: its structure
// (headings, lists, tables) is already meaningful to a reader and to the
// chunker's paragraph/sentence splitter, so no format-specific rewriting
// happens here.
type MarkdownParser struct{}

func (p *MarkdownParser) SupportedFormats() []string { return []string{"md", "markdown"} }

func (p *MarkdownParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading Markdown: %w", err)
	}

	content := string(data)
	if content == "" {
		return &ParseResult{Method: "native"}, nil
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
