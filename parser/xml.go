package parser

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// XMLParser walks the element tree and emits one chunk per element that
// carries its own text content, with heading set to the full tag path
// (including attributes) from the document root.
type XMLParser struct{}

func (p *XMLParser) SupportedFormats() []string { return []string{"xml"} }

func (p *XMLParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening XML: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)

	var sections []Section
	var pathStack []string
	var textBuf strings.Builder
	var attrStack [][]xml.Attr

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			if serr, ok := err.(*xml.SyntaxError); ok {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParseFailed, serr.Line, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			pathStack = append(pathStack, t.Name.Local)
			attrStack = append(attrStack, t.Attr)
			textBuf.Reset()
		case xml.CharData:
			textBuf.Write(t)
		case xml.EndElement:
			text := strings.TrimSpace(textBuf.String())
			if text != "" && len(pathStack) > 0 {
				attrs := attrStack[len(attrStack)-1]
				sections = append(sections, Section{
					Heading:  tagPath(pathStack, attrs),
					Content:  text,
					Type:     "paragraph",
					Metadata: attrsToMetadata(attrs),
				})
			}
			textBuf.Reset()
			if len(pathStack) > 0 {
				pathStack = pathStack[:len(pathStack)-1]
				attrStack = attrStack[:len(attrStack)-1]
			}
		}
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no text content found in XML", ErrExtractionFailed)
	}

	return &ParseResult{
		Sections: sections,
		Method:   "native",
	}, nil
}

func tagPath(stack []string, attrs []xml.Attr) string {
	path := "/" + strings.Join(stack, "/")
	if len(attrs) == 0 {
		return path
	}
	var parts []string
	for _, a := range attrs {
		parts = append(parts, a.Name.Local+`="`+a.Value+`"`)
	}
	return path + "[" + strings.Join(parts, " ") + "]"
}

func attrsToMetadata(attrs []xml.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
