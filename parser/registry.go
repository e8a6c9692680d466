package parser

import "fmt"

type LlamaParseConfig struct {
	APIKey  string
	BaseURL string
}

type Registry struct {
	parsers    map[string]Parser
	llamaParse *LlamaParseConfig
}

func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	// Register built-in parsers
	pdf := &PDFParser{}
	docx := &DOCXParser{}
	xlsx := &XLSXParser{}
	pptx := &PPTXParser{}
	csvP := &CSVParser{}
	html := &HTMLParser{}
	jsonP := &JSONParser{}
	xmlP := &XMLParser{}
	md := &MarkdownParser{}
	txt := &TextParser{}

	for _, p := range []Parser{pdf, docx, xlsx, pptx, csvP, html, jsonP, xmlP, md, txt} {
		for _, f := range p.SupportedFormats() {
			r.parsers[f] = p
		}
	}
	return r
}

func (r *Registry) SetLlamaParse(cfg LlamaParseConfig) {
	r.llamaParse = &cfg
	lp := &LlamaParseParser{cfg: cfg}
	// Register legacy formats
	for _, f := range lp.SupportedFormats() {
		r.parsers[f] = lp
	}
}

// SetImageParser registers OCR-only handlers for standalone raster images,
// available once a vision provider has been configured.
func (r *Registry) SetImageParser(provider Parser) {
	for _, f := range provider.SupportedFormats() {
		r.parsers[f] = provider
	}
}

func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser for format: %s", format)
	}
	return p, nil
}

func (r *Registry) Register(format string, p Parser) {
	r.parsers[format] = p
}
