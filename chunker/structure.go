package chunker

import (
	"regexp"
	"strings"

	"github.com/ragserve/core/parser"
)

// ---------------------------------------------------------------------------
// Heading pattern detection
// ---------------------------------------------------------------------------

// headingPatterns are compiled regular expressions for common heading
// styles found in structured documents.
var headingPatterns = []*regexp.Regexp{
	// Numbered: "1.", "1.2", "1.2.3", optionally followed by a title
	regexp.MustCompile(`^\s*(\d+\.)+(\d+)?\s+\S`),
	// Uppercase line (e.g. "INTRODUCTION")
	regexp.MustCompile(`^[A-Z][A-Z\s]{4,}$`),
	// Markdown-style: "# Heading", "## Sub-heading"
	regexp.MustCompile(`^#{1,6}\s+\S`),
	// Appendix / Annex: "Appendix A", "Annex 1"
	regexp.MustCompile(`(?i)^(appendix|annex|schedule|exhibit)\s+[A-Z0-9]`),
	// Article: "Article 1", "Article II"
	regexp.MustCompile(`(?i)^article\s+[IVXLCDM\d]+`),
}

// IsHeading reports whether a line of text looks like a heading.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, re := range headingPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Document-level structure detection
// ---------------------------------------------------------------------------

// structureFamilies are independent regex families whose presence signals a
// structured document. Each is checked once against the whole text; a
// document family only "counts" once no matter how many times it recurs.
var structureFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*chapter\s+\d+`),
	regexp.MustCompile(`(?im)^\s*section\s+\d+`),
	regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`),
	regexp.MustCompile(`(?im)^\s*part\s+\d+`),
	regexp.MustCompile(`(?im)^\s*article\s+\d+`),
	// Clause-numbered legal text: "1.1", "1.1.1", ...
	regexp.MustCompile(`(?m)^\s*\d+(?:\.\d+){1,}\s+\S`),
	// Clause cross-reference: "clause 1.2", distinct from the bare section
	// and article families above.
	regexp.MustCompile(`(?i)\bclause\s+\d+(?:\.\d+)*`),
}

// additionalStructureFamilyMatches adds the engineering standards-reference
// detector (ISO/IEC/ASTM/...) as one more family, grounded on
// chunker/engineering.go. It is kept separate from structureFamilies
// because HasStandardsReference is a function, not a single regex.
func additionalStructureFamilyMatches(text string) int {
	if HasStandardsReference(text) {
		return 1
	}
	return 0
}

// DetectStructure scans text for the regular-expression families
// indicative of structure (chapter/section/part/article numbering,
// clause-numbered legal text, "clause N" cross-references, engineering
// standards references). A document is
// "structured" when at least two distinct families match anywhere in it.
func DetectStructure(text string) bool {
	matched := 0
	for _, re := range structureFamilies {
		if re.MatchString(text) {
			matched++
			if matched >= 2 {
				return true
			}
		}
	}
	matched += additionalStructureFamilyMatches(text)
	return matched >= 2
}

// SegmentByHeadings scans content line by line and splits it into sections
// at each detected heading. Text preceding the first heading (if any) is
// returned as an untitled leading section so no content is dropped. Each
// emitted section's Type is set by ContentType and its Level by the
// numbering depth of its heading, when the heading carries a number.
func SegmentByHeadings(content string) []parser.Section {
	lines := strings.Split(content, "\n")
	var sections []parser.Section
	var heading string
	var buf strings.Builder

	flush := func() {
		body := strings.TrimSpace(buf.String())
		if heading == "" && body == "" {
			return
		}
		sections = append(sections, parser.Section{
			Heading: heading,
			Content: body,
			Level:   headingLevel(heading),
			Type:    ContentType(body),
		})
		buf.Reset()
	}

	for _, line := range lines {
		if IsHeading(line) {
			flush()
			heading = strings.TrimSpace(line)
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	flush()

	return sections
}

// headingLevel derives a nesting depth from a heading line: numbered
// headings ("1.2 Scope") use their numbering depth, Markdown headings use
// their "#" count, everything else defaults to level 1.
func headingLevel(heading string) int {
	if n, ok := ExtractClauseNumber(heading); ok {
		return ClauseDepth(n)
	}
	if n, ok := DetectNumbering(heading + " "); ok {
		return NumberingLevel(n)
	}
	if m := markdownHashes.FindString(heading); m != "" {
		return strings.Count(m, "#")
	}
	return 1
}

var markdownHashes = regexp.MustCompile(`^#{1,6}`)

// ---------------------------------------------------------------------------
// Section numbering
// ---------------------------------------------------------------------------

// numberingPattern matches hierarchical numbering such as "1.", "1.2",
// "1.2.3", etc.
var numberingPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.\s`)

// DetectNumbering extracts the hierarchical number prefix from a line.
// It returns the matched number string (e.g. "1.2.3") and true, or
// an empty string and false if none was found.
func DetectNumbering(line string) (string, bool) {
	line = strings.TrimSpace(line)
	m := numberingPattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// NumberingLevel returns the depth implied by a hierarchical number
// string.  "1" is level 1, "1.2" is level 2, "1.2.3" is level 3, etc.
func NumberingLevel(numbering string) int {
	if numbering == "" {
		return 0
	}
	return strings.Count(numbering, ".") + 1
}

// ---------------------------------------------------------------------------
// Content type classification
// ---------------------------------------------------------------------------

// ContentType classifies a block of text into one of the canonical
// section types: "table", "definition", "requirement", "paragraph",
// or "section".  The heuristics look at structural cues rather than
// semantic meaning.
func ContentType(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "paragraph"
	}

	if looksLikeTable(trimmed) {
		return "table"
	}
	if looksLikeDefinition(trimmed) {
		return "definition"
	}
	if looksLikeRequirement(trimmed) {
		return "requirement"
	}
	if IsHeading(firstLine(trimmed)) {
		return "section"
	}
	return "paragraph"
}

// ---------------------------------------------------------------------------
// Detection helpers
// ---------------------------------------------------------------------------

// looksLikeTable returns true when text appears to contain a table.
func looksLikeTable(text string) bool {
	lines := strings.Split(text, "\n")

	// Markdown-style tables: at least 3 lines, pipe characters in most.
	if len(lines) >= 3 {
		pipeCount := 0
		for _, l := range lines {
			if strings.Contains(l, "|") {
				pipeCount++
			}
		}
		if pipeCount >= len(lines)/2 {
			return true
		}
	}

	// Tab-delimited columns: at least 2 lines with multiple tabs.
	tabLines := 0
	for _, l := range lines {
		if strings.Count(l, "\t") >= 2 {
			tabLines++
		}
	}
	if tabLines >= 2 {
		return true
	}

	// Separator rows.
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if len(trimmed) > 3 && (allChar(trimmed, '-') || allChar(trimmed, '=')) {
			return true
		}
	}

	return false
}

// definitionPattern matches lines like:
//
//	"Term" means ...
//	"Term" shall mean ...
//	Term: definition text
var definitionPattern = regexp.MustCompile(
	`(?i)(?:^"[^"]+"\s+(?:means|shall\s+mean))|(?:^\S+.*?:\s+\S)`,
)

// looksLikeDefinition reports whether text looks like a definition
// block (glossary entries, defined terms, etc.).
func looksLikeDefinition(text string) bool {
	lines := strings.Split(text, "\n")
	defCount := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if definitionPattern.MatchString(l) {
			defCount++
		}
	}
	// At least one definition-style line in a short block, or multiple
	// in a longer one.
	if len(lines) <= 3 {
		return defCount >= 1
	}
	return defCount >= 2
}

// requirementKeywords are words that typically mark normative
// requirements in standards and contracts.
var requirementKeywords = []string{
	"SHALL", "MUST", "REQUIRED", "SHALL NOT", "MUST NOT",
}

// looksLikeRequirement reports whether text contains normative
// requirement language.
func looksLikeRequirement(text string) bool {
	upper := strings.ToUpper(text)
	for _, kw := range requirementKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// allChar reports whether every character in s is c.
func allChar(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return len(s) > 0
}
