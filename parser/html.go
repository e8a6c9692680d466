package parser

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser strips script/style content and collapses whitespace, keeping
// heading tags as section boundaries.
type HTMLParser struct{}

func (p *HTMLParser) SupportedFormats() []string { return []string{"html", "htm"} }

var collapseWhitespace = regexp.MustCompile(`\s+`)

func (p *HTMLParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening HTML: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var sections []Section
	currentHeading := ""
	currentLevel := 0

	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace.ReplaceAllString(strings.TrimSpace(sel.Text()), " ")
		if text == "" {
			return
		}
		if level, ok := headingLevel(goquery.NodeName(sel)); ok {
			currentHeading = text
			currentLevel = level
			return
		}
		sections = append(sections, Section{
			Heading: currentHeading,
			Content: text,
			Level:   currentLevel,
			Type:    "paragraph",
		})
	})

	if len(sections) == 0 {
		body := collapseWhitespace.ReplaceAllString(strings.TrimSpace(doc.Find("body").Text()), " ")
		if body == "" {
			return nil, fmt.Errorf("no content found in HTML")
		}
		sections = append(sections, Section{Content: body, Type: "paragraph"})
	}

	return &ParseResult{
		Sections: sections,
		Method:   "native",
	}, nil
}

func headingLevel(tag string) (int, bool) {
	switch tag {
	case "h1":
		return 1, true
	case "h2":
		return 2, true
	case "h3":
		return 3, true
	case "h4":
		return 4, true
	case "h5":
		return 5, true
	case "h6":
		return 6, true
	}
	return 0, false
}
