package parser

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragserve/core/llm"
)

// ImageParser extracts text from a standalone image via OCR-only vision
// calls, mirroring PDFVisionParser but for a single raster image rather
// than a whole document.
type ImageParser struct {
	visionProvider llm.VisionProvider
}

func NewImageParser(provider llm.VisionProvider) *ImageParser {
	return &ImageParser{visionProvider: provider}
}

func (p *ImageParser) SupportedFormats() []string {
	return []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}
}

func (p *ImageParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	if p.visionProvider == nil {
		return nil, fmt.Errorf("image OCR requires a configured vision provider")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	mime := imageMIME(path)
	b64 := base64.StdEncoding.EncodeToString(data)

	resp, err := p.visionProvider.ChatWithImages(ctx, llm.VisionChatRequest{
		Messages: []llm.VisionMessage{
			{
				Role: "user",
				Content: []llm.ContentPart{
					{Type: "text", Text: "Transcribe all legible text in this image verbatim. If there is no text, respond with an empty string."},
					{Type: "image_url", ImageURL: &llm.ImageURL{URL: "data:" + mime + ";base64," + b64}},
				},
			},
		},
		MaxTokens: 2048,
	})
	if err != nil {
		return nil, fmt.Errorf("image OCR failed: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return &ParseResult{Method: "vision"}, nil
	}

	return &ParseResult{
		Sections: []Section{
			{
				Heading: filepath.Base(path),
				Content: text,
				Type:    "paragraph",
			},
		},
		Method: "vision",
	}, nil
}

func imageMIME(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
