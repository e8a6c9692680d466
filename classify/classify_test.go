package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/ragserve/core/llm"
)

type stubChat struct {
	resp *llm.ChatResponse
	err  error
}

func (s *stubChat) Chat(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
	return s.resp, s.err
}
func (s *stubChat) Embed(_ context.Context, _ []string) ([][]float32, error) { return nil, nil }
func (s *stubChat) StreamChat(_ context.Context, _ llm.ChatRequest, _ func(string) error) (*llm.ChatResponse, error) {
	return s.resp, s.err
}

func TestClassifyDocumentLLMSuccess(t *testing.T) {
	c := New(&stubChat{resp: &llm.ChatResponse{
		Content: `{"domain":"legal","title":"Master Services Agreement","confidence":0.9,"type":"contract"}`,
	}}, nil, 0, 0)

	result, err := c.ClassifyDocument(context.Background(), "WHEREAS the parties agree...", "msa.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Domain != "legal" {
		t.Errorf("domain = %q, want legal", result.Domain)
	}
}

func TestClassifyDocumentFallsBackOnLLMError(t *testing.T) {
	c := New(&stubChat{err: errors.New("connection refused")}, nil, 0, 0)

	result, err := c.ClassifyDocument(context.Background(),
		"This Agreement is made between the parties, whereas the indemnify clause applies.", "contract.pdf")
	if err != nil {
		t.Fatalf("fallback path should not return an error: %v", err)
	}
	if result.Domain != "legal" {
		t.Errorf("keyword fallback domain = %q, want legal", result.Domain)
	}
}

func TestClassifyDocumentFallsBackOnMalformedJSON(t *testing.T) {
	c := New(&stubChat{resp: &llm.ChatResponse{Content: "not json"}}, nil, 0, 0)

	result, err := c.ClassifyDocument(context.Background(), "generic text with no domain signal", "doc.pdf")
	if err != nil {
		t.Fatalf("fallback path should not return an error: %v", err)
	}
	if result.Domain != "general" {
		t.Errorf("domain = %q, want general", result.Domain)
	}
}

func TestClassifyQueryKeywordFallback(t *testing.T) {
	c := New(&stubChat{err: errors.New("timeout")}, nil, 0, 0)

	result, err := c.ClassifyQuery(context.Background(), "What torque spec applies to the schematic assembly?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Domain != "engineering" {
		t.Errorf("domain = %q, want engineering", result.Domain)
	}
	if len(result.Keywords) == 0 {
		t.Errorf("expected matched keywords, got none")
	}
}

func TestVoteDomainDefaultsToGeneral(t *testing.T) {
	domain, hits := voteDomain("a perfectly ordinary sentence")
	if domain != "general" || hits != 0 {
		t.Errorf("got (%q, %d), want (general, 0)", domain, hits)
	}
}
