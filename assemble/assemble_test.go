package assemble

import (
	"strings"
	"testing"

	"github.com/ragserve/core/dedup"
	"github.com/ragserve/core/store"
)

func TestAssembleShortCircuitsOnEmptyKnowledgeBase(t *testing.T) {
	result := Assemble("what is the torque spec?", nil, nil, Options{DocumentCount: 0})
	if !result.ShortCircuit {
		t.Fatalf("expected short circuit when no documents are indexed")
	}
	if !strings.Contains(result.Context, "upload") {
		t.Errorf("expected upload instruction in short-circuit message, got %q", result.Context)
	}
}

func TestAssembleIncludesDocumentContext(t *testing.T) {
	chunks := []dedup.Scored{
		{RetrievalResult: store.RetrievalResult{Content: "the torque spec is 45 Nm"}, Attribution: "manual.pdf, p. 4"},
	}
	result := Assemble("what is the torque spec?", nil, chunks, Options{DocumentCount: 1})
	if result.ShortCircuit {
		t.Fatalf("should not short circuit with documents present")
	}
	if !strings.Contains(result.Context, "Document Context:") {
		t.Errorf("expected Document Context zone, got %q", result.Context)
	}
	if !strings.Contains(result.Context, "[manual.pdf, p. 4]") {
		t.Errorf("expected source attribution tag, got %q", result.Context)
	}
}

func TestAssembleFiltersHistoryByOverlap(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "tell me about torque specifications"},
		{Role: "user", Content: "what's the weather like today"},
		{Role: "assistant", Content: "it is sunny"},
	}
	relevant := filterHistory(history, wordSet("torque specifications"))
	if len(relevant) != 1 {
		t.Fatalf("expected 1 relevant user message, got %d", len(relevant))
	}
}

func TestAssembleTruncatesToContextCap(t *testing.T) {
	chunks := []dedup.Scored{
		{RetrievalResult: store.RetrievalResult{Content: strings.Repeat("x", 5000)}, Attribution: "big.pdf"},
	}
	result := Assemble("question", nil, chunks, Options{DocumentCount: 1, ContextCap: 100})
	if !result.Truncated {
		t.Errorf("expected truncated=true when content exceeds the cap")
	}
	if len(result.Context) != 100 {
		t.Errorf("expected context length 100, got %d", len(result.Context))
	}
}

func TestSummarizeSynthesizesFromLastMessages(t *testing.T) {
	messages := make([]Message, 0, 8)
	for i := 0; i < 8; i++ {
		messages = append(messages, Message{Role: "user", Content: "topic number sequence word here"})
	}
	summary := summarize(messages)
	if !strings.HasPrefix(summary, "Previous topics discussed:") {
		t.Errorf("expected summary prefix, got %q", summary)
	}
}
