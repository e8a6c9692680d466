package dedup

import (
	"strings"
	"testing"

	"github.com/ragserve/core/store"
)

func TestFilterRejectsByteIdenticalDuplicates(t *testing.T) {
	candidates := []Candidate{
		{Result: store.RetrievalResult{ChunkID: 1, Content: "the torque spec is 45 Nm", Score: 0.9}, Domain: "engineering"},
		{Result: store.RetrievalResult{ChunkID: 2, Content: "the torque spec is 45 Nm", Score: 0.8}, Domain: "engineering"},
	}

	out := Filter(candidates, "engineering", 5)
	if len(out) != 1 {
		t.Fatalf("expected 1 result after dedup, got %d", len(out))
	}
	if out[0].ChunkID != 1 {
		t.Errorf("expected the higher-scoring duplicate to survive, got chunk %d", out[0].ChunkID)
	}
}

func TestFilterAppliesDomainConsistencyBonus(t *testing.T) {
	candidates := []Candidate{
		{Result: store.RetrievalResult{ChunkID: 1, Content: "shared text here that repeats", Score: 0.5}, Domain: "legal"},
	}
	out := Filter(candidates, "legal", 5)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Score <= 0.5 {
		t.Errorf("expected domain consistency bonus to raise score above 0.5, got %f", out[0].Score)
	}
}

func TestFilterPenalizesConflictingNumbers(t *testing.T) {
	long := strings.Repeat("context words to pad length past the quality threshold ", 3)
	candidates := []Candidate{
		{Result: store.RetrievalResult{ChunkID: 1, Content: long + "bracket 7 carries a maximum load of 100 kg"}, Domain: "engineering"},
		{Result: store.RetrievalResult{ChunkID: 2, Content: long + "according to the bracket 7 datasheet the rated maximum load is 250 kg"}, Domain: "engineering"},
	}
	for i := range candidates {
		candidates[i].Result.Score = 0.5
	}

	out := Filter(candidates, "engineering", 5)
	if len(out) != 2 {
		t.Fatalf("expected both conflicting chunks to survive dedup (they are not textual dupes), got %d", len(out))
	}
	for _, r := range out {
		if r.Score >= 0.5+domainConsistencyBonus {
			t.Errorf("expected fact conflict penalty to suppress score, got %f", r.Score)
		}
	}
}

func TestFilterStopsAtTopK(t *testing.T) {
	candidates := make([]Candidate, 0, 10)
	for i := 0; i < 10; i++ {
		candidates = append(candidates, Candidate{
			Result: store.RetrievalResult{ChunkID: int64(i), Content: strings.Repeat(string(rune('a'+i)), 20) + " unique chunk text body", Score: float64(i) / 10},
		})
	}

	out := Filter(candidates, "", 3)
	if len(out) != 3 {
		t.Fatalf("expected exactly 3 results (top_k), got %d", len(out))
	}
}

func TestAttributionBuildsFromTitlePageSection(t *testing.T) {
	r := store.RetrievalResult{Filename: "handbook.pdf", PageNumber: 12, Heading: "Section 4.2"}
	got := attribution(r)
	want := "handbook.pdf, p. 12, Section 4.2"
	if got != want {
		t.Errorf("attribution = %q, want %q", got, want)
	}
}

func TestEditDistanceWithin(t *testing.T) {
	if !editDistanceWithin("hello world", "hello worlld", 10) {
		t.Errorf("expected near-identical strings within edit distance 10")
	}
	if editDistanceWithin("completely different content here", "something else entirely unrelated text", 10) {
		t.Errorf("expected dissimilar strings to exceed edit distance 10")
	}
}
