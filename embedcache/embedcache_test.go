package embedcache

import (
	"context"
	"testing"
)

func TestGetPutExactMatch(t *testing.T) {
	c := New(10, nil)
	ctx := context.Background()

	text := "the quick brown fox jumps over the lazy dog"
	vec := []float32{0.1, 0.2, 0.3}

	if _, ok := c.Get(ctx, text); ok {
		t.Fatalf("expected miss before Put")
	}

	c.Put(ctx, text, vec)

	got, ok := c.Get(ctx, text)
	if !ok {
		t.Fatalf("expected hit after Put")
	}
	if len(got) != len(vec) || got[0] != vec[0] {
		t.Errorf("got %v, want %v", got, vec)
	}
}

func TestGetNearDuplicate(t *testing.T) {
	c := New(10, nil)
	ctx := context.Background()

	original := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa quebec romeo sierra tango uniform"
	vec := []float32{0.5, 0.6}
	c.Put(ctx, original, vec)

	// Drop one token of a 21-word set -> 20/21 ~ 0.952 Jaccard, still >= 0.95.
	near := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa quebec romeo sierra tango"
	if _, ok := c.Get(ctx, near); !ok {
		t.Errorf("expected near-duplicate hit for %q", near)
	}

	unrelated := "completely different content about legal contracts"
	if _, ok := c.Get(ctx, unrelated); ok {
		t.Errorf("expected miss for unrelated text")
	}
}

func TestFIFOEviction(t *testing.T) {
	c := New(2, nil)
	ctx := context.Background()

	c.Put(ctx, "alpha beta", []float32{1})
	c.Put(ctx, "gamma delta", []float32{2})
	c.Put(ctx, "epsilon zeta", []float32{3}) // evicts "alpha beta"

	if _, ok := c.Get(ctx, "alpha beta"); ok {
		t.Errorf("expected eviction of oldest entry")
	}
	if _, ok := c.Get(ctx, "gamma delta"); !ok {
		t.Errorf("expected gamma delta to survive")
	}
	if _, ok := c.Get(ctx, "epsilon zeta"); !ok {
		t.Errorf("expected epsilon zeta to survive")
	}
}

func TestJaccard(t *testing.T) {
	a := tokenize("alpha beta gamma")
	b := tokenize("alpha beta gamma")
	if got := jaccard(a, b); got != 1.0 {
		t.Errorf("identical sets: got %f, want 1.0", got)
	}

	c := tokenize("completely unrelated words here")
	if got := jaccard(a, c); got != 0 {
		t.Errorf("disjoint sets: got %f, want 0", got)
	}
}
