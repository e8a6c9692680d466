package respcache

import (
	"context"
	"testing"
	"time"
)

func TestGetPutRoundTrip(t *testing.T) {
	c := New(10, LRU, time.Minute, nil)
	key := Key("what is torque?", "ctx", "session-1")

	c.Put(context.Background(), key, []byte("45 Nm"))

	got, ok := c.Get(context.Background(), key, false)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != "45 Nm" {
		t.Errorf("got %q, want %q", got, "45 Nm")
	}
}

func TestGetBypassesWhenSessionInvalidated(t *testing.T) {
	c := New(10, LRU, time.Minute, nil)
	key := Key("q", "c", "s")
	c.Put(context.Background(), key, []byte("value"))

	_, ok := c.Get(context.Background(), key, true)
	if ok {
		t.Error("expected bypass=true to force a miss")
	}
}

func TestGetExpiredEntryIsEvicted(t *testing.T) {
	c := New(10, LRU, time.Nanosecond, nil)
	key := Key("q", "c", "s")
	c.Put(context.Background(), key, []byte("value"))
	time.Sleep(time.Millisecond)

	_, ok := c.Get(context.Background(), key, false)
	if ok {
		t.Error("expected expired entry to miss")
	}
}

func TestFIFOEvictsOldestInsertionOrder(t *testing.T) {
	c := New(2, FIFO, time.Minute, nil)
	c.Put(context.Background(), "a", []byte("1"))
	c.Put(context.Background(), "b", []byte("2"))
	c.Put(context.Background(), "c", []byte("3"))

	if _, ok := c.Get(context.Background(), "a", false); ok {
		t.Error("expected oldest key 'a' to be evicted under FIFO")
	}
	if _, ok := c.Get(context.Background(), "c", false); !ok {
		t.Error("expected most recent key 'c' to survive")
	}
}

func TestLFUEvictsLeastAccessed(t *testing.T) {
	c := New(2, LFU, time.Minute, nil)
	c.Put(context.Background(), "a", []byte("1"))
	c.Put(context.Background(), "b", []byte("2"))

	// Access "a" repeatedly so "b" becomes the least-frequently-used.
	c.Get(context.Background(), "a", false)
	c.Get(context.Background(), "a", false)

	c.Put(context.Background(), "c", []byte("3"))

	if _, ok := c.Get(context.Background(), "b", false); ok {
		t.Error("expected least-frequently-used key 'b' to be evicted under LFU")
	}
}
