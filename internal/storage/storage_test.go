package storage

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	defer cache.Close()

	entry := &Entry{
		Zobrist:    0xDEADBEEFCAFEF00D,
		Depth:      5,
		Nodes:      4865609,
		ComputedAt: time.Now().UTC(),
		Elapsed:    3 * time.Second,
	}

	if err := cache.Put(entry); err != nil {
		t.Fatalf("putting entry: %v", err)
	}

	got, found, err := cache.Get(entry.Zobrist, entry.Depth)
	if err != nil {
		t.Fatalf("getting entry: %v", err)
	}
	if !found {
		t.Fatal("entry not found after put")
	}
	if got.Nodes != entry.Nodes {
		t.Errorf("nodes = %d, want %d", got.Nodes, entry.Nodes)
	}
	if got.Depth != entry.Depth {
		t.Errorf("depth = %d, want %d", got.Depth, entry.Depth)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	defer cache.Close()

	_, found, err := cache.Get(42, 3)
	if err != nil {
		t.Fatalf("getting entry: %v", err)
	}
	if found {
		t.Error("unexpected hit on an empty cache")
	}

	// Different depths are distinct keys.
	if err := cache.Put(&Entry{Zobrist: 42, Depth: 4, Nodes: 100}); err != nil {
		t.Fatalf("putting entry: %v", err)
	}
	_, found, err = cache.Get(42, 3)
	if err != nil || found {
		t.Errorf("depth must be part of the key (found=%v, err=%v)", found, err)
	}
}
