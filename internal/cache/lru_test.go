package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewLRUCache[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.Set("a", "1")
	v, ok := c.Get("a")
	if !ok || v != "1" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}

	c.Set("a", "2")
	v, _ = c.Get("a")
	if v != "2" {
		t.Fatalf("overwrite lost: got %q", v)
	}
	if c.Size() != 1 {
		t.Fatalf("Size = %d, want 1", c.Size())
	}
}

func TestEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry was evicted")
	}
	if c.Size() != 2 {
		t.Fatalf("Size = %d, want 2", c.Size())
	}
}

func TestExpiry(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)

	c.Set("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("fresh entry missing")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry returned")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry still counted, Size = %d", c.Size())
	}
}

func TestClear(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Size() != 0 {
		t.Fatalf("Size after Clear = %d", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("cleared entry returned")
	}

	// The cache stays usable after a clear.
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("Get(c) after Clear = %d, %v", v, ok)
	}
}

func TestDelete(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted entry returned")
	}
	c.Delete("a") // deleting an absent key is fine
}
