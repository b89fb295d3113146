package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	// Upsert replaces the prior value.
	if err := s.Set(ctx, "k", "w"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _, _ = s.Get(ctx, "k")
	if v != "w" {
		t.Fatalf("overwrite lost: got %q", v)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("removed key still present")
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set(ctx, "expenses", `[{"id":1}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening runs migrations again; they must be a no-op.
	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get(ctx, "expenses")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("after reopen: %q, %v, %v", v, ok, err)
	}
}
