package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Hello world", "French", "Bonjour le monde", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	translated, found, err := s.Lookup(ctx, "Hello world", "French")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if translated != "Bonjour le monde" {
		t.Errorf("expected 'Bonjour le monde', got %q", translated)
	}
}

func TestStore_Lookup_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.Lookup(context.Background(), "never saved", "French")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestStore_Lookup_LanguageIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Hello", "French", "Bonjour", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, found, err := s.Lookup(ctx, "Hello", "German")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found {
		t.Error("expected miss for different target language")
	}
}

func TestStore_Lookup_NormalizesWhitespace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "  Hello world  ", "French", "Bonjour le monde", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, found, err := s.Lookup(ctx, "Hello world", "French")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found {
		t.Error("expected hit after trim normalization")
	}
}

func TestStore_Lookup_CountsUsage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Hello", "French", "Bonjour", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := s.Lookup(ctx, "Hello", "French"); err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].UsageCount != 4 {
		t.Errorf("expected usage count 4, got %d", entries[0].UsageCount)
	}
}

func TestStore_Save_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Hello", "French", "Bonjour", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "Hello", "French", "Salut", "azure"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	translated, found, err := s.Lookup(ctx, "Hello", "French")
	if err != nil || !found {
		t.Fatalf("Lookup failed: found=%v err=%v", found, err)
	}
	if translated != "Salut" {
		t.Errorf("expected replacement 'Salut', got %q", translated)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(entries))
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "one", "French", "un", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "two", "French", "deux", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, _, err := s.Lookup(ctx, "one", "French"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 entries, got %d", stats.TotalEntries)
	}
	if stats.TotalUsage != 3 {
		t.Errorf("expected total usage 3, got %d", stats.TotalUsage)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "Hello", "French", "Bonjour", "openai"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("List failed: %v", err)
	}

	if err := s.Delete(ctx, entries[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := s.Lookup(ctx, "Hello", "French"); found {
		t.Error("expected entry gone after delete")
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(context.Background(), "no-such-id"); err == nil {
		t.Error("expected error deleting unknown entry")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, text, "French", text+"-fr", "openai"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cleared, got %d", n)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("expected empty memory, got %d entries", stats.TotalEntries)
	}
}
