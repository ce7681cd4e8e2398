package store

import (
	"context"
	"testing"

	"github.com/danmuck/petty/internal/symbols"
	"github.com/danmuck/petty/internal/terms"
)

func TestActivateMergesWithoutOverwriting(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	existing := terms.Mapping{
		{Term: "WordPress", Symbol: symbols.Copyright.Entity()},
		{Term: "Acme", Symbol: symbols.Trademark.Entity()},
	}
	if err := s.Save(ctx, existing); err != nil {
		t.Fatalf("save: %v", err)
	}

	added, err := Activate(ctx, s)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if added != terms.Defaults().Len()-1 {
		t.Fatalf("expected %d added, got %d", terms.Defaults().Len()-1, added)
	}

	got, _ := s.Load(ctx)
	if sym, _ := got.Get("WordPress"); sym != symbols.Copyright.Entity() {
		t.Fatalf("existing WordPress symbol overwritten: %q", sym)
	}
	if _, ok := got.Get("Acme"); !ok {
		t.Fatalf("existing term dropped")
	}
	if sym, _ := got.Get("WooPay"); sym != symbols.Trademark.Entity() {
		t.Fatalf("default WooPay missing: %q", sym)
	}

	again, err := Activate(ctx, s)
	if err != nil || again != 0 {
		t.Fatalf("second activation should be a no-op, added=%d err=%v", again, err)
	}
}

func TestSeedEmptyOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	added, err := SeedEmpty(ctx, s)
	if err != nil || added != 11 {
		t.Fatalf("expected 11 defaults seeded, added=%d err=%v", added, err)
	}

	trimmed, _ := s.Load(ctx)
	if err := s.Save(ctx, trimmed.Remove("Woo")); err != nil {
		t.Fatalf("save: %v", err)
	}
	added, err = SeedEmpty(ctx, s)
	if err != nil || added != 0 {
		t.Fatalf("expected no reseed, added=%d err=%v", added, err)
	}
	got, _ := s.Load(ctx)
	if _, ok := got.Get("Woo"); ok {
		t.Fatalf("removed default was restored")
	}
}
