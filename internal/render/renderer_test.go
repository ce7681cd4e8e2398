package render

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/danmuck/petty/internal/store"
	"github.com/danmuck/petty/internal/substitute"
	"github.com/danmuck/petty/internal/terms"
	"github.com/danmuck/petty/internal/testutil/testlog"
)

type loadCounter struct {
	store.Store
	loads atomic.Int32
	err   error
}

func (l *loadCounter) Load(ctx context.Context) (terms.Mapping, error) {
	l.loads.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.Store.Load(ctx)
}

func seeded(t *testing.T) *loadCounter {
	t.Helper()
	mem := store.NewMemory()
	if err := mem.Save(context.Background(), terms.Defaults()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &loadCounter{Store: mem}
}

func TestPageSingleLoadPerPass(t *testing.T) {
	testlog.Start(t)
	s := seeded(t)
	r := NewRenderer(s)

	got, err := r.Page(context.Background(), Page{
		PostType:   "post",
		Content:    "<p>Built with woocommerce and WooPay.</p>",
		Title:      "Why wordpress?",
		RenderData: `<div class="brxe-text">Managed WordPress hosting</div>`,
	})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if got.Content != "<p>Built with WooCommerce® and WooPay™.</p>" {
		t.Fatalf("content = %q", got.Content)
	}
	if got.Title != "Why WordPress®?" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.RenderData != `<div class="brxe-text">Managed WordPress™ hosting</div>` {
		t.Fatalf("render data = %q", got.RenderData)
	}
	if n := s.loads.Load(); n != 1 {
		t.Fatalf("expected one load for the whole page, got %d", n)
	}

	if _, err := r.Page(context.Background(), Page{Content: "Woo"}); err != nil {
		t.Fatalf("second page: %v", err)
	}
	if n := s.loads.Load(); n != 2 {
		t.Fatalf("expected a fresh load per pass, got %d", n)
	}
}

func TestPageExcludedPostType(t *testing.T) {
	s := seeded(t)
	r := NewRenderer(s, WithExcludedPostTypes([]string{" Attachment ", ""}))
	in := Page{PostType: "attachment", Content: "WordPress", Title: "Woo"}
	got, err := r.Page(context.Background(), in)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if got != in {
		t.Fatalf("excluded page changed: %+v", got)
	}
	if s.loads.Load() != 0 {
		t.Fatalf("excluded page should not load terms")
	}
}

func TestPageLoadFailureIsIdentity(t *testing.T) {
	s := seeded(t)
	s.err = errors.New("database down")
	r := NewRenderer(s)

	in := Page{Content: "WordPress", Title: "Woo"}
	got, err := r.Page(context.Background(), in)
	if err == nil {
		t.Fatalf("expected load error")
	}
	if got != in {
		t.Fatalf("failed pass should return input unchanged, got %+v", got)
	}
}

func TestPassFiltersShareMapping(t *testing.T) {
	s := seeded(t)
	pass := NewRenderer(s).NewPass(context.Background())
	if got := pass.Content("woo"); got != "Woo®" {
		t.Fatalf("content = %q", got)
	}
	if got := pass.Title("Hosted Woo"); got != "Hosted Woo™" {
		t.Fatalf("title = %q", got)
	}
	if got := pass.RenderData("wooexpert"); got != "WooExpert®" {
		t.Fatalf("render data = %q", got)
	}
	if n := s.loads.Load(); n != 1 {
		t.Fatalf("expected 1 load, got %d", n)
	}
}

func TestEmptyStoreIsIdentity(t *testing.T) {
	pass := NewRenderer(store.NewMemory()).NewPass(context.Background())
	if got := pass.Content("WordPress"); got != "WordPress" {
		t.Fatalf("expected identity, got %q", got)
	}
}

func TestWithEngineOptions(t *testing.T) {
	s := seeded(t)
	r := NewRenderer(s, WithEngine(substitute.New(substitute.Options{})))
	if got := r.NewPass(context.Background()).Content("WordPress®"); got != "WordPress®®" {
		t.Fatalf("expected engine override to double symbol, got %q", got)
	}
}
