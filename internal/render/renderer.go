package render

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/danmuck/petty/internal/observability"
	"github.com/danmuck/petty/internal/store"
	"github.com/danmuck/petty/internal/substitute"
	"github.com/danmuck/petty/internal/terms"
	"github.com/rs/zerolog/log"
)

// Page carries the text-bearing fields of one rendered page.
type Page struct {
	PostType   string `json:"post_type,omitempty"`
	Content    string `json:"content"`
	Title      string `json:"title"`
	RenderData string `json:"render_data,omitempty"`
}

// Renderer owns the pieces a rendering pass needs.
type Renderer struct {
	store    store.Store
	engine   *substitute.Engine
	excluded map[string]struct{}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine overrides the default substitution engine.
func WithEngine(e *substitute.Engine) Option {
	return func(r *Renderer) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithExcludedPostTypes leaves pages of these post types untouched.
func WithExcludedPostTypes(types []string) Option {
	return func(r *Renderer) {
		for _, t := range types {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				r.excluded[t] = struct{}{}
			}
		}
	}
}

// NewRenderer builds a renderer reading terms from s.
func NewRenderer(s store.Store, opts ...Option) *Renderer {
	r := &Renderer{
		store:    s,
		engine:   substitute.New(substitute.DefaultOptions()),
		excluded: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Excluded reports whether pages of postType pass through unchanged.
func (r *Renderer) Excluded(postType string) bool {
	_, ok := r.excluded[strings.ToLower(strings.TrimSpace(postType))]
	return ok
}

// NewPass starts one rendering operation.
func (r *Renderer) NewPass(ctx context.Context) *Pass {
	return &Pass{ctx: ctx, r: r}
}

// Page transforms every field of p in a single pass.
func (r *Renderer) Page(ctx context.Context, p Page) (Page, error) {
	if r.Excluded(p.PostType) {
		observability.RecordRender(HookContent, true)
		return p, nil
	}
	pass := r.NewPass(ctx)
	hooks := pass.Hooks()
	out := p
	out.Content = hooks.Apply(HookContent, p.Content)
	out.Title = hooks.Apply(HookTitle, p.Title)
	if p.RenderData != "" {
		out.RenderData = hooks.Apply(HookRenderData, p.RenderData)
	}
	if err := pass.Err(); err != nil {
		return p, err
	}
	return out, nil
}

// Pass loads the mapping lazily, once, and reuses it for every field.
type Pass struct {
	ctx context.Context
	r   *Renderer

	once    sync.Once
	mapping terms.Mapping
	err     error
}

// Terms returns the mapping for this pass.
func (p *Pass) Terms() (terms.Mapping, error) {
	p.once.Do(func() {
		m, err := p.r.store.Load(p.ctx)
		if err != nil {
			p.err = fmt.Errorf("load terms: %w", err)
			log.Error().Err(err).Msg("render pass could not load terms")
			return
		}
		p.mapping = m
	})
	return p.mapping, p.err
}

// Err reports a load failure. Filters degrade to identity when it is set.
func (p *Pass) Err() error {
	_, err := p.Terms()
	return err
}

// Apply runs text through the engine for hook.
func (p *Pass) Apply(hook, text string) string {
	m, err := p.Terms()
	if err != nil || len(m) == 0 {
		observability.RecordRender(hook, true)
		return text
	}
	res := p.r.engine.Run(text, m)
	observability.RecordRender(hook, false)
	for _, ph := range res.Placeholders {
		observability.RecordSubstitution(ph.Symbol, ph.Decorated)
	}
	return res.Text
}

// Content filters post body text.
func (p *Pass) Content(text string) string { return p.Apply(HookContent, text) }

// Title filters a post title.
func (p *Pass) Title(text string) string { return p.Apply(HookTitle, text) }

// RenderData filters page-builder render output.
func (p *Pass) RenderData(text string) string { return p.Apply(HookRenderData, text) }

// Hooks returns a registry with this pass bound to the content, title, and
// page-builder hooks.
func (p *Pass) Hooks() *Hooks {
	h := NewHooks()
	h.Add(HookContent, p.Content)
	h.Add(HookTitle, p.Title)
	h.Add(HookRenderData, p.RenderData)
	return h
}
