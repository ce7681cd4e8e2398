package render

import (
	"sort"
	"sync"
)

const (
	HookContent    = "the_content"
	HookTitle      = "the_title"
	HookRenderData = "bricks/frontend/render_data"
)

// Filter transforms one text field.
type Filter func(text string) string

// Hooks stores filters by hook name. Filters on one hook run in
// registration order.
type Hooks struct {
	mu      sync.RWMutex
	filters map[string][]Filter
}

// NewHooks initializes an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{filters: make(map[string][]Filter)}
}

// Add appends a filter to hook.
func (h *Hooks) Add(hook string, f Filter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filters[hook] = append(h.filters[hook], f)
}

// Has reports whether hook has any filter.
func (h *Hooks) Has(hook string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.filters[hook]) > 0
}

// Names returns registered hook names, sorted.
func (h *Hooks) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.filters))
	for name := range h.filters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply runs text through every filter on hook. Unknown hooks pass text
// through unchanged.
func (h *Hooks) Apply(hook, text string) string {
	h.mu.RLock()
	filters := append([]Filter(nil), h.filters[hook]...)
	h.mu.RUnlock()
	for _, f := range filters {
		text = f(text)
	}
	return text
}
