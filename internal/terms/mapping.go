package terms

import (
	"strings"
)

// Entry associates a term with its stored symbol (HTML entity form).
type Entry struct {
	Term   string `json:"term" toml:"term" yaml:"term"`
	Symbol string `json:"symbol" toml:"symbol" yaml:"symbol"`
}

// Mapping is an ordered set of entries with unique terms. Order is kept
// because equal-length terms are processed in their stored order.
type Mapping []Entry

// Len returns the number of entries.
func (m Mapping) Len() int {
	return len(m)
}

// Get returns the symbol stored for term.
func (m Mapping) Get(term string) (string, bool) {
	if i := m.index(term); i >= 0 {
		return m[i].Symbol, true
	}
	return "", false
}

// Set upserts term. An existing term keeps its position.
func (m Mapping) Set(term, symbol string) Mapping {
	if i := m.index(term); i >= 0 {
		out := m.Clone()
		out[i].Symbol = symbol
		return out
	}
	out := make(Mapping, len(m), len(m)+1)
	copy(out, m)
	return append(out, Entry{Term: term, Symbol: symbol})
}

// Remove drops term if present.
func (m Mapping) Remove(term string) Mapping {
	i := m.index(term)
	if i < 0 {
		return m
	}
	out := make(Mapping, 0, len(m)-1)
	out = append(out, m[:i]...)
	return append(out, m[i+1:]...)
}

// Merge appends entries of other whose term is not already present.
// Existing entries are never overwritten.
func (m Mapping) Merge(other Mapping) Mapping {
	out := m.Clone()
	for _, e := range other {
		if out.index(e.Term) >= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clone returns an independent copy. A nil mapping clones to an empty one.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	copy(out, m)
	return out
}

// Terms lists the terms in stored order.
func (m Mapping) Terms() []string {
	out := make([]string, 0, len(m))
	for _, e := range m {
		out = append(out, e.Term)
	}
	return out
}

// Normalize drops blank terms and later duplicates.
func (m Mapping) Normalize() Mapping {
	out := make(Mapping, 0, len(m))
	for _, e := range m {
		if strings.TrimSpace(e.Term) == "" || out.index(e.Term) >= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m Mapping) index(term string) int {
	for i := range m {
		if m[i].Term == term {
			return i
		}
	}
	return -1
}
