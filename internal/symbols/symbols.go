// Package symbols defines the trademark-family glyphs a term can carry.
package symbols

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

// Symbol is one of the registered, copyright, or trademark signs.
type Symbol int

const (
	Registered Symbol = iota
	Copyright
	Trademark
)

type info struct {
	name   string
	entity string
	named  string
	glyph  string
}

var table = [...]info{
	Registered: {name: "registered", entity: "&#174;", named: "&reg;", glyph: "®"},
	Copyright:  {name: "copyright", entity: "&#169;", named: "&copy;", glyph: "©"},
	Trademark:  {name: "trademark", entity: "&#8482;", named: "&trade;", glyph: "™"},
}

// All returns the symbols in form display order.
func All() []Symbol {
	return []Symbol{Registered, Copyright, Trademark}
}

func (s Symbol) valid() bool {
	return s >= Registered && s <= Trademark
}

// Name returns the lowercase symbol name.
func (s Symbol) Name() string {
	if !s.valid() {
		return fmt.Sprintf("symbol(%d)", int(s))
	}
	return table[s].name
}

// Entity returns the numeric HTML entity used as the stored form.
func (s Symbol) Entity() string {
	if !s.valid() {
		return ""
	}
	return table[s].entity
}

// Glyph returns the literal character.
func (s Symbol) Glyph() string {
	if !s.valid() {
		return ""
	}
	return table[s].glyph
}

func (s Symbol) String() string {
	return s.Name()
}

// Parse accepts a numeric entity, a named entity, a glyph, or a symbol name.
func Parse(raw string) (Symbol, error) {
	v := strings.TrimSpace(raw)
	for _, s := range All() {
		sp := table[s]
		switch {
		case v == sp.entity, v == sp.glyph, strings.EqualFold(v, sp.named), strings.EqualFold(v, sp.name):
			return s, nil
		}
	}
	// entities may arrive double-escaped from form posts
	if decoded := html.UnescapeString(v); decoded != v {
		return Parse(decoded)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, raw)
}

// Decode resolves every HTML entity in a stored symbol into literal text.
func Decode(stored string) string {
	return html.UnescapeString(stored)
}

// DecoratedPrefix reports the byte length of a trademark-family symbol at the
// start of s, in glyph or entity form. Zero means s is not decorated.
func DecoratedPrefix(s string) int {
	for _, sym := range All() {
		sp := table[sym]
		if strings.HasPrefix(s, sp.glyph) {
			return len(sp.glyph)
		}
		if hasFoldPrefix(s, sp.entity) {
			return len(sp.entity)
		}
		if hasFoldPrefix(s, sp.named) {
			return len(sp.named)
		}
	}
	return 0
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
