package symbols

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Symbol
	}{
		{raw: "&#174;", want: Registered},
		{raw: "&reg;", want: Registered},
		{raw: "®", want: Registered},
		{raw: " Registered ", want: Registered},
		{raw: "&amp;#174;", want: Registered},
		{raw: "&#169;", want: Copyright},
		{raw: "&COPY;", want: Copyright},
		{raw: "©", want: Copyright},
		{raw: "&#8482;", want: Trademark},
		{raw: "&trade;", want: Trademark},
		{raw: "™", want: Trademark},
		{raw: "trademark", want: Trademark},
	}
	for _, tc := range tests {
		got, err := Parse(tc.raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %v want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "TM", "&#8480;", "&amp;"} {
		if _, err := Parse(raw); !errors.Is(err, ErrUnknownSymbol) {
			t.Fatalf("Parse(%q) expected ErrUnknownSymbol, got %v", raw, err)
		}
	}
}

func TestDecode(t *testing.T) {
	for _, s := range All() {
		if got := Decode(s.Entity()); got != s.Glyph() {
			t.Fatalf("Decode(%q) = %q want %q", s.Entity(), got, s.Glyph())
		}
	}
	if got := Decode("(R)"); got != "(R)" {
		t.Fatalf("plain text changed: %q", got)
	}
}

func TestDecoratedPrefix(t *testing.T) {
	tests := map[string]int{
		"® rest":        len("®"),
		"™":             len("™"),
		"&#169; x":      len("&#169;"),
		"&TRADE;":       len("&trade;"),
		"&reg":          0,
		" ®":            0,
		"":              0,
		"&#8482;&#174;": len("&#8482;"),
	}
	for in, want := range tests {
		if got := DecoratedPrefix(in); got != want {
			t.Fatalf("DecoratedPrefix(%q) = %d want %d", in, got, want)
		}
	}
}

func TestInvalidSymbol(t *testing.T) {
	s := Symbol(9)
	if s.Entity() != "" || s.Glyph() != "" || s.Name() != "symbol(9)" {
		t.Fatalf("unexpected invalid symbol rendering: %q %q %q", s.Entity(), s.Glyph(), s.Name())
	}
}
