package substitute

import (
	"strings"
	"testing"

	"github.com/danmuck/petty/internal/terms"
)

const (
	reg = "&#174;"
	cpy = "&#169;"
	tm  = "&#8482;"
)

func TestApplyTable(t *testing.T) {
	tests := []struct {
		name string
		m    terms.Mapping
		in   string
		want string
	}{
		{
			name: "longest term protected",
			m:    terms.Mapping{{Term: "Woo", Symbol: tm}, {Term: "WooCommerce", Symbol: reg}},
			in:   "I use WooCommerce daily",
			want: "I use WooCommerce® daily",
		},
		{
			name: "not a whole word",
			m:    terms.Mapping{{Term: "Woo", Symbol: tm}},
			in:   "Woohoo",
			want: "Woohoo",
		},
		{
			name: "phrase preferred over prefix",
			m:    terms.Mapping{{Term: "Woo", Symbol: reg}, {Term: "Woo Partner", Symbol: tm}},
			in:   "Woo Partner event",
			want: "Woo Partner™ event",
		},
		{
			name: "configured casing wins",
			m:    terms.Mapping{{Term: "WordPress", Symbol: reg}},
			in:   "I love wordpress",
			want: "I love WordPress®",
		},
		{
			name: "every occurrence",
			m:    terms.Mapping{{Term: "Woo", Symbol: reg}},
			in:   "Woo, woo and WOO.",
			want: "Woo®, Woo® and Woo®.",
		},
		{
			name: "underscore and digits are word characters",
			m:    terms.Mapping{{Term: "Woo", Symbol: reg}},
			in:   "Woo_x 2Woo Woo2 (Woo)",
			want: "Woo_x 2Woo Woo2 (Woo®)",
		},
		{
			name: "markup neighbors are boundaries",
			m:    terms.Mapping{{Term: "WooPay", Symbol: tm}},
			in:   "<p><strong>WooPay</strong> is here</p>",
			want: "<p><strong>WooPay™</strong> is here</p>",
		},
		{
			name: "pattern syntax matched literally",
			m:    terms.Mapping{{Term: "C++ (beta)", Symbol: tm}, {Term: "a.b", Symbol: cpy}},
			in:   "Try C++ (beta) now, not axb but a.b",
			want: "Try C++ (beta)™ now, not axb but a.b©",
		},
		{
			name: "blank term skipped",
			m:    terms.Mapping{{Term: "   ", Symbol: reg}, {Term: "", Symbol: reg}},
			in:   "a   b",
			want: "a   b",
		},
		{
			name: "raw glyph symbol kept",
			m:    terms.Mapping{{Term: "Acme", Symbol: "©"}},
			in:   "acme corp",
			want: "Acme© corp",
		},
		{
			name: "non-ascii neighbors are boundaries",
			m:    terms.Mapping{{Term: "Woo", Symbol: reg}},
			in:   "éWoo",
			want: "éWoo®",
		},
		{
			name: "shorter term cannot reach inside placeholder",
			m:    terms.Mapping{{Term: "Managed WordPress", Symbol: tm}, {Term: "WordPress", Symbol: reg}},
			in:   "Managed WordPress beats WordPress",
			want: "Managed WordPress™ beats WordPress®",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.in, tt.m); got != tt.want {
				t.Fatalf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyEmptyMappingIsIdentity(t *testing.T) {
	for _, in := range []string{"", "plain", "<b>WordPress</b>", "##PLACEHOLDER_0##"} {
		if got := Apply(in, nil); got != in {
			t.Fatalf("nil mapping changed %q to %q", in, got)
		}
		if got := Apply(in, terms.Mapping{}); got != in {
			t.Fatalf("empty mapping changed %q to %q", in, got)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	m := terms.Defaults()
	in := "Managed WordPress and Woo Partner programs run on WooCommerce with WooPay for Woo stores."

	once := Apply(in, m)
	twice := Apply(once, m)
	if once != twice {
		t.Fatalf("second pass changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
	if strings.Count(once, "™") != 3 || strings.Count(once, "®") != 2 {
		t.Fatalf("unexpected symbol counts in %q", once)
	}
}

func TestApplyDecoratedEntitiesNotDoubled(t *testing.T) {
	m := terms.Mapping{{Term: "WordPress", Symbol: reg}, {Term: "Press", Symbol: tm}}
	in := "wordpress&reg; and WordPress&#174; and WordPress©"
	want := "WordPress&reg; and WordPress&#174; and WordPress©"
	if got := Apply(in, m); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRunWithoutSkipDecoratedDoubles(t *testing.T) {
	e := New(Options{})
	m := terms.Mapping{{Term: "WordPress", Symbol: reg}}
	if got := e.Apply("WordPress®", m); got != "WordPress®®" {
		t.Fatalf("got %q", got)
	}
}

func TestRunPlaceholderIndexSharedAcrossTerms(t *testing.T) {
	m := terms.Mapping{{Term: "Woo", Symbol: reg}, {Term: "Woo Partner", Symbol: tm}}
	res := New(DefaultOptions()).Run("Woo Partner and Woo and woo partner", m)

	wantTagged := "##PLACEHOLDER_0## and ##PLACEHOLDER_2## and ##PLACEHOLDER_1##"
	if res.Tagged != wantTagged {
		t.Fatalf("tagged = %q want %q", res.Tagged, wantTagged)
	}
	if len(res.Placeholders) != 3 {
		t.Fatalf("expected 3 placeholders, got %d", len(res.Placeholders))
	}
	for i, p := range res.Placeholders {
		if p.Index != i {
			t.Fatalf("placeholder %d has index %d", i, p.Index)
		}
	}
	if res.Placeholders[2].Term != "Woo" || res.Placeholders[2].Value != "Woo®" {
		t.Fatalf("unexpected third placeholder: %+v", res.Placeholders[2])
	}
	if res.Text != "Woo Partner™ and Woo® and Woo Partner™" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestRunEqualLengthKeepsStoredOrder(t *testing.T) {
	first := terms.Mapping{{Term: "Abc", Symbol: reg}, {Term: "abc", Symbol: tm}}
	if got := Apply("abc", first); got != "Abc®" {
		t.Fatalf("first order: got %q", got)
	}
	second := terms.Mapping{{Term: "abc", Symbol: tm}, {Term: "Abc", Symbol: reg}}
	if got := Apply("ABC", second); got != "abc™" {
		t.Fatalf("second order: got %q", got)
	}
}

func TestRunSymbolTextNotRematched(t *testing.T) {
	m := terms.Mapping{{Term: "Acme", Symbol: "TM"}, {Term: "TM", Symbol: reg}}
	if got := Apply("Acme", m); got != "AcmeTM" {
		t.Fatalf("got %q", got)
	}
}

func TestOrderedSortsByRuneLength(t *testing.T) {
	m := terms.Mapping{
		{Term: "ab", Symbol: reg},
		{Term: "ééé", Symbol: reg},
		{Term: "abcd", Symbol: reg},
		{Term: " ", Symbol: reg},
	}
	got := ordered(m)
	want := []string{"abcd", "ééé", "ab"}
	if len(got) != len(want) {
		t.Fatalf("unexpected ordered length: %+v", got)
	}
	for i := range want {
		if got[i].Term != want[i] {
			t.Fatalf("ordered[%d] = %q want %q", i, got[i].Term, want[i])
		}
	}
}

func TestApplyUsesUnicodeSimpleFolding(t *testing.T) {
	m := terms.Mapping{{Term: "kit", Symbol: reg}, {Term: "site", Symbol: tm}}
	got := Apply("Kit and ſite", m)
	if got != "kit® and site™" {
		t.Fatalf("unexpected folding result: %q", got)
	}
}
