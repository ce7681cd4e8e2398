package substitute

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/petty/internal/symbols"
	"github.com/danmuck/petty/internal/terms"
)

const placeholderFormat = "##PLACEHOLDER_%d##"

// Options tunes matching behavior.
type Options struct {
	// SkipDecorated leaves a match without a second symbol when it is already
	// followed by a trademark-family glyph or entity. The span is still
	// consumed so shorter terms cannot match inside it.
	SkipDecorated bool
}

// DefaultOptions makes Apply idempotent.
func DefaultOptions() Options {
	return Options{SkipDecorated: true}
}

// Placeholder records one tagged span.
type Placeholder struct {
	Index     int
	Token     string
	Term      string
	Symbol    string
	Value     string
	Decorated bool
}

// Result is the outcome of one Run.
type Result struct {
	Text         string
	Tagged       string
	Placeholders []Placeholder
}

// Engine applies a term mapping to text. It holds no state between calls and
// is safe for concurrent use.
type Engine struct {
	opts Options
}

// New builds an engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

var defaultEngine = New(DefaultOptions())

// Apply runs the default engine.
func Apply(text string, m terms.Mapping) string {
	return defaultEngine.Apply(text, m)
}

// Apply returns text with every configured term annotated.
func (e *Engine) Apply(text string, m terms.Mapping) string {
	return e.Run(text, m).Text
}

// Run applies m to text and reports the placeholders it created.
func (e *Engine) Run(text string, m terms.Mapping) Result {
	if len(m) == 0 || text == "" {
		return Result{Text: text, Tagged: text}
	}
	w := newWorking(text, e.opts)
	for _, entry := range ordered(m) {
		w.tag(entry)
	}
	return Result{
		Text:         w.resolve(),
		Tagged:       w.tagged(),
		Placeholders: w.placeholders,
	}
}

// ordered returns the non-blank entries longest first. Equal lengths keep
// their stored order.
func ordered(m terms.Mapping) []terms.Entry {
	out := make([]terms.Entry, 0, len(m))
	for _, e := range m {
		if strings.TrimSpace(e.Term) == "" {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].Term) > utf8.RuneCountInString(out[j].Term)
	})
	return out
}

// segment is either literal text (ref < 0) or a placeholder reference.
// Two literal segments are never adjacent.
type segment struct {
	text string
	ref  int
}

type working struct {
	opts         Options
	segs         []segment
	placeholders []Placeholder
}

func newWorking(text string, opts Options) *working {
	return &working{
		opts: opts,
		segs: []segment{{text: text, ref: -1}},
	}
}

func (w *working) tag(entry terms.Entry) {
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(entry.Term))
	glyph := symbols.Decode(entry.Symbol)

	next := make([]segment, 0, len(w.segs))
	for _, seg := range w.segs {
		if seg.ref >= 0 {
			next = append(next, seg)
			continue
		}
		next = append(next, w.split(seg.text, pattern, entry, glyph)...)
	}
	w.segs = next
}

// split replaces whole-word matches in one literal segment. Segment edges
// border either the text edge or a placeholder, and both count as non-word.
func (w *working) split(s string, pattern *regexp.Regexp, entry terms.Entry, glyph string) []segment {
	var out []segment
	last, pos := 0, 0
	for pos < len(s) {
		loc := pattern.FindStringIndex(s[pos:])
		if loc == nil || loc[0] == loc[1] {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !wholeWord(s, start, end) {
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + size
			continue
		}
		if start > last {
			out = append(out, segment{text: s[last:start], ref: -1})
		}
		decorated := w.opts.SkipDecorated && isDecorated(s[end:], glyph)
		out = append(out, segment{ref: w.add(entry, glyph, decorated)})
		last, pos = end, end
	}
	if last < len(s) {
		out = append(out, segment{text: s[last:], ref: -1})
	}
	return out
}

func (w *working) add(entry terms.Entry, glyph string, decorated bool) int {
	idx := len(w.placeholders)
	value := entry.Term + glyph
	if decorated {
		value = entry.Term
	}
	w.placeholders = append(w.placeholders, Placeholder{
		Index:     idx,
		Token:     fmt.Sprintf(placeholderFormat, idx),
		Term:      entry.Term,
		Symbol:    entry.Symbol,
		Value:     value,
		Decorated: decorated,
	})
	return idx
}

// tagged renders the working text with tokens in place.
func (w *working) tagged() string {
	var b strings.Builder
	for _, seg := range w.segs {
		if seg.ref >= 0 {
			b.WriteString(w.placeholders[seg.ref].Token)
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// resolve expands every token into its value in one pass, so a value is never
// scanned again.
func (w *working) resolve() string {
	var b strings.Builder
	for _, seg := range w.segs {
		if seg.ref >= 0 {
			b.WriteString(w.placeholders[seg.ref].Value)
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

func wholeWord(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isDecorated(rest, glyph string) bool {
	if symbols.DecoratedPrefix(rest) > 0 {
		return true
	}
	return glyph != "" && strings.HasPrefix(rest, glyph)
}
