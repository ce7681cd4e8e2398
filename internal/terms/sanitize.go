package terms

import (
	"strings"

	"github.com/danmuck/petty/internal/symbols"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Row is one submitted admin form row. Key is the form row identifier and
// is only used for ordering and error reporting.
type Row struct {
	Key    string `json:"key,omitempty"`
	Term   string `json:"term"`
	Symbol string `json:"symbol"`
}

// Rejection describes a dropped row.
type Rejection struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText cleans a single-line text field: markup is stripped,
// whitespace runs collapse to one space, and the result is trimmed.
func SanitizeText(raw string) string {
	stripped := html.UnescapeString(textPolicy.Sanitize(raw))
	return strings.Join(strings.Fields(stripped), " ")
}

// Sanitize converts submitted rows into a stored mapping. Rows with an empty
// term are skipped silently; rows with an unknown symbol are rejected. The
// stored symbol is always the numeric entity form.
func Sanitize(rows []Row) (Mapping, []Rejection) {
	out := make(Mapping, 0, len(rows))
	var rejected []Rejection
	for _, row := range rows {
		term := SanitizeText(row.Term)
		if term == "" {
			continue
		}
		sym, err := symbols.Parse(row.Symbol)
		if err != nil {
			rejected = append(rejected, Rejection{Key: row.Key, Reason: err.Error()})
			continue
		}
		out = out.Set(term, sym.Entity())
	}
	return out, rejected
}
