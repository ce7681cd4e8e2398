package server

import (
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"github.com/danmuck/petty/internal/symbols"
	"github.com/danmuck/petty/internal/terms"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type adminRow struct {
	Term     string
	Selected symbols.Symbol
}

type adminOption struct {
	Entity string
	Glyph  string
}

type adminView struct {
	Title    string
	Token    string
	Rows     []adminRow
	Options  []adminOption
	Rejected []terms.Rejection
	Error    string
}

func (s *Server) handleAdminPage(c *gin.Context) {
	m, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.storeFailure(c, "load", err)
		return
	}
	c.HTML(http.StatusOK, "admin", s.adminView(c, m, nil))
}

// handleAdminSubmit accepts the settings form: terms[key]=value and
// symbols[key]=entity, one pair per row.
func (s *Server) handleAdminSubmit(c *gin.Context) {
	ctx := c.Request.Context()
	rows := formRows(c.PostFormMap("terms"), c.PostFormMap("symbols"))
	m, rejected := terms.Sanitize(rows)
	if err := s.store.Save(ctx, m); err != nil {
		s.storeFailure(c, "save", err)
		return
	}
	log.Info().Int("terms", m.Len()).Int("rejected", len(rejected)).Msg("admin form saved")

	if len(rejected) > 0 {
		c.HTML(http.StatusUnprocessableEntity, "admin", s.adminView(c, m, rejected))
		return
	}
	target := "/admin"
	if token := c.PostForm("token"); token != "" {
		target += "?token=" + template.URLQueryEscaper(token)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) adminView(c *gin.Context, m terms.Mapping, rejected []terms.Rejection) adminView {
	view := adminView{
		Title:    s.Name,
		Token:    c.Query("token"),
		Rejected: rejected,
	}
	if view.Token == "" {
		view.Token = c.PostForm("token")
	}
	for _, sym := range symbols.All() {
		view.Options = append(view.Options, adminOption{Entity: sym.Entity(), Glyph: sym.Glyph()})
	}
	for _, e := range m {
		sym, err := symbols.Parse(e.Symbol)
		if err != nil {
			sym = symbols.Registered
		}
		view.Rows = append(view.Rows, adminRow{Term: e.Term, Selected: sym})
	}
	return view
}

// formRows orders submitted rows. Rendered rows are keyed by their index
// and keep that order; rows added in the browser follow in key order.
func formRows(termValues, symbolValues map[string]string) []terms.Row {
	keys := make([]string, 0, len(termValues))
	for k := range termValues {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, ierr := strconv.Atoi(keys[i])
		pj, jerr := strconv.Atoi(keys[j])
		switch {
		case ierr == nil && jerr == nil:
			return pi < pj
		case (ierr == nil) != (jerr == nil):
			return ierr == nil
		case len(keys[i]) != len(keys[j]):
			return len(keys[i]) < len(keys[j])
		default:
			return keys[i] < keys[j]
		}
	})

	rows := make([]terms.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, terms.Row{Key: k, Term: termValues[k], Symbol: symbolValues[k]})
	}
	return rows
}

var adminTemplate = template.Must(template.New("admin").Funcs(template.FuncMap{
	"selected": func(row adminRow, entity string) bool {
		return row.Selected.Entity() == entity
	},
}).Parse(adminPage))

const adminPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}} symbol settings</title></head>
<body>
<h1>Trademark Symbol Settings</h1>
{{if .Rejected}}<ul class="errors">{{range .Rejected}}<li>{{.Key}}: {{.Reason}}</li>{{end}}</ul>{{end}}
<form method="post" action="/admin">
<input type="hidden" name="token" value="{{.Token}}">
<table id="terms-table">
<thead><tr><th>Term</th><th>Symbol</th><th>Action</th></tr></thead>
<tbody>
{{- $opts := .Options}}
{{- range $i, $row := .Rows}}
<tr>
<td><input type="text" name="terms[{{$i}}]" value="{{.Term}}"></td>
<td><select name="symbols[{{$i}}]">
{{- range $opts}}<option value="{{.Entity}}"{{if selected $row .Entity}} selected{{end}}>{{.Glyph}}</option>{{end -}}
</select></td>
<td><button type="button" class="remove-row">Remove</button></td>
</tr>
{{- end}}
</tbody>
</table>
<button type="button" class="add-row">Add Term</button>
<button type="submit">Save Changes</button>
</form>
<script>
document.querySelector('.add-row').addEventListener('click', function () {
  var body = document.getElementById('terms-table').tBodies[0];
  var key = 'new' + body.rows.length;
  var row = body.insertRow();
  row.innerHTML = '<td><input type="text" name="terms[' + key + ']" value=""></td>' +
    '<td><select name="symbols[' + key + ']">' +
    '<option value="&#38;#174;">&#174;</option>' +
    '<option value="&#38;#169;">&#169;</option>' +
    '<option value="&#38;#8482;">&#8482;</option>' +
    '</select></td>' +
    '<td><button type="button" class="remove-row">Remove</button></td>';
});
document.addEventListener('click', function (event) {
  if (event.target.classList.contains('remove-row')) {
    event.preventDefault();
    event.target.closest('tr').remove();
  }
});
</script>
</body>
</html>
`
