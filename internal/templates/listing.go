// Package templates renders HTML views of a presettings deck.
package templates

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck/spec"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

var deckTmpl = template.Must(template.New("deck").Parse(`{{define "table"}}<table>
<thead><tr><th>Card</th><th>Opp</th><th>Input</th>{{range .Headers}}<th>{{.}}</th>{{end}}<th>Identifier</th></tr></thead>
<tbody>
{{range .Rows}}{{if .Section}}<tr class="section"><td colspan="{{$.Cols}}">{{.Section}}</td></tr>
{{end}}<tr><td class="num">{{.Number}}</td><td>{{.Opp}}</td><td>{{.Input}}</td>{{range .Cells}}<td class="{{.Class}}">{{.Value}}<small>{{.Key}}</small></td>{{end}}<td class="num">{{.ID}}</td></tr>
{{end}}</tbody>
</table>
{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'IBM Plex Sans', sans-serif; background: #f5f0e8; color: #0d1117; margin: 2rem; }
table { border-collapse: collapse; width: 100%; font-size: 0.8rem; }
th, td { border: 1px solid #b8a898; padding: 2px 6px; }
th { background: #1e1e1e; color: #fff; }
td.num, td.val { text-align: right; font-family: 'IBM Plex Mono', monospace; }
td.val small { display: block; color: #6b5e4e; font-size: 0.65rem; }
td.missing { color: #c0392b; }
tr.section td { background: #d2dceb; font-weight: 600; }
pre.raw { background: #fff; padding: 1rem; border: 1px solid #b8a898; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Variant}} layout, {{.Count}} cards, output <code>{{.Output}}</code></p>
{{template "table" .Table}}<h2>Deck</h2>
<pre class="raw">{{.Raw}}</pre>
</body>
</html>
{{end}}`))

type pageData struct {
	Title   string
	Variant string
	Count   int
	Output  string
	Table   *tableData
	Raw     string
}

type tableData struct {
	Headers []string
	Cols    int
	Rows    []rowData
}

// rowData is one card. Section is set on the first card of a section only.
type rowData struct {
	Section string
	Number  int
	Opp     string
	Input   string
	Cells   []cellData
	ID      string
}

type cellData struct {
	Class string
	Value string
	Key   string
}

func newTableData(ctx context.Context, d *domain.Deck) (*tableData, error) {
	t := &tableData{Cols: spec.FieldsPerCard + 4, Rows: make([]rowData, 0, len(d.Cards))}
	for i := 1; i <= spec.FieldsPerCard; i++ {
		t.Headers = append(t.Headers, fmt.Sprintf("Field %d", i))
	}
	section := domain.Section(-1)
	for _, c := range d.Cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := rowData{
			Number: c.Number,
			Opp:    domain.OpportunityLetter(c.Opportunity),
			Input:  c.Input,
			ID:     c.ID,
			Cells:  make([]cellData, spec.FieldsPerCard),
		}
		if c.Section != section {
			section = c.Section
			r.Section = section.String()
		}
		for i := range r.Cells {
			k := key(c, i)
			class := "val"
			if k != "" && missing(c, k) {
				class += " missing"
			}
			r.Cells[i] = cellData{Class: class, Value: field(c, i), Key: k}
		}
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// Listing renders a standalone HTML page with one table row per card and,
// below it, the raw deck text.
func Listing(d *domain.Deck) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		table, err := newTableData(ctx, d)
		if err != nil {
			return err
		}
		m := d.Mission
		return deckTmpl.ExecuteTemplate(w, "page", pageData{
			Title:   fmt.Sprintf("RTCC TLI presettings · %s · day %03d/%d", m.Name, m.LaunchDay, m.Year),
			Variant: string(d.Variant),
			Count:   len(d.Cards),
			Output:  m.Output,
			Table:   table,
			Raw:     strings.Join(d.Lines(), "\n"),
		})
	})
}

// DeckTable renders the card table alone, for embedding.
func DeckTable(d *domain.Deck) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		table, err := newTableData(ctx, d)
		if err != nil {
			return err
		}
		return deckTmpl.ExecuteTemplate(w, "table", table)
	})
}

// HTMLReport writes the Listing page as a deck report.
type HTMLReport struct{}

func (HTMLReport) Name() string { return "html" }

func (HTMLReport) Write(ctx context.Context, d *domain.Deck, w io.Writer) error {
	return Listing(d).Render(ctx, w)
}
