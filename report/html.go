package report

import (
	"html/template"
	"io"
	"strconv"

	"github.com/gwaghmar/examdiff/libdiff"
)

type htmlSpan struct {
	Class string
	Text  string
}

type htmlRow struct {
	LeftNo     string
	RightNo    string
	LeftClass  string
	RightClass string
	Left       []htmlSpan
	Right      []htmlSpan
}

type htmlPage struct {
	FromName string
	ToName   string
	Stats    libdiff.Stats
	Rows     []htmlRow
}

var htmlTmpl = template.Must(template.New("diff").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.FromName}} vs {{.ToName}}</title>
<style>
body { font-family: monospace; margin: 0; }
h1 { font-size: 1em; padding: 8px; }
p.stats { padding: 0 8px; color: #555; }
table { border-collapse: collapse; width: 100%; table-layout: fixed; }
td.no { width: 3em; text-align: right; color: #999; padding: 0 6px; user-select: none; }
td.line { white-space: pre-wrap; word-break: break-all; padding: 0 6px; }
td.eq { }
td.add { background: #e6ffe6; }
td.del { background: #ffe6e6; }
td.blank { background: #f4f4f4; }
span.add { background: #9e9; }
span.del { background: #e99; }
</style>
</head>
<body>
<h1>{{.FromName}} &rarr; {{.ToName}}</h1>
<p class="stats">{{.Stats.Added}} added, {{.Stats.Removed}} removed, {{.Stats.Modified}} modified, {{.Stats.Unchanged}} unchanged</p>
<table>
{{- range .Rows}}
<tr><td class="no">{{.LeftNo}}</td><td class="line {{.LeftClass}}">
{{- range .Left}}{{if .Class}}<span class="{{.Class}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}{{end -}}
</td><td class="no">{{.RightNo}}</td><td class="line {{.RightClass}}">
{{- range .Right}}{{if .Class}}<span class="{{.Class}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}{{end -}}
</td></tr>
{{- end}}
</table>
</body>
</html>
`))

// WriteHTML renders a standalone side-by-side HTML page.
func WriteHTML(w io.Writer, fromName, toName string, res *libdiff.Result) error {
	page := &htmlPage{
		FromName: fromName,
		ToName:   toName,
		Stats:    res.Stats,
		Rows:     htmlRows(res),
	}
	return htmlTmpl.Execute(w, page)
}

func htmlRows(res *libdiff.Result) []htmlRow {
	var rows []htmlRow
	for _, g := range res.Groups {
		switch {
		case g.Kind == libdiff.GroupEqual || g.Elided:
			rows = append(rows, elidedRows(res, g)...)
		case g.Kind == libdiff.GroupDelete:
			for i := 0; i < g.FromLen; i++ {
				rows = append(rows, htmlRow{
					LeftNo:     strconv.Itoa(g.FromStart + i + 1),
					LeftClass:  "del",
					RightClass: "blank",
					Left:       plainSpans(res.From[g.FromStart+i].Text),
				})
			}
		case g.Kind == libdiff.GroupInsert:
			for i := 0; i < g.ToLen; i++ {
				rows = append(rows, htmlRow{
					RightNo:    strconv.Itoa(g.ToStart + i + 1),
					LeftClass:  "blank",
					RightClass: "add",
					Right:      plainSpans(res.To[g.ToStart+i].Text),
				})
			}
		default:
			rows = append(rows, replaceRows(res, g)...)
		}
	}
	return rows
}

// elidedRows renders equal groups and elided blank-line groups, which
// may be present on one side only.
func elidedRows(res *libdiff.Result, g libdiff.Group) []htmlRow {
	var rows []htmlRow
	n := max(g.FromLen, g.ToLen)
	for i := 0; i < n; i++ {
		var r htmlRow
		if i < g.FromLen {
			r.LeftNo = strconv.Itoa(g.FromStart + i + 1)
			r.LeftClass = "eq"
			r.Left = plainSpans(res.From[g.FromStart+i].Text)
		} else {
			r.LeftClass = "blank"
		}
		if i < g.ToLen {
			r.RightNo = strconv.Itoa(g.ToStart + i + 1)
			r.RightClass = "eq"
			r.Right = plainSpans(res.To[g.ToStart+i].Text)
		} else {
			r.RightClass = "blank"
		}
		rows = append(rows, r)
	}
	return rows
}

func replaceRows(res *libdiff.Result, g libdiff.Group) []htmlRow {
	var rows []htmlRow
	n := max(g.FromLen, g.ToLen)
	for i := 0; i < n; i++ {
		var r htmlRow
		if i < g.FromLen {
			r.LeftNo = strconv.Itoa(g.FromStart + i + 1)
			r.LeftClass = "del"
		} else {
			r.LeftClass = "blank"
		}
		if i < g.ToLen {
			r.RightNo = strconv.Itoa(g.ToStart + i + 1)
			r.RightClass = "add"
		} else {
			r.RightClass = "blank"
		}
		if i < g.FromLen && i < g.ToLen {
			spans := libdiff.Refine(res.From[g.FromStart+i].Text, res.To[g.ToStart+i].Text)
			r.Left = sideSpans(spans, libdiff.SpanRemoved, "del")
			r.Right = sideSpans(spans, libdiff.SpanAdded, "add")
		} else if i < g.FromLen {
			r.Left = plainSpans(res.From[g.FromStart+i].Text)
		} else {
			r.Right = plainSpans(res.To[g.ToStart+i].Text)
		}
		rows = append(rows, r)
	}
	return rows
}

func plainSpans(text string) []htmlSpan {
	return []htmlSpan{{Text: text}}
}

func sideSpans(spans []libdiff.Span, keep libdiff.SpanKind, class string) []htmlSpan {
	var out []htmlSpan
	for _, s := range spans {
		switch s.Kind {
		case libdiff.SpanEqual:
			out = append(out, htmlSpan{Text: s.Text})
		case keep:
			out = append(out, htmlSpan{Class: class, Text: s.Text})
		}
	}
	return out
}
