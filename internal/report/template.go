package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/eadsgraphic/vizreport/internal/visualization"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Visualizations</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #222; }
h1 { font-size: 20px; margin-bottom: 4px; }
.meta { color: #666; font-size: 11px; margin-bottom: 16px; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
th { background: #2d3e50; color: #fff; text-align: left; padding: 6px; }
td { border-bottom: 1px solid #ddd; padding: 6px; vertical-align: top; }
tr:nth-child(even) td { background: #f4f6f8; }
</style>
</head>
<body>
<h1>Visualizations</h1>
<div class="meta">{{if .Firm}}Firm {{.Firm}} &middot; {{end}}{{len .Items}} item(s) &middot; generated {{.Generated}}</div>
{{if .Items}}<table>
<thead><tr><th>Name</th><th>Description</th><th>ID</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.ID}}</td></tr>
{{end}}</tbody>
</table>{{else}}<p>No visualizations.</p>{{end}}
</body>
</html>
`))

type summaryData struct {
	Firm      string
	Generated string
	Items     []visualization.Summary
}

// renderSummary builds the HTML handed to the PdfRenderer.
func renderSummary(firm string, items []visualization.Summary, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := summaryTmpl.Execute(&buf, summaryData{
		Firm:      firm,
		Generated: now.UTC().Format(time.RFC1123),
		Items:     items,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
