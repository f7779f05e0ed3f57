package web

import (
	"html/template"
	"io"

	"github.com/Cyclone1070/vizagent/internal/report"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Agent Visualization Dashboard</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; }
.status { display: inline-block; padding: 0.2em 0.6em; border-radius: 4px; color: #fff; }
.status-success { background: #2e7d32; }
.status-error { background: #c62828; }
img { max-width: 100%; border: 1px solid #ddd; }
</style>
</head>
<body>
<h1>Agent Visualization Dashboard</h1>
<p><span class="status status-{{.Status}}">{{.Status}}</span></p>
<p>{{.Text}}</p>
{{if .Image}}<img src="{{.Image}}" alt="Agent-generated plot">{{else}}<p class="no-visualization">No visualization was produced.</p>{{end}}
</body>
</html>
`))

type dashboardView struct {
	Status string
	Text   string
	Image  template.URL
}

// renderDashboard writes the HTML page for rep. The data URI is produced by
// the report itself, so it is marked safe for the src attribute.
func renderDashboard(w io.Writer, rep report.Report) error {
	return dashboardTemplate.Execute(w, dashboardView{
		Status: string(rep.Status),
		Text:   rep.Text,
		Image:  template.URL(rep.DataURI()),
	})
}
