package web

import (
	"html/template"
)

// The view is two fragments: the page shell and the roster list. htmx wires
// the refresh button to the roster endpoint and toggles the loading
// indicator while the fetch is in flight.

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>crewwatch</title>
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
    .indicator { display: none; }
    .htmx-request .indicator, .htmx-request.indicator { display: inline; }
    .status-failed { color: #b00; }
    ul { padding-left: 1.2rem; }
  </style>
</head>
<body>
  <h1>People currently in space</h1>
  <form hx-post="/crew/refresh" hx-target="#crew" hx-swap="innerHTML">
    <button type="submit">Refresh</button>
    <span class="indicator">Loading…</span>
  </form>
  <div id="crew">{{template "roster" .}}</div>
</body>
</html>
`))

var rosterTmpl = template.Must(pageTmpl.New("roster").Parse(`{{if eq .Status "failed"}}<p class="status-failed">Last fetch failed: {{.LastError}}</p>{{end}}
{{if .Members}}<ul>
{{range .Members}}  <li>{{.Name}}{{if .Craft}} ({{.Craft}}){{end}}</li>
{{end}}</ul>{{else}}<p>No roster loaded yet.</p>{{end}}
{{if not .FetchedAt.IsZero}}<p><small>Fetched at {{.FetchedAt.Format "2006-01-02 15:04:05 MST"}}</small></p>{{end}}
`))
