package httpapi

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 January 2006")
	},
	// linebreaksbr escapes s and turns its newlines into <br>.
	"linebreaksbr": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

// loadTemplates parses every page and include. Pages are looked up by file name.
func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/*.html",
		"templates/includes/*.html",
	)
}
