package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded pages. Each template is named after its file.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
