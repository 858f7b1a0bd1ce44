package httpserver

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderView executes the named view into memory so a failure never leaves a half-written page.
func renderView(name string, model any) ([]byte, error) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
