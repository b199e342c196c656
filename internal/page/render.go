package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

var aboutTemplate = template.Must(template.New("about.html").ParseFS(templateFS,
	"templates/about.html",
	"templates/partials/*.html",
))

// Render writes the full About page for v.
func Render(w io.Writer, v View) error {
	const op = "page.Render"

	if err := aboutTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
