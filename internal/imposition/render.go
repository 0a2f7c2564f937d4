package imposition

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/sheet.html.tmpl
var templateFS embed.FS

var sheetTemplate = template.Must(template.ParseFS(templateFS, "templates/sheet.html.tmpl"))

// Render writes a side as a standalone A4 landscape HTML page
func Render(w io.Writer, month string, sheet Sheet) error {
	return sheetTemplate.Execute(w, struct {
		Month string
		Sheet Sheet
	}{Month: month, Sheet: sheet})
}
