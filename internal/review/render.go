package review

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/index.html
var indexTemplate string

// ordinalDate returns a string with the ordinal number of the day.
// helper function for html template
func ordinalDate(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// formatDateTime formats a time.Time object into the report's date format.
// helper function for html template
func formatDateTime(t time.Time) string {
	day := ordinalDate(t.Day())
	return fmt.Sprintf("%s %s %d %d:%02d:%02d %s", day, t.Month(), t.Year(), t.Hour()%12, t.Minute(), t.Second(), t.Format("pm"))
}

func newIndexTemplate() (*template.Template, error) {
	return template.New("index.html").
		Funcs(template.FuncMap{
			"formatDateTime": formatDateTime,
		}).
		Parse(indexTemplate)
}

// RenderHTML writes the ledger as the per-detector index document. An empty
// ledger renders an empty but well-formed document.
func (r *Review) RenderHTML(w io.Writer) error {
	tmpl, err := newIndexTemplate()
	if err != nil {
		return fmt.Errorf("failed to parse index template: %w", err)
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render review index: %w", err)
	}
	return nil
}
