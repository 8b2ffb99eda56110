package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
)

type TableConfig struct {
	FieldWidth   int
	MessageWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		FieldWidth:   24,
		MessageWidth: 72,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// HandleValidation renders the violation table for one document, or a
// confirmation line when the list is empty.
func (c *Reporter) HandleValidation(source string, violations []domain.Violation) error {
	funcMap := template.FuncMap{
		"formatRow": func(field, message string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.FieldWidth, field,
				c.config.MessageWidth, message)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.FieldWidth+2),
				strings.Repeat("-", c.config.MessageWidth+2))
		},
	}

	tmpl := `
{{.Source}}
{{if .Violations}}
{{len .Violations}} violation(s) found

{{separator}}
{{formatRow "Field" "Message"}}
{{separator}}
{{- range .Violations}}
{{formatRow .Field .Message}}
{{- end}}
{{separator}}
{{else}}
Configuration is valid.
{{end}}
`

	t, err := template.New("validation").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	data := struct {
		Source     string
		Violations []domain.Violation
	}{Source: source, Violations: violations}

	return t.Execute(c.writer, data)
}

// HandleCatalog prints a per-baseline policy count summary.
func (c *Reporter) HandleCatalog(catalog domain.BaselineCatalog) error {
	names := catalog.Baselines()
	sort.Strings(names)

	total := 0
	for _, name := range names {
		if _, err := fmt.Fprintf(c.writer, "%-20s %4d policies\n", name, len(catalog[name])); err != nil {
			return err
		}
		total += len(catalog[name])
	}
	_, err := fmt.Fprintf(c.writer, "%-20s %4d policies\n", "TOTAL", total)
	return err
}
