package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/you/elearnauth/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed mail templates, addressed by name without extension
type Templates struct {
	set *template.Template
}

// LoadTemplates parses the embedded mail templates
func LoadTemplates() (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Lookup returns the named template or an error wrapping domain.ErrDeliveryFailed
func (t *Templates) Lookup(name string) (*template.Template, error) {
	tpl := t.set.Lookup(name + ".html")
	if tpl == nil {
		return nil, fmt.Errorf("%w: unknown template %q", domain.ErrDeliveryFailed, name)
	}
	return tpl, nil
}

// Render executes the named template with data
func (t *Templates) Render(name string, data map[string]any) (string, error) {
	tpl, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: render %s: %w", domain.ErrDeliveryFailed, name, err)
	}
	return buf.String(), nil
}
