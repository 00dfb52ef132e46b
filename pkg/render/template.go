package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed page.html
var defaultPage string

// LoadTemplate parses the page template at path. An empty path selects the
// embedded default shell; an explicit path that cannot be read is an error
// the caller treats as fatal.
func LoadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.New("page").Parse(defaultPage)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tpl, err := template.New(filepath.Base(path)).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tpl, nil
}
