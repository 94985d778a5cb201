package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"flip-menu/lang"
	"flip-menu/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"dict": func(values ...any) (map[string]any, error) {
		if len(values)%2 != 0 {
			return nil, errors.New("invalid dict call")
		}
		dict := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, errors.New("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"formatMoney": func(val any) string {
		return humanize.Commaf(cast.ToFloat64(val))
	},
	"t": lang.T,
	"name": func(l string, v any) string {
		switch x := v.(type) {
		case models.MenuItem:
			return lang.Name(l, x.NameTh, x.NameEn)
		case models.Category:
			return lang.Name(l, x.Name, x.NameEn)
		case *models.Category:
			return lang.Name(l, x.Name, x.NameEn)
		}
		return cast.ToString(v)
	},
	"statusLabel": func(l string, s models.Status) string {
		return lang.T(l, "status_"+string(s))
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// loadTemplates parses layout.html together with each page so that every
// page can define its own "content" block.
func loadTemplates() (map[string]*template.Template, error) {
	layout, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		name := path.Base(p)
		if name == "layout.html" {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
