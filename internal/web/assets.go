package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/url"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Schemes allowed in content-supplied links. html/template rejects tel:
// on its own, which the footer needs.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

func safeURL(raw string) template.URL {
	u, err := url.Parse(raw)
	if err != nil || !linkSchemes[strings.ToLower(u.Scheme)] {
		return "#"
	}
	return template.URL(raw)
}

func loadTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"safeURL": safeURL}).
		ParseFS(templatesFS, "templates/*.html")
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
