package quasar

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in Quasar template catalog rooted at the
// template identifiers ("quasar/router/foo.ts.tpl").
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
