package template

import (
	"io"
)

// FilterFunc transforms a template value. param is nil when the filter is
// used without an argument.
type FilterFunc func(input any, param any) (any, error)

// TemplateRenderer is the seam between the file planner and a concrete
// template engine. Template names are catalog identifiers such as
// "quasar/router/foo.ts"; engines resolve the on-disk extension themselves.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	HasTemplate(name string) bool
	RegisterFilter(name string, fn FilterFunc) error
	GlobalContext(data any) error
}
