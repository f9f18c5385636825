package openapi

import (
	"context"
	"errors"
	"strings"
)

// FieldType enumerates the normalised field types exposed to templates.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeDateTime FieldType = "dateTime"
	FieldTypeTime     FieldType = "time"
	FieldTypeArray    FieldType = "array"
	FieldTypeObject   FieldType = "object"
)

// API describes a parsed document: where the backend lives and which
// resources it exposes.
type API struct {
	Title      string
	Entrypoint string
	Resources  []Resource
}

// Resource returns the resource matching name or title (case-insensitive).
func (a API) Resource(name string) (Resource, bool) {
	needle := strings.TrimSpace(name)
	for _, res := range a.Resources {
		if strings.EqualFold(res.Name, needle) || strings.EqualFold(res.Title, needle) {
			return res, true
		}
	}
	return Resource{}, false
}

// Field is the raw metadata of a resource property as found in the
// document. MaxCardinality is nil when the relation is to-many (or unknown).
type Field struct {
	Name           string
	Type           FieldType
	Description    string
	Range          string
	Required       bool
	ReadOnly       bool
	Reference      bool
	Embedded       bool
	MaxCardinality *int
}

// Cardinality returns a pointer to n, used to build single-valued relations.
func Cardinality(n int) *int {
	return &n
}

// Parameter is a raw query parameter accepted by a resource collection.
type Parameter struct {
	Variable    string
	Type        FieldType
	Required    bool
	Description string
}

// ParameterFunc fetches the query parameters of a resource.
type ParameterFunc func(ctx context.Context) ([]Parameter, error)

// Resource is the logical entity scaffolding is generated for.
type Resource struct {
	// Name is the identifier, usually the collection path segment ("books").
	Name string
	// Title is the display name ("Book").
	Title string
	// Path is the collection endpoint ("/books").
	Path string

	WritableFields []Field
	ReadableFields []Field

	parameters ParameterFunc
}

// NewResource binds a parameter accessor to a resource description.
func NewResource(name, title string, parameters ParameterFunc) Resource {
	return Resource{
		Name:       name,
		Title:      title,
		parameters: parameters,
	}
}

// WithParameters returns a copy of the resource using fn as its parameter
// accessor.
func (r Resource) WithParameters(fn ParameterFunc) Resource {
	r.parameters = fn
	return r
}

// StaticParameters builds a ParameterFunc returning a copy of params.
func StaticParameters(params []Parameter) ParameterFunc {
	snapshot := append([]Parameter(nil), params...)
	return func(ctx context.Context) ([]Parameter, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return append([]Parameter(nil), snapshot...), nil
	}
}

// Parameters fetches the resource query parameters. Resources without an
// accessor report no parameters.
func (r Resource) Parameters(ctx context.Context) ([]Parameter, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if r.parameters == nil {
		return nil, nil
	}
	return r.parameters(ctx)
}
