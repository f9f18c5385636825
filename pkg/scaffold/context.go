package scaffold

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// ErrInvalidResourceName reports a resource title that yields no usable
// identifier for paths and generated imports.
var ErrInvalidResourceName = errors.New("scaffold: invalid resource name")

// DefaultHydraPrefix is the JSON-LD prefix API Platform uses for Hydra
// collection keys.
const DefaultHydraPrefix = "hydra:"

// FilterParameter is a filter control in the generated list page: the joined
// field metadata plus the query parameter driving it.
type FilterParameter struct {
	Field
	Variable   string     `json:"variable"`
	FilterType FilterType `json:"filterType"`
	Multiple   bool       `json:"multiple"`
}

// RenderContext is the data handed to every resource template. JSON names
// are the variable names templates use.
type RenderContext struct {
	ResourceName     string            `json:"name"`
	Title            string            `json:"title"`
	LowercaseName    string            `json:"lc"`
	TitleCaseName    string            `json:"titleUcFirst"`
	Fields           []Field           `json:"fields"`
	Parameters       []FilterParameter `json:"parameters"`
	FormFields       []Field           `json:"formFields"`
	HasRelationField bool              `json:"hasIsRelations"`
	HasDateField     bool              `json:"hasDateField"`
	HydraPrefix      string            `json:"hydraPrefix"`
	Labels           Labels            `json:"labels"`
	LabelKeys        []string          `json:"labelKeys"`
}

type contextConfig struct {
	hydraPrefix string
}

// ContextOption customises AssembleContext.
type ContextOption func(*contextConfig)

// WithHydraPrefix overrides the Hydra key prefix exposed to templates.
func WithHydraPrefix(prefix string) ContextOption {
	return func(cfg *contextConfig) {
		cfg.hydraPrefix = prefix
	}
}

// AssembleContext joins classified parameters with the field set and builds
// the render context.
//
// order[x] parameters mark field x sortable in fields and never become
// filters. A parameter named after a field becomes a copy of that field.
// exists[x] becomes an existence filter on x, or a bare filter named x when
// no such field exists. Any other parameter (pagination, unknown names,
// a lone x[] without a field of that exact name) is dropped.
//
// fields is annotated in place; labels is copied before merging.
func AssembleContext(resource pkgopenapi.Resource, fields *FieldSet, params []Parameter, labels Labels, options ...ContextOption) RenderContext {
	cfg := contextConfig{hydraPrefix: DefaultHydraPrefix}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	for _, param := range params {
		if param.Variable.Kind != VariableOrder {
			continue
		}
		if _, exact := fields.Lookup(param.Variable.Raw); exact {
			continue
		}
		fields.MarkSortable(param.Variable.Name)
	}

	filters := make([]FilterParameter, 0, len(params))
	for _, param := range params {
		if filter, ok := joinParameter(fields, param); ok {
			filters = append(filters, filter)
		}
	}

	all := fields.All()
	formFields := make([]Field, len(all))
	for i, field := range all {
		formFields[i] = field.clone()
	}

	title := strings.TrimSpace(resource.Title)
	if title == "" {
		title = resource.Name
	}
	ident := identifier(title)

	ctx := RenderContext{
		ResourceName:  resource.Name,
		Title:         title,
		LowercaseName: strings.ToLower(ident),
		TitleCaseName: upperFirst(ident),
		Fields:        all,
		Parameters:    filters,
		FormFields:    formFields,
		HydraPrefix:   cfg.hydraPrefix,
		LabelKeys:     resourceLabelKeys(formFields, all),
	}
	for _, field := range all {
		if field.IsRelations {
			ctx.HasRelationField = true
		}
		if field.Type == pkgopenapi.FieldTypeDateTime {
			ctx.HasDateField = true
		}
	}

	merged := labels.Clone()
	for _, key := range ctx.LabelKeys {
		if _, exists := merged[key]; !exists {
			merged[key] = key
		}
	}
	ctx.Labels = merged
	return ctx
}

func joinParameter(fields *FieldSet, param Parameter) (FilterParameter, bool) {
	if field, ok := fields.Lookup(param.Variable.Raw); ok {
		return FilterParameter{
			Field:      field,
			Variable:   param.Variable.Raw,
			FilterType: FilterDefault,
			Multiple:   param.Multiple,
		}, true
	}

	switch param.Variable.Kind {
	case VariableExists:
		field, ok := fields.Lookup(param.Variable.Name)
		if !ok {
			field = Field{
				Name:      param.Variable.Name,
				Type:      param.Source.Type,
				InputType: "checkbox",
			}
		}
		return FilterParameter{
			Field:      field,
			Variable:   param.Variable.Raw,
			FilterType: FilterExists,
		}, true
	default:
		return FilterParameter{}, false
	}
}

// Validate reports whether the context names can be used as path segments
// and TypeScript identifiers.
func (c RenderContext) Validate() error {
	r, _ := utf8.DecodeRuneInString(c.LowercaseName)
	if c.LowercaseName == "" || unicode.IsDigit(r) {
		return fmt.Errorf("%w: %q", ErrInvalidResourceName, c.Title)
	}
	return nil
}

// identifier drops runes that cannot appear in a TypeScript identifier and
// capitalises each word after the first, so "book review" becomes
// "bookReview" and ".." becomes "".
func identifier(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	for i := 1; i < len(words); i++ {
		words[i] = upperFirst(words[i])
	}
	return strings.Join(words, "")
}

// upperFirst capitalises the first rune and leaves the rest untouched, so
// "bookReview" becomes "BookReview".
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
