package scaffold

import (
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// Field is a normalised resource field with its derived relation flags.
type Field struct {
	Name           string               `json:"name"`
	Type           pkgopenapi.FieldType `json:"type"`
	Description    string               `json:"description,omitempty"`
	Range          string               `json:"range,omitempty"`
	Required       bool                 `json:"required"`
	ReadOnly       bool                 `json:"readOnly"`
	Reference      bool                 `json:"reference"`
	Embedded       bool                 `json:"embedded"`
	MaxCardinality *int                 `json:"maxCardinality"`
	InputType      string               `json:"inputType"`
	Step           string               `json:"step,omitempty"`
	Sortable       bool                 `json:"sortable"`
	IsReferences   bool                 `json:"isReferences"`
	IsEmbeddeds    bool                 `json:"isEmbeddeds"`
	IsRelation     bool                 `json:"isRelation"`
	IsRelations    bool                 `json:"isRelations"`
}

// FieldSet holds normalised fields in first-seen order with a name index so
// later stages can annotate entries in place.
type FieldSet struct {
	fields []Field
	index  map[string]int
}

// NormalizeFields concatenates writable then readable fields, keeps the
// first occurrence of every name and derives the relation flags.
func NormalizeFields(writable, readable []pkgopenapi.Field) *FieldSet {
	set := &FieldSet{
		fields: make([]Field, 0, len(writable)+len(readable)),
		index:  make(map[string]int, len(writable)+len(readable)),
	}
	for _, group := range [][]pkgopenapi.Field{writable, readable} {
		for _, raw := range group {
			if _, exists := set.index[raw.Name]; exists {
				continue
			}
			set.index[raw.Name] = len(set.fields)
			set.fields = append(set.fields, normalizeField(raw))
		}
	}
	return set
}

func normalizeField(raw pkgopenapi.Field) Field {
	single := raw.MaxCardinality != nil && *raw.MaxCardinality == 1

	field := Field{
		Name:         raw.Name,
		Type:         raw.Type,
		Description:  raw.Description,
		Range:        raw.Range,
		Required:     raw.Required,
		ReadOnly:     raw.ReadOnly,
		Reference:    raw.Reference,
		Embedded:     raw.Embedded,
		IsReferences: raw.Reference && !single,
		IsEmbeddeds:  raw.Embedded && !single,
		IsRelation:   raw.Reference || raw.Embedded,
	}
	if raw.MaxCardinality != nil {
		n := *raw.MaxCardinality
		field.MaxCardinality = &n
	}
	field.IsRelations = field.IsEmbeddeds || field.IsReferences
	field.InputType, field.Step = inputType(field)
	return field
}

// inputType maps a field to the HTML input type used by generated forms.
func inputType(field Field) (string, string) {
	if field.IsRelation {
		return "text", ""
	}
	switch field.Type {
	case pkgopenapi.FieldTypeInteger:
		return "number", "1"
	case pkgopenapi.FieldTypeNumber:
		return "number", "any"
	case pkgopenapi.FieldTypeBoolean:
		return "checkbox", ""
	case pkgopenapi.FieldTypeDate:
		return "date", ""
	case pkgopenapi.FieldTypeDateTime:
		return "datetime-local", ""
	case pkgopenapi.FieldTypeTime:
		return "time", ""
	default:
		return "text", ""
	}
}

// Len reports the number of fields.
func (s *FieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// All returns a copy of the fields in order.
func (s *FieldSet) All() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.clone()
	}
	return out
}

// Lookup returns a copy of the field registered under name.
func (s *FieldSet) Lookup(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx].clone(), true
}

// MarkSortable flags the named field as sortable. It reports whether the
// field exists.
func (s *FieldSet) MarkSortable(name string) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index[name]
	if !ok {
		return false
	}
	s.fields[idx].Sortable = true
	return true
}

func (f Field) clone() Field {
	if f.MaxCardinality != nil {
		n := *f.MaxCardinality
		f.MaxCardinality = &n
	}
	return f
}
