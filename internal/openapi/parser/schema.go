package parser

import (
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	relationshipExtensionKey = "x-relationships"

	relationshipTypeAttr   = "type"
	relationshipTargetAttr = "target"
	relationshipCardAttr   = "cardinality"
	relationshipEmbedAttr  = "embedded"
)

var relationshipKeyLookup = map[string]string{
	"type":        relationshipTypeAttr,
	"kind":        relationshipTypeAttr,
	"target":      relationshipTargetAttr,
	"range":       relationshipTargetAttr,
	"cardinality": relationshipCardAttr,
	"embedded":    relationshipEmbedAttr,
	"embed":       relationshipEmbedAttr,
}

// relationship is the normalised view of an x-relationships extension.
type relationship struct {
	target   string
	many     bool
	embedded bool
}

func relationshipFromExtensions(ext map[string]any) (relationship, bool) {
	if len(ext) == 0 {
		return relationship{}, false
	}
	raw, ok := ext[relationshipExtensionKey].(map[string]any)
	if !ok || len(raw) == 0 {
		return relationship{}, false
	}

	attrs := make(map[string]string, len(raw))
	for key, value := range raw {
		canonical, ok := relationshipKeyLookup[normaliseKey(key)]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			attrs[canonical] = strings.TrimSpace(v)
		case bool:
			if v {
				attrs[canonical] = "true"
			}
		}
	}

	cardinality := strings.ToLower(attrs[relationshipCardAttr])
	if cardinality == "" {
		cardinality = deriveCardinality(attrs[relationshipTypeAttr])
	}
	if cardinality == "" && attrs[relationshipTargetAttr] == "" {
		return relationship{}, false
	}

	return relationship{
		target:   attrs[relationshipTargetAttr],
		many:     cardinality == "many",
		embedded: attrs[relationshipEmbedAttr] == "true",
	}, true
}

func normaliseKey(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			builder.WriteRune(unicode.ToLower(r))
		}
	}
	return builder.String()
}

func deriveCardinality(relType string) string {
	switch normaliseKey(relType) {
	case "belongsto", "hasone", "manytoone", "onetoone":
		return "one"
	case "hasmany", "onetomany", "manytomany", "belongstomany":
		return "many"
	default:
		return ""
	}
}

// schemaType returns the first non-null type declared on the schema.
func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	for _, value := range schema.Type.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

// componentName extracts the component identifier from a local $ref.
func componentName(ref string) string {
	if ref == "" {
		return ""
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// resourceTitle strips serialization group suffixes API Platform appends to
// schema names: "Book.jsonld-book.read" and "Book-book.read" become "Book".
func resourceTitle(component string) string {
	title := component
	if idx := strings.IndexAny(title, ".-"); idx > 0 {
		title = title[:idx]
	}
	return title
}

// properties flattens allOf compositions into a single property map.
func properties(ref *openapi3.SchemaRef) map[string]*openapi3.SchemaRef {
	out := make(map[string]*openapi3.SchemaRef)
	collectProperties(ref, out, make(map[*openapi3.Schema]bool))
	return out
}

func collectProperties(ref *openapi3.SchemaRef, out map[string]*openapi3.SchemaRef, seen map[*openapi3.Schema]bool) {
	if ref == nil || ref.Value == nil || seen[ref.Value] {
		return
	}
	seen[ref.Value] = true
	for _, nested := range ref.Value.AllOf {
		collectProperties(nested, out, seen)
	}
	for name, prop := range ref.Value.Properties {
		out[name] = prop
	}
}

// requiredSet gathers required property names including allOf members.
func requiredSet(ref *openapi3.SchemaRef) map[string]bool {
	out := make(map[string]bool)
	var walk func(*openapi3.SchemaRef, map[*openapi3.Schema]bool)
	walk = func(r *openapi3.SchemaRef, seen map[*openapi3.Schema]bool) {
		if r == nil || r.Value == nil || seen[r.Value] {
			return
		}
		seen[r.Value] = true
		for _, name := range r.Value.Required {
			out[name] = true
		}
		for _, nested := range r.Value.AllOf {
			walk(nested, seen)
		}
	}
	walk(ref, make(map[*openapi3.Schema]bool))
	return out
}
