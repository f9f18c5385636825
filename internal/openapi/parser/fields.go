package parser

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

const iriReferenceFormat = "iri-reference"

// readableFields lists every property a client can read (writeOnly excluded).
func readableFields(ref *openapi3.SchemaRef) []pkgopenapi.Field {
	return convertFields(ref, func(schema *openapi3.Schema) bool {
		return !schema.WriteOnly
	})
}

// writableFields lists every property a client can submit (readOnly excluded).
func writableFields(ref *openapi3.SchemaRef) []pkgopenapi.Field {
	return convertFields(ref, func(schema *openapi3.Schema) bool {
		return !schema.ReadOnly
	})
}

// convertFields walks properties in name order; kin-openapi does not keep the
// document order of properties.
func convertFields(ref *openapi3.SchemaRef, keep func(*openapi3.Schema) bool) []pkgopenapi.Field {
	if ref == nil || ref.Value == nil {
		return nil
	}
	props := properties(ref)
	if len(props) == 0 {
		return nil
	}
	required := requiredSet(ref)

	names := make([]string, 0, len(props))
	for name := range props {
		if isMetadataProperty(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]pkgopenapi.Field, 0, len(names))
	for _, name := range names {
		prop := props[name]
		if prop == nil || prop.Value == nil || !keep(prop.Value) {
			continue
		}
		field := convertField(name, prop)
		field.Required = required[name]
		fields = append(fields, field)
	}
	return fields
}

// isMetadataProperty filters JSON-LD keywords (@id, @type, @context).
func isMetadataProperty(name string) bool {
	return len(name) > 0 && name[0] == '@'
}

func convertField(name string, ref *openapi3.SchemaRef) pkgopenapi.Field {
	schema := ref.Value
	field := pkgopenapi.Field{
		Name:        name,
		Type:        fieldType(schema),
		Description: sanitizeText(firstNonEmpty(schema.Description, schema.Title)),
		ReadOnly:    schema.ReadOnly,
	}

	if rel, ok := relationshipFromExtensions(schema.Extensions); ok {
		field.Reference = !rel.embedded
		field.Embedded = rel.embedded
		field.Range = rel.target
		if !rel.many {
			field.MaxCardinality = pkgopenapi.Cardinality(1)
		}
		return field
	}

	items := schema.Items
	many := schemaType(schema) == openapi3.TypeArray && items != nil && items.Value != nil
	target := ref
	if many {
		target = items
	}

	switch {
	case isIRIReference(target.Value):
		field.Reference = true
	case isEmbeddedObject(target):
		field.Embedded = true
		field.Range = resourceTitle(componentName(target.Ref))
	default:
		return field
	}
	if !many {
		field.MaxCardinality = pkgopenapi.Cardinality(1)
	}
	return field
}

func isIRIReference(schema *openapi3.Schema) bool {
	return schema != nil && schemaType(schema) == openapi3.TypeString && schema.Format == iriReferenceFormat
}

// isEmbeddedObject reports objects declared through a component reference.
// Inline objects without a $ref are plain JSON values, not relations.
func isEmbeddedObject(ref *openapi3.SchemaRef) bool {
	if ref == nil || ref.Ref == "" || ref.Value == nil {
		return false
	}
	kind := schemaType(ref.Value)
	return kind == openapi3.TypeObject || (kind == "" && len(properties(ref)) > 0)
}

func fieldType(schema *openapi3.Schema) pkgopenapi.FieldType {
	switch schemaType(schema) {
	case openapi3.TypeInteger:
		return pkgopenapi.FieldTypeInteger
	case openapi3.TypeNumber:
		return pkgopenapi.FieldTypeNumber
	case openapi3.TypeBoolean:
		return pkgopenapi.FieldTypeBoolean
	case openapi3.TypeArray:
		return pkgopenapi.FieldTypeArray
	case openapi3.TypeObject:
		return pkgopenapi.FieldTypeObject
	case openapi3.TypeString:
		switch schema.Format {
		case "date-time":
			return pkgopenapi.FieldTypeDateTime
		case "date":
			return pkgopenapi.FieldTypeDate
		case "time":
			return pkgopenapi.FieldTypeTime
		}
		return pkgopenapi.FieldTypeString
	default:
		if len(schema.Properties) > 0 || len(schema.AllOf) > 0 {
			return pkgopenapi.FieldTypeObject
		}
		return pkgopenapi.FieldTypeString
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
