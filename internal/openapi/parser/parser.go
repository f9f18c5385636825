package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/jinzhu/inflection"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// preferred response media types, most specific first.
var collectionMediaTypes = []string{"application/ld+json", "application/json", "application/hal+json"}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// API extracts the entrypoint and every collection resource from doc.
func (p *Parser) API(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.API, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.API{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.API{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.API{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.API{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return pkgopenapi.API{}, errors.New("openapi parser: document does not contain any paths")
	}

	api := pkgopenapi.API{Entrypoint: entrypoint(spec)}
	if spec.Info != nil {
		api.Title = spec.Info.Title
	}

	paths := spec.Paths.Map()
	for _, path := range sortedPaths(paths) {
		if err := ctx.Err(); err != nil {
			return pkgopenapi.API{}, err
		}
		res, ok := p.collectResource(path, paths)
		if !ok {
			continue
		}
		api.Resources = append(api.Resources, res)
	}

	sort.SliceStable(api.Resources, func(i, j int) bool {
		return api.Resources[i].Name < api.Resources[j].Name
	})
	return api, nil
}

func entrypoint(spec *openapi3.T) string {
	for _, server := range spec.Servers {
		if server == nil {
			continue
		}
		if url := strings.TrimRight(strings.TrimSpace(server.URL), "/"); url != "" {
			return url
		}
	}
	return ""
}

// collectResource treats a path without template segments whose GET returns
// a collection as a resource.
func (p *Parser) collectResource(path string, paths map[string]*openapi3.PathItem) (pkgopenapi.Resource, bool) {
	if strings.Contains(path, "{") {
		return pkgopenapi.Resource{}, false
	}
	item := paths[path]
	if item == nil || item.Get == nil {
		return pkgopenapi.Resource{}, false
	}

	itemSchema, ok := collectionItemSchema(item.Get.Responses)
	if !ok {
		return pkgopenapi.Resource{}, false
	}

	name := lastSegment(path)
	if name == "" {
		return pkgopenapi.Resource{}, false
	}
	title := resourceTitle(componentName(itemSchema.Ref))
	if title == "" {
		title = strcase.ToPascal(inflection.Singular(name))
	}

	readable := readableFields(itemSchema)
	writable := writableFields(writeSchema(path, item, paths))
	if p.options.SkipEmptyResources && len(readable) == 0 && len(writable) == 0 {
		return pkgopenapi.Resource{}, false
	}

	res := pkgopenapi.NewResource(name, title, pkgopenapi.StaticParameters(queryParameters(item)))
	res.Path = path
	res.ReadableFields = readable
	res.WritableFields = writable
	return res, true
}

func lastSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// collectionItemSchema finds the schema of a collection member in a
// successful GET response: plain arrays, hydra:member envelopes and
// member envelopes are recognised.
func collectionItemSchema(responses *openapi3.Responses) (*openapi3.SchemaRef, bool) {
	if responses == nil {
		return nil, false
	}
	ref := responses.Status(200)
	if ref == nil || ref.Value == nil {
		return nil, false
	}
	schema := mediaSchema(ref.Value.Content)
	if schema == nil || schema.Value == nil {
		return nil, false
	}

	if schemaType(schema.Value) == openapi3.TypeArray {
		return schema.Value.Items, schema.Value.Items != nil
	}
	props := properties(schema)
	for _, key := range []string{"hydra:member", "member", "items", "data"} {
		member, ok := props[key]
		if !ok || member == nil || member.Value == nil {
			continue
		}
		if schemaType(member.Value) == openapi3.TypeArray && member.Value.Items != nil {
			return member.Value.Items, true
		}
	}
	return nil, false
}

func mediaSchema(content openapi3.Content) *openapi3.SchemaRef {
	if len(content) == 0 {
		return nil
	}
	for _, mediaType := range collectionMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if mt := content[keys[0]]; mt != nil {
		return mt.Schema
	}
	return nil
}

// writeSchema picks the request body of the collection POST, falling back to
// the item PUT/PATCH operations.
func writeSchema(path string, collection *openapi3.PathItem, paths map[string]*openapi3.PathItem) *openapi3.SchemaRef {
	if schema := requestSchema(collection.Post); schema != nil {
		return schema
	}
	for _, key := range sortedPaths(paths) {
		item := paths[key]
		if item == nil || !isItemPath(path, key) {
			continue
		}
		if schema := requestSchema(item.Put); schema != nil {
			return schema
		}
		if schema := requestSchema(item.Patch); schema != nil {
			return schema
		}
	}
	return nil
}

func sortedPaths(paths map[string]*openapi3.PathItem) []string {
	keys := make([]string, 0, len(paths))
	for key := range paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isItemPath(collection, candidate string) bool {
	rest, ok := strings.CutPrefix(candidate, strings.TrimRight(collection, "/")+"/")
	return ok && strings.HasPrefix(rest, "{") && strings.HasSuffix(rest, "}") && !strings.Contains(rest, "/")
}

func requestSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	return mediaSchema(op.RequestBody.Value.Content)
}

// queryParameters lists operation-level query parameters followed by
// path-level ones not overridden by the operation.
func queryParameters(item *openapi3.PathItem) []pkgopenapi.Parameter {
	var out []pkgopenapi.Parameter
	seen := make(map[string]bool)
	add := func(params openapi3.Parameters) {
		for _, ref := range params {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
				continue
			}
			value := ref.Value
			if seen[value.Name] {
				continue
			}
			seen[value.Name] = true
			param := pkgopenapi.Parameter{
				Variable:    value.Name,
				Required:    value.Required,
				Description: sanitizeText(value.Description),
			}
			if value.Schema != nil && value.Schema.Value != nil {
				param.Type = fieldType(value.Schema.Value)
			}
			out = append(out, param)
		}
	}
	add(item.Get.Parameters)
	add(item.Parameters)
	return out
}
