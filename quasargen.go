// Package quasargen generates Quasar (Vue 3 + Pinia) CRUD screens from the
// OpenAPI description of an API Platform backend.
package quasargen

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-quasargen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-quasargen/internal/openapi/parser"
	"github.com/goliatone/go-quasargen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/renderers/quasar"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// Generate loads source and writes the screens of the named resources (all of
// them when none are named) under outputDir.
func Generate(ctx context.Context, source pkgopenapi.Source, outputDir string, resources []string, options ...generator.Option) (generator.Result, error) {
	return generator.New(options...).Generate(ctx, generator.Request{
		Source:    source,
		OutputDir: outputDir,
		Resources: resources,
	})
}

// EmbeddedTemplates exposes the built-in template catalog so callers can
// copy it into an override directory.
func EmbeddedTemplates() fs.FS {
	return quasar.TemplatesFS()
}
