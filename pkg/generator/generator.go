package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	internalLoader "github.com/goliatone/go-quasargen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-quasargen/internal/openapi/parser"
	"github.com/goliatone/go-quasargen/pkg/emit"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/renderers/quasar"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 30 * time.Second
)

var (
	// ErrNoResources is returned when nothing is left to generate.
	ErrNoResources = errors.New("generator: no resources to generate")

	// ErrResourceNotFound is returned when a requested resource is not part
	// of the document.
	ErrResourceNotFound = errors.New("generator: resource not found")
)

// verifier is implemented by renderers able to check their template catalog
// up front.
type verifier interface {
	Verify() error
}

// Generator coordinates a generation run. Missing dependencies are
// initialised with the built-in implementations.
type Generator struct {
	loader       pkgopenapi.Loader
	parser       pkgopenapi.Parser
	renderer     emit.ContentRenderer
	templatesDir string
	sink         emit.Sink
	dryRun       bool
	logger       *log.Logger
	concurrency  int
	hydraPrefix  string
	force        bool
	labels       scaffold.Labels
	timeout      time.Duration
	onGenerated  func(ResourceResult)

	hookMu        sync.Mutex
	initialiseErr error
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		logger:      log.New(io.Discard),
		concurrency: defaultConcurrency,
		hydraPrefix: scaffold.DefaultHydraPrefix,
		timeout:     defaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes a generation run.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document or API is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// API bypasses both loader and parser.
	API *pkgopenapi.API

	// Resources limits the run to the named resources (name or title,
	// case-insensitive). Empty means every resource of the document.
	Resources []string

	// OutputDir is the Quasar project source directory.
	OutputDir string
}

// Describe loads and parses the request document without generating.
func (g *Generator) Describe(ctx context.Context, req Request) (pkgopenapi.API, error) {
	if ctx == nil {
		return pkgopenapi.API{}, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.API{}, err
	}
	if req.API != nil {
		return *req.API, nil
	}
	if g.parser == nil {
		return pkgopenapi.API{}, errors.New("generator: parser is nil")
	}

	doc, err := g.resolveDocument(ctx, req)
	if err != nil {
		return pkgopenapi.API{}, err
	}
	api, err := g.parser.API(ctx, doc)
	if err != nil {
		return pkgopenapi.API{}, fmt.Errorf("generator: parse document: %w", err)
	}
	return api, nil
}

// Generate runs the pipeline for every selected resource. Per-resource
// failures are logged and reported in Result; the returned error covers
// problems that prevent the run as a whole.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("generator: context is required")
	}
	if err := g.initialiseErr; err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return Result{}, errors.New("generator: output directory is required")
	}
	if v, ok := g.renderer.(verifier); ok {
		if err := v.Verify(); err != nil {
			return Result{}, fmt.Errorf("generator: %w", err)
		}
	}

	api, err := g.Describe(ctx, req)
	if err != nil {
		return Result{}, err
	}

	resources, err := selectResources(api, req.Resources)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Entrypoint: api.Entrypoint,
		Resources:  make([]ResourceResult, len(resources)),
	}

	var group errgroup.Group
	group.SetLimit(g.concurrency)
	for i, res := range resources {
		i, res := i, res
		group.Go(func() error {
			result.Resources[i] = g.generateResource(ctx, api, res, req.OutputDir)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (g *Generator) generateResource(ctx context.Context, api pkgopenapi.API, res pkgopenapi.Resource, outputDir string) ResourceResult {
	out := ResourceResult{Resource: res.Name, Title: res.Title}
	logger := g.logger.With("resource", res.Name)

	raw, err := res.Parameters(ctx)
	if err != nil {
		logger.Error("fetching parameters failed", "err", err)
		out.Err = fmt.Errorf("generator: %s: fetch parameters: %w", res.Name, err)
		return out
	}

	params, err := scaffold.ClassifyParameters(raw)
	if err != nil {
		logger.Error("classifying parameters failed", "err", err)
		out.Err = fmt.Errorf("generator: %s: %w", res.Name, err)
		return out
	}

	fields := scaffold.NormalizeFields(res.WritableFields, res.ReadableFields)
	renderCtx := scaffold.AssembleContext(res, fields, params, g.labels, scaffold.WithHydraPrefix(g.hydraPrefix))
	if err := renderCtx.Validate(); err != nil {
		logger.Error("resource name rejected", "err", err)
		out.Err = fmt.Errorf("generator: %s: %w", res.Name, err)
		return out
	}
	out.LowercaseName = renderCtx.LowercaseName
	out.Plan = scaffold.BuildFilePlan(renderCtx, outputDir,
		scaffold.WithEntrypoint(api.Entrypoint),
		scaffold.WithForce(g.force),
	)
	logger.Debug("plan built", "directories", len(out.Plan.Directories), "files", len(out.Plan.Files), "filters", len(renderCtx.Parameters))

	out.Report, err = emit.Apply(ctx, g.sink, out.Plan)
	if err != nil {
		logger.Error("writing files failed", "err", err)
		out.Err = fmt.Errorf("generator: %w", err)
		return out
	}

	logger.Info("generated",
		"created", out.Report.Count(emit.OutcomeCreated),
		"overwritten", out.Report.Count(emit.OutcomeOverwritten),
		"skipped", out.Report.Count(emit.OutcomeSkipped),
	)
	g.notify(out)
	return out
}

func (g *Generator) notify(res ResourceResult) {
	if g.onGenerated == nil {
		return
	}
	g.hookMu.Lock()
	defer g.hookMu.Unlock()
	g.onGenerated(res)
}

func (g *Generator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("generator: source or document is required")
	}
	if g.loader == nil {
		return pkgopenapi.Document{}, errors.New("generator: loader is nil")
	}
	doc, err := g.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("generator: load document: %w", err)
	}
	return doc, nil
}

// selectResources keeps the document order. Requested names that match no
// resource fail the run before anything is written.
func selectResources(api pkgopenapi.API, names []string) ([]pkgopenapi.Resource, error) {
	if len(names) == 0 {
		if len(api.Resources) == 0 {
			return nil, ErrNoResources
		}
		return append([]pkgopenapi.Resource(nil), api.Resources...), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		res, ok := api.Resource(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
		}
		wanted[res.Name] = true
	}

	var out []pkgopenapi.Resource
	for _, res := range api.Resources {
		if wanted[res.Name] {
			out = append(out, res)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoResources
	}
	return out, nil
}

func (g *Generator) applyDefaults() {
	if g.loader == nil {
		g.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(g.timeout)))
	}
	if g.parser == nil {
		g.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if g.labels == nil {
		g.labels = scaffold.CommonLabels()
	}
	if g.sink != nil {
		return
	}
	if g.dryRun {
		g.sink = emit.NewDryRunSink(emit.WithLogger(g.logger))
		return
	}
	if g.renderer == nil {
		var options []quasar.Option
		if g.templatesDir != "" {
			options = append(options, quasar.WithTemplatesDir(g.templatesDir))
		}
		renderer, err := quasar.New(options...)
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: default renderer: %w", err)
			return
		}
		g.renderer = renderer
	}
	sink, err := emit.NewFileSink(g.renderer, emit.WithLogger(g.logger))
	if err != nil {
		g.initialiseErr = fmt.Errorf("generator: file sink: %w", err)
		return
	}
	g.sink = sink
}
