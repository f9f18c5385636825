package generator

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-quasargen/pkg/emit"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(g *Generator) {
		g.parser = parser
	}
}

// WithRenderer injects the renderer used by the default file sink.
func WithRenderer(renderer emit.ContentRenderer) Option {
	return func(g *Generator) {
		g.renderer = renderer
	}
}

// WithTemplatesDir makes the default renderer prefer templates found under
// dir over the embedded catalog.
func WithTemplatesDir(dir string) Option {
	return func(g *Generator) {
		g.templatesDir = dir
	}
}

// WithSink replaces the file sink entirely. WithDryRun is ignored when a
// sink is supplied.
func WithSink(sink emit.Sink) Option {
	return func(g *Generator) {
		g.sink = sink
	}
}

// WithDryRun records the plan without writing anything.
func WithDryRun(enabled bool) Option {
	return func(g *Generator) {
		g.dryRun = enabled
	}
}

// WithLogger routes progress and failures to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithConcurrency bounds how many resources are generated at once.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithHydraPrefix overrides the Hydra key prefix exposed to templates.
func WithHydraPrefix(prefix string) Option {
	return func(g *Generator) {
		if prefix != "" {
			g.hydraPrefix = prefix
		}
	}
}

// WithForce overwrites shared files that already exist.
func WithForce(force bool) Option {
	return func(g *Generator) {
		g.force = force
	}
}

// WithLabels replaces the common label catalog.
func WithLabels(labels scaffold.Labels) Option {
	return func(g *Generator) {
		if labels != nil {
			g.labels = labels.Clone()
		}
	}
}

// WithTimeout caps remote document fetches made by the default loader.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Generator) {
		g.timeout = timeout
	}
}

// OnResourceGenerated registers a hook called after each resource that was
// generated without error. Calls are serialised.
func OnResourceGenerated(hook func(ResourceResult)) Option {
	return func(g *Generator) {
		g.onGenerated = hook
	}
}
