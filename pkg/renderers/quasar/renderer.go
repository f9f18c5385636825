package quasar

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	rendertemplate "github.com/goliatone/go-quasargen/pkg/render/template"
	"github.com/goliatone/go-quasargen/pkg/render/template/pongo"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

// ErrMissingTemplates reports catalog identifiers the template source cannot
// resolve.
var ErrMissingTemplates = errors.New("quasar renderer: missing templates")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	overrideDir      string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS replaces the embedded catalog.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the catalog; templates
// found there win.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.overrideDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer turns file plan entries into source bytes.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []pongo.Option{pongo.WithFS(cfg.templateFS)}
		if cfg.overrideDir != "" {
			engineOptions = append(engineOptions, pongo.WithBaseDir(cfg.overrideDir))
		}
		engine, err := pongo.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("quasar renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "quasar"
}

// Render renders a catalog template with data.
func (r *Renderer) Render(templateID string, data any) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("quasar renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("quasar renderer: render %s: %w", templateID, err)
	}
	return []byte(result), nil
}

// Verify checks that every catalog template can be resolved, so a broken
// override directory fails before anything is written.
func (r *Renderer) Verify() error {
	if r.templates == nil {
		return errors.New("quasar renderer: template renderer is nil")
	}

	var missing []string
	for _, id := range scaffold.TemplateIDs() {
		if !r.templates.HasTemplate(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTemplates, strings.Join(missing, ", "))
	}
	return nil
}
