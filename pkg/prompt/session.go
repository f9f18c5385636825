package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// ErrNoSelection is returned when the user picks no resource.
var ErrNoSelection = errors.New("prompt: no resource selected")

// Defaults seeds the answers offered to the user.
type Defaults struct {
	OutputDir string
	Resources []string
	Force     bool
}

// Answers is the outcome of a Session.
type Answers struct {
	OutputDir string
	Resources []string
	Force     bool
}

// Session runs the interactive generation questions.
type Session struct {
	driver Driver
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// NewSession constructs a Session on the survey driver unless overridden.
func NewSession(options ...Option) *Session {
	s := &Session{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run asks for the resources to generate, the output directory and the
// overwrite policy. Resources are returned by name in document order.
func (s *Session) Run(ctx context.Context, api pkgopenapi.API, defaults Defaults) (Answers, error) {
	if len(api.Resources) == 0 {
		return Answers{}, errors.New("prompt: document exposes no resources")
	}

	if err := s.driver.Info(ctx, fmt.Sprintf("%s exposes %d resources", describeAPI(api), len(api.Resources))); err != nil {
		return Answers{}, err
	}

	resources, err := s.pickResources(ctx, api, defaults.Resources)
	if err != nil {
		return Answers{}, err
	}

	outputDir, err := s.driver.Input(ctx, InputConfig{
		Message:   "Output directory",
		Default:   defaults.OutputDir,
		Help:      "Source directory of the Quasar project (usually src)",
		Validator: requireValue,
	})
	if err != nil {
		return Answers{}, err
	}

	force, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Overwrite shared files that already exist?",
		Default: defaults.Force,
		Help:    "Resource files are always regenerated. Shared utilities, types and translations are kept unless you answer yes.",
	})
	if err != nil {
		return Answers{}, err
	}

	return Answers{
		OutputDir: strings.TrimSpace(outputDir),
		Resources: resources,
		Force:     force,
	}, nil
}

func (s *Session) pickResources(ctx context.Context, api pkgopenapi.API, preselected []string) ([]string, error) {
	options := make([]string, len(api.Resources))
	var defaults []int
	for i, res := range api.Resources {
		options[i] = resourceLabel(res)
		for _, name := range preselected {
			if strings.EqualFold(name, res.Name) || strings.EqualFold(name, res.Title) {
				defaults = append(defaults, i)
				break
			}
		}
	}

	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Resources to generate",
		Options:  options,
		Defaults: defaults,
		PageSize: 15,
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, idx := range picked {
		if idx >= 0 && idx < len(api.Resources) {
			names = append(names, api.Resources[idx].Name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSelection
	}
	return names, nil
}

func resourceLabel(res pkgopenapi.Resource) string {
	if res.Title == "" || strings.EqualFold(res.Title, res.Name) {
		return res.Name
	}
	return fmt.Sprintf("%s (%s)", res.Title, res.Name)
}

func describeAPI(api pkgopenapi.API) string {
	if api.Title != "" {
		return api.Title
	}
	if api.Entrypoint != "" {
		return api.Entrypoint
	}
	return "The document"
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
