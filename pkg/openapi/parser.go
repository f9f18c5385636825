package openapi

import "context"

// Parser turns an OpenAPI document into the API description the generator
// consumes.
type Parser interface {
	API(ctx context.Context, doc Document) (API, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// Validate runs the kin-openapi validator before extracting resources.
	Validate bool

	// ExternalRefs allows $ref pointers to other documents.
	ExternalRefs bool

	// SkipEmptyResources drops collections whose item schema has no
	// properties (RPC style endpoints, health checks).
	SkipEmptyResources bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs toggles support for references to external documents.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ExternalRefs = enabled
	}
}

// WithSkipEmptyResources toggles dropping resources without fields.
func WithSkipEmptyResources(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipEmptyResources = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Validate:           false,
		ExternalRefs:       false,
		SkipEmptyResources: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
