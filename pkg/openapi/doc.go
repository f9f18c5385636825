// Package openapi exposes the contracts used to turn an OpenAPI document into
// the resource descriptions consumed by the scaffold generator: sources,
// loaders, parsers and the Resource/Field/Parameter wrappers. Implementations
// live under internal/openapi; construction helpers live in the root
// quasargen package to prevent import cycles.
package openapi
