// Package generator wires the loader → parser → scaffold → emit pipeline:
// it resolves the resources of an OpenAPI document, builds a render context
// and file plan for each of them and hands the plan to a sink. Resources are
// generated concurrently and a failing resource never stops the others.
package generator
