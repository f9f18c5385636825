// Package scaffold turns a resource description into everything the template
// engine needs: a normalised field set, classified filter parameters, the
// render context and the file plan.
//
// The steps must run in order. NormalizeFields builds the field arena,
// ClassifyParameters tallies and admits query parameters, AssembleContext
// joins both (marking sortable fields in place) and BuildFilePlan decides
// which templates to render and where.
package scaffold
