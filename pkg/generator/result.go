package generator

import (
	"github.com/goliatone/go-quasargen/pkg/emit"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

// ResourceResult reports the generation of a single resource.
type ResourceResult struct {
	Resource      string
	Title         string
	LowercaseName string
	Plan          scaffold.FilePlan
	Report        emit.Report
	Err           error
}

// Result reports a generation run in resource order.
type Result struct {
	Entrypoint string
	Resources  []ResourceResult
}

// Failed returns the resources that did not complete.
func (r Result) Failed() []ResourceResult {
	var out []ResourceResult
	for _, res := range r.Resources {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Totals counts written and skipped files plus failed resources. Planned
// files of a dry run count as written.
func (r Result) Totals() (written, skipped, failed int) {
	for _, res := range r.Resources {
		if res.Err != nil {
			failed++
		}
		written += res.Report.Count(emit.OutcomeCreated) +
			res.Report.Count(emit.OutcomeOverwritten) +
			res.Report.Count(emit.OutcomePlanned)
		skipped += res.Report.Count(emit.OutcomeSkipped)
	}
	return written, skipped, failed
}
