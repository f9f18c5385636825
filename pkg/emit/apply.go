package emit

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

// FileResult is the outcome of a single file entry.
type FileResult struct {
	TemplateID string
	OutputPath string
	Outcome    Outcome
}

// Report summarises an applied plan.
type Report struct {
	Resource    string
	Directories int
	Files       []FileResult
}

// Count returns how many files ended with outcome.
func (r Report) Count(outcome Outcome) int {
	n := 0
	for _, file := range r.Files {
		if file.Outcome == outcome {
			n++
		}
	}
	return n
}

// Apply creates the plan directories and then renders every file entry
// through sink, in plan order. The first failure stops the plan; the report
// covers what was done until then.
func Apply(ctx context.Context, sink Sink, plan scaffold.FilePlan) (Report, error) {
	report := Report{Resource: plan.Resource}
	if sink == nil {
		return report, errors.New("emit: sink is required")
	}

	for _, dir := range plan.Directories {
		if err := sink.EnsureDir(ctx, dir.Path, dir.Shared); err != nil {
			return report, fmt.Errorf("emit: %s: %w", plan.Resource, err)
		}
		report.Directories++
	}

	report.Files = make([]FileResult, 0, len(plan.Files))
	for _, entry := range plan.Files {
		outcome, err := sink.Render(ctx, entry.TemplateID, entry.OutputPath, entry.Data, entry.Overwrite)
		if err != nil {
			return report, fmt.Errorf("emit: %s: %w", plan.Resource, err)
		}
		report.Files = append(report.Files, FileResult{
			TemplateID: entry.TemplateID,
			OutputPath: entry.OutputPath,
			Outcome:    outcome,
		})
	}
	return report, nil
}
