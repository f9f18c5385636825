package scaffold

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// ErrAmbiguousMultiplicity reports a field registered under more than one
// singular and one "[]" query parameter.
var ErrAmbiguousMultiplicity = errors.New("scaffold: ambiguous parameter multiplicity")

// FilterType distinguishes value filters from existence filters.
type FilterType string

const (
	FilterDefault FilterType = "default"
	FilterExists  FilterType = "exists"
)

// Parameter is a query parameter admitted by ClassifyParameters.
type Parameter struct {
	Variable   Variable
	Name       string
	FilterType FilterType
	Multiple   bool
	Source     pkgopenapi.Parameter
}

// ClassifyParameters admits the query parameters worth a filter control.
//
// A field exposed both as "x" and "x[]" collapses into a single multiple "x"
// entry; a lone "x[]" is admitted as is. order[...] and exists[...]
// parameters pass through for AssembleContext to resolve. Relative order is
// preserved.
func ClassifyParameters(raw []pkgopenapi.Parameter) ([]Parameter, error) {
	variables := make([]Variable, len(raw))
	tally := make(map[string]int, len(raw))
	for i, param := range raw {
		variables[i] = ParseVariable(param.Variable)
		tally[variables[i].tallyKey()]++
	}

	out := make([]Parameter, 0, len(raw))
	for i, variable := range variables {
		param := Parameter{
			Variable:   variable,
			Name:       variable.Name,
			FilterType: FilterDefault,
			Source:     raw[i],
		}

		switch variable.Kind {
		case VariableExists:
			param.FilterType = FilterExists
			out = append(out, param)
			continue
		case VariableOrder:
			out = append(out, param)
			continue
		}

		if n := tally[variable.tallyKey()]; n > 2 {
			return nil, fmt.Errorf("%w: %q registered %d times", ErrAmbiguousMultiplicity, variable.tallyKey(), n)
		}

		if tally[variable.Raw] == 0 && variable.Kind == VariableMulti {
			if tally[variable.Name] == 1 {
				out = append(out, param)
			}
			continue
		}

		if tally[variable.Raw] == 2 {
			param.Multiple = true
		}
		out = append(out, param)
	}
	return out, nil
}
