package scaffold

import "strings"

const (
	multiSuffix  = "[]"
	orderPrefix  = "order["
	existsPrefix = "exists["
)

// VariableKind tags the shape of a query parameter name.
type VariableKind int

const (
	// VariablePlain is a bare field name ("title").
	VariablePlain VariableKind = iota
	// VariableMulti is a multi-valued filter ("tags[]").
	VariableMulti
	// VariableOrder is an ordering parameter ("order[title]").
	VariableOrder
	// VariableExists is an existence filter ("exists[deletedAt]").
	VariableExists
)

func (k VariableKind) String() string {
	switch k {
	case VariableMulti:
		return "multi"
	case VariableOrder:
		return "order"
	case VariableExists:
		return "exists"
	default:
		return "plain"
	}
}

// Variable is a parsed query parameter name. Name holds the field the
// variable refers to: the bare name, the name without "[]", or the target
// inside order[...] and exists[...].
type Variable struct {
	Raw  string
	Kind VariableKind
	Name string
}

// ParseVariable classifies raw once. Shapes that are not recognised (an
// unterminated "order[", an empty target) fall back to VariablePlain.
func ParseVariable(raw string) Variable {
	if target, ok := bracketTarget(raw, existsPrefix); ok {
		return Variable{Raw: raw, Kind: VariableExists, Name: target}
	}
	if target, ok := bracketTarget(raw, orderPrefix); ok {
		return Variable{Raw: raw, Kind: VariableOrder, Name: target}
	}
	if base, ok := strings.CutSuffix(raw, multiSuffix); ok && base != "" {
		return Variable{Raw: raw, Kind: VariableMulti, Name: base}
	}
	return Variable{Raw: raw, Kind: VariablePlain, Name: raw}
}

func bracketTarget(raw, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(raw, prefix)
	if !ok {
		return "", false
	}
	target, ok := strings.CutSuffix(rest, "]")
	if !ok || target == "" || strings.ContainsAny(target, "[]") {
		return "", false
	}
	return target, true
}

// tallyKey is the key a variable counts towards: the base name for
// multi-valued variables and the raw string otherwise.
func (v Variable) tallyKey() string {
	if v.Kind == VariableMulti {
		return v.Name
	}
	return v.Raw
}
