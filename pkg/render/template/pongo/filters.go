package pongo

import (
	"encoding/json"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
	"github.com/flosch/pongo2/v6"
	"github.com/jinzhu/inflection"
)

var defaultsOnce sync.Once

// registerDefaultFilters installs the naming filters templates rely on.
// pongo2 keeps filters in a global registry, so this runs once per process.
func registerDefaultFilters() {
	defaultsOnce.Do(func() {
		pongo2.SetAutoescape(false)

		filters := map[string]pongo2.FilterFunction{
			"ucfirst":  stringFilter(upperFirst),
			"camel":    stringFilter(strcase.ToCamel),
			"plural":   stringFilter(inflection.Plural),
			"tsstring": filterTSString,
		}
		for name, fn := range filters {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func stringFilter(fn func(string) string) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		if in.Len() <= 0 {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(fn(in.String())), nil
	}
}

// filterTSString quotes a value as a TypeScript string literal.
func filterTSString(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	payload, err := json.Marshal(in.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:tsstring", OrigError: err}
	}
	quoted := strings.ReplaceAll(string(payload[1:len(payload)-1]), "'", `\'`)
	quoted = strings.ReplaceAll(quoted, `\"`, `"`)
	return pongo2.AsSafeValue("'" + quoted + "'"), nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
