package hcl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext builds the expression scope for a file located in dir.
func evalContext(dir string, environ []string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(environ),
		},
		Functions: map[string]function.Function{
			"glob":     globFunc(dir),
			"basename": basenameFunc,
			"dirname":  dirnameFunc,
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
			"format":   stdlib.FormatFunc,
			"join":     stdlib.JoinFunc,
			"concat":   stdlib.ConcatFunc,
		},
	}
}

func envObject(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// globFunc expands a pattern relative to dir into a sorted list of paths.
func globFunc(dir string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "pattern", Type: cty.String}},
		Type:   function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			pattern := args[0].AsString()
			if !filepath.IsAbs(pattern) {
				pattern = filepath.Join(dir, pattern)
			}
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			if len(matches) == 0 {
				return cty.ListValEmpty(cty.String), nil
			}
			vals := make([]cty.Value, len(matches))
			for i, m := range matches {
				vals[i] = cty.StringVal(m)
			}
			return cty.ListVal(vals), nil
		},
	})
}

var basenameFunc = stringFunc("path", filepath.Base)

var dirnameFunc = stringFunc("path", filepath.Dir)

func stringFunc(param string, fn func(string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: param, Type: cty.String}},
		Type:   function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(fn(args[0].AsString())), nil
		},
	})
}

// environ is swapped in tests.
var environ = os.Environ
