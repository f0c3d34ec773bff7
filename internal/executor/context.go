package executor

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// builtins are the functions available to every formula. Model variables
// of the same name take precedence.
func builtins() map[string]function.Function {
	return map[string]function.Function{
		"abs":      stdlib.AbsoluteFunc,
		"can":      tryfunc.CanFunc,
		"ceil":     stdlib.CeilFunc,
		"coalesce": stdlib.CoalesceFunc,
		"floor":    stdlib.FloorFunc,
		"int":      stdlib.IntFunc,
		"length":   stdlib.LengthFunc,
		"log":      stdlib.LogFunc,
		"max":      stdlib.MaxFunc,
		"min":      stdlib.MinFunc,
		"pow":      stdlib.PowFunc,
		"range":    stdlib.RangeFunc,
		"signum":   stdlib.SignumFunc,
		"try":      tryfunc.TryFunc,
	}
}

// rootContext builds the evaluation context shared by every period of one
// record: T_MAX, the constants, one object per model point set, the
// built-in functions and one function per model variable.
func (ev *evaluation) rootContext(input Input) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(ev.exec.constants)+len(input)+1)
	for name, v := range ev.exec.constants {
		vars[name] = v
	}
	for set, obj := range input {
		vars[set] = obj
	}
	vars[model.TMaxName] = cty.NumberIntVal(int64(ev.exec.tMax))

	funcs := builtins()
	for name, v := range ev.exec.vars {
		funcs[name] = ev.variableFunc(v)
	}
	return &hcl.EvalContext{Variables: vars, Functions: funcs}
}

// periodContext returns the child context binding t to the given period.
func (ev *evaluation) periodContext(t int) *hcl.EvalContext {
	if c := ev.periods[t]; c != nil {
		return c
	}
	c := ev.root.NewChild()
	c.Variables = map[string]cty.Value{model.TimeIndex: cty.NumberIntVal(int64(t))}
	ev.periods[t] = c
	return c
}

func (ev *evaluation) variableFunc(v *model.Variable) function.Function {
	name := v.Name
	return function.New(&function.Spec{
		Description: v.Description,
		Params: []function.Parameter{
			{Name: model.TimeIndex, Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			t, err := periodArg(args[0])
			if err != nil {
				return cty.UnknownVal(cty.Number), fmt.Errorf("%s: %w", name, err)
			}
			if t < 0 || t > ev.exec.tMax {
				return cty.Zero, nil
			}
			f, err := ev.cell(name, t)
			if err != nil {
				return cty.UnknownVal(cty.Number), err
			}
			return cty.NumberFloatVal(f), nil
		},
	})
}

func periodArg(v cty.Value) (int, error) {
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return 0, fmt.Errorf("period must be an integer, got %s", bf.Text('g', -1))
	}
	i, acc := bf.Int64()
	if acc != 0 {
		return 0, fmt.Errorf("period %s is out of range", bf.Text('g', -1))
	}
	return int(i), nil
}
