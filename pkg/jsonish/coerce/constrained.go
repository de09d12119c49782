package coerce

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
)

// evalConstraints implements §4.2.11: each constraint expression runs
// against the coerced value bound as `this`. A compile error, or an
// assert that fails or cannot be evaluated, is fatal to the candidate; a
// check that fails or cannot be evaluated is kept as a warning alongside
// the value rather than rejecting it.
func evalConstraints(result Result, constraints []ftype.Constraint, path Path) (Result, error) {
	env := map[string]any{"this": result.Value}
	for _, con := range constraints {
		program, err := expr.Compile(con.Expr, expr.Env(env), expr.AsBool())
		if err != nil {
			return Result{}, fatal(path, "constraint %q does not compile: %v", con.Name, err)
		}
		output, err := expr.Run(program, env)
		if err != nil {
			if con.Kind == ftype.Assert {
				return Result{}, recoverableFailure(path, "assert %q failed to evaluate: %v", con.Name, err)
			}
			result.addWarning(path, fmt.Sprintf("check %q failed to evaluate: %v", con.Name, err))
			continue
		}
		passed, ok := output.(bool)
		if !ok || !passed {
			if con.Kind == ftype.Assert {
				return Result{}, recoverableFailure(path, "assert %q failed", con.Name)
			}
			result.addWarning(path, fmt.Sprintf("check %q failed", con.Name))
		}
	}
	return result, nil
}
