// Package coerce implements the type-directed, recursive coercion from
// a parse.Value tree to a typed result, scored by how many liberties
// were taken (spec.md §4.2).
package coerce

import (
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

// ctx threads the registry and options through the recursive coercion
// without needing every helper to take both as separate parameters.
type ctx struct {
	reg *registry.Registry
	opt Options
}

// Coerce is the single entry point: given one parser candidate, a
// target type, a registry, a diagnostic path and options, produce a
// typed result and score, or a structured *Error. It never panics.
func Coerce(v *parse.Value, t *ftype.FieldType, reg *registry.Registry, path Path, opt Options) (Result, error) {
	c := &ctx{reg: reg, opt: opt}
	return c.coerce(v, t, path)
}

func (c *ctx) coerce(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if t == nil {
		return Result{}, fatal(path, "nil target type")
	}
	if v == nil {
		v = &parse.Value{Kind: parse.VNull}
	}

	if v.Kind == parse.VAnyOf {
		return c.coerceAnyOf(v, t, path)
	}

	var result Result
	var err error
	switch t.Kind {
	case ftype.KindOptional:
		result, err = c.coerceOptional(v, t, path)
	case ftype.KindString, ftype.KindInt, ftype.KindFloat, ftype.KindBool, ftype.KindNull:
		result, err = c.coercePrimitive(v, t, path)
	case ftype.KindMedia:
		result, err = c.coerceMedia(v, t, path)
	case ftype.KindLiteral:
		result, err = c.coerceLiteral(v, t, path)
	case ftype.KindEnum:
		result, err = c.coerceEnum(v, t, path)
	case ftype.KindClass:
		result, err = c.coerceClass(v, t, path)
	case ftype.KindList:
		result, err = c.coerceList(v, t, path)
	case ftype.KindMap:
		result, err = c.coerceMap(v, t, path)
	case ftype.KindTuple:
		result, err = c.coerceTuple(v, t, path)
	case ftype.KindUnion:
		result, err = c.coerceUnion(v, t, path)
	default:
		return Result{}, fatal(path, "unhandled FieldType kind %s", t.Kind)
	}
	if err != nil {
		return Result{}, err
	}
	result, err = c.withConstraintsChecked(result, t, path)
	if err != nil {
		return Result{}, err
	}

	// Union/AnyOf branches already enforce max_score per branch in
	// selectBranch; every other Kind reaches here with an unchecked
	// final score, so the cap is enforced once more for all of them.
	if t.Kind != ftype.KindUnion && result.Score > c.opt.maxScore() {
		return Result{}, recoverableFailure(path, "score %d exceeds max_score", result.Score)
	}
	return result, nil
}

// applyParseFlags folds a parser candidate's recovery flags into r's
// score and flag map. Each flag translates 1:1 to a coerce.Flag with
// the matching weight class.
func applyParseFlags(r *Result, f parse.RecoveryFlags) {
	add := func(cond bool, flag Flag) {
		if cond {
			r.addFlag(flag)
			r.Score += flagWeight(flag)
		}
	}
	add(f.UsedFence, FlagUsedFence)
	add(f.UsedSubstring, FlagUsedSubstring)
	add(f.RecoveredUnquotedKeys, FlagRecoveredUnquotedKeys)
	add(f.RecoveredTrailingComma, FlagRecoveredTrailingComma)
	add(f.RecoveredUnterminatedString, FlagRecoveredUnterminated)
	add(f.ScalarFromProse, FlagScalarFromProse)
	add(f.RawStringFallback, FlagRawStringFallback)
	if f.UnitStripped != "" {
		r.addFlag(FlagUnitStripped)
		r.Score += flagWeight(FlagUnitStripped)
	}
}

// withConstraintsChecked runs t's constraints (if any) against result
// after a successful base coercion, per §4.2.11: an `assert` failure is
// fatal to this candidate, a `check` failure becomes a warning.
func (c *ctx) withConstraintsChecked(result Result, t *ftype.FieldType, path Path) (Result, error) {
	if len(t.Constraints) == 0 {
		return result, nil
	}
	return evalConstraints(result, t.Constraints, path)
}
