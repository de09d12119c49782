package coerce

import (
	"strconv"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/normalize"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

type enumCandidate struct {
	value registry.EnumValue
	kind  normalize.MatchKind
	penalty int
}

// coerceEnum implements §4.2.4: matching against {aliases ∪ value_names}
// \ skipped, using the same normalized substring rule as literal strings
// but failing on ambiguity across more than one enum value.
func (c *ctx) coerceEnum(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	e, ok := c.reg.Enum(t.Name)
	if !ok {
		return Result{}, fatal(path, "registry has no enum named %q", t.Name)
	}

	if v.Kind == parse.VObject {
		if extracted, ok := extractSingleObjectField(v); ok {
			return c.extractScalarFromObject(extracted, t, path)
		}
		return Result{}, recoverableFailure(path, "multi-key object has no single scalar to extract for enum %q", t.Name)
	}

	src, wasScalar := literalSourceText(v)
	if !wasScalar {
		return Result{}, recoverableFailure(path, "cannot match enum %q against %s", t.Name, valueKindName(v))
	}

	// Supplemented: numeric-looking enum values prefer an exact numeric
	// match over the general substring rule, so "1" cleanly resolves a
	// numeric-named enum value even when other values' folded names
	// happen to be substrings of the input.
	if v.Kind == parse.VNumber {
		if name, exact := exactNumericEnumMatch(e, v.Num); exact {
			r := newResult(name, 0)
			applyParseFlags(&r, v.Flags)
			return r, nil
		}
	}

	var matches []enumCandidate
	for _, val := range e.Values {
		if val.Skip {
			continue
		}
		if best, ok := bestEnumMatch(src, val); ok {
			matches = append(matches, best)
		}
	}

	if len(matches) == 0 {
		return Result{}, recoverableFailure(path, "%q does not match any value of enum %q", src, t.Name)
	}
	if len(matches) > 1 {
		var branches []BranchFailure
		for i, m := range matches {
			branches = append(branches, BranchFailure{Index: i, TypeName: m.value.Name, Reason: "ambiguous enum match"})
		}
		return Result{}, unresolvedUnion(path, branches)
	}

	m := matches[0]
	r := newResult(m.value.Name, 0)
	applyParseFlags(&r, v.Flags)
	if v.Kind != parse.VString {
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
	}
	switch m.kind {
	case normalize.ExactMatch:
		if src != m.value.Name && src != m.value.Alias {
			r.addFlag(FlagCaseInsensitiveLiteral)
			r.Score += WeightRecoveryStep
		}
	case normalize.ContainsMatch:
		r.addFlag(FlagSubstringLiteral)
		r.Score += WeightSubstringLiteral + m.penalty
	}
	return r, nil
}

func bestEnumMatch(src string, val registry.EnumValue) (enumCandidate, bool) {
	var best *enumCandidate
	consider := func(candidate string) {
		if candidate == "" {
			return
		}
		ok, kind, penalty := normalize.Match(src, candidate)
		if !ok {
			return
		}
		if best == nil || kind < best.kind || (kind == best.kind && penalty < best.penalty) {
			best = &enumCandidate{value: val, kind: kind, penalty: penalty}
		}
	}
	consider(val.Name)
	consider(val.Alias)
	if best == nil {
		return enumCandidate{}, false
	}
	return *best, true
}

// exactNumericEnumMatch reports whether num (a parsed number's lexeme)
// equals, as a number, exactly one enum value's name.
func exactNumericEnumMatch(e registry.Enum, num string) (string, bool) {
	f, _, err := parseNumLexeme(num)
	if err != nil {
		return "", false
	}
	var found string
	count := 0
	for _, val := range e.Values {
		if val.Skip {
			continue
		}
		vf, err := strconv.ParseFloat(val.Name, 64)
		if err != nil {
			continue
		}
		if vf == f {
			found = val.Name
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return "", false
}
