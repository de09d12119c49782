package coerce

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Flag is a named recovery marker attached to a coercion result.
type Flag string

const (
	FlagUsedFence              Flag = "used_fence"
	FlagUsedSubstring          Flag = "used_substring"
	FlagRecoveredUnquotedKeys  Flag = "recovered_unquoted_keys"
	FlagRecoveredTrailingComma Flag = "recovered_trailing_comma"
	FlagRecoveredUnterminated  Flag = "recovered_unterminated_string"
	FlagScalarFromProse        Flag = "scalar_from_prose"
	FlagRawStringFallback      Flag = "raw_string_fallback"
	FlagStringified            Flag = "stringified"
	FlagExtraKeys              Flag = "extra_keys"
	FlagImplicitWrap           Flag = "implicit_single_field_wrap"
	FlagSubstringLiteral       Flag = "substring_literal_match"
	FlagCaseInsensitiveLiteral Flag = "case_insensitive_literal_match"
	FlagDefaultSynthesized     Flag = "implicit_default"
	FlagListWrapped            Flag = "scalar_to_list_wrap"
	FlagDuplicateMapKey        Flag = "duplicate_map_key"
	FlagUnitStripped           Flag = "unit_stripped"
)

// Warning is a non-fatal diagnostic that accompanies a successful
// result (e.g. a failed `check` constraint, extra object keys, an
// ambiguous-but-resolved union match).
type Warning struct {
	Path    string
	Message string
}

// ClassValue is the coercer's representation of a coerced Class
// instance: an ordered field map (for deterministic re-serialization)
// plus the class name for downstream dispatch.
type ClassValue struct {
	ClassName string
	Fields    *orderedmap.OrderedMap[string, any]
}

// Result is the outcome of coercing one candidate against one type: the
// typed Go value, its permissiveness score, and the recovery flags and
// warnings accumulated along the way.
type Result struct {
	Value    any
	Score    int
	Flags    map[Flag]int
	Warnings []Warning
}

func newResult(value any, score int) Result {
	return Result{Value: value, Score: score, Flags: map[Flag]int{}}
}

func (r *Result) addFlag(f Flag) {
	if r.Flags == nil {
		r.Flags = map[Flag]int{}
	}
	r.Flags[f]++
}

func (r *Result) addWarning(path Path, msg string) {
	r.Warnings = append(r.Warnings, Warning{Path: path.String(), Message: msg})
}

// merge folds child's score, flags and warnings into r (used when a
// composite coercion accumulates results from its elements/fields).
func (r *Result) merge(child Result) {
	r.Score += child.Score
	for f, n := range child.Flags {
		if r.Flags == nil {
			r.Flags = map[Flag]int{}
		}
		r.Flags[f] += n
	}
	r.Warnings = append(r.Warnings, child.Warnings...)
}

// Path is the dotted JSON-pointer path used in diagnostics, e.g.
// "steps.0.with.argv".
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

func (p Path) Push(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}
