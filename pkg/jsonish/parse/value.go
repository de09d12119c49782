// Package parse implements the permissive JSON-ish lexer/parser: it
// recovers one or more candidate Value trees from text that is supposed
// to be JSON but may contain prose, Markdown fences, unquoted keys,
// trailing commas, single-quoted or unterminated strings, and embedded
// JSON fragments. Parse never fails — worst case it returns the entire
// input as a single String candidate.
package parse

import orderedmap "github.com/wk8/go-ordered-map/v2"

// ValueKind tags which variant of Value is populated.
type ValueKind int

const (
	VNull ValueKind = iota
	VBool
	VNumber
	VString
	VArray
	VObject
	VAnyOf
)

// Span marks the range in the original input a Value was recovered
// from, for diagnostics. Strict-parsed values use byte offsets; spans
// found by the bracket scanner use rune offsets.
type Span struct {
	Start, End int
}

// RecoveryFlags records which permissive recovery steps contributed to a
// candidate, per the raw-parser spec's flag list.
type RecoveryFlags struct {
	UsedFence                  bool
	UsedSubstring               bool
	RecoveredUnquotedKeys       bool
	RecoveredTrailingComma      bool
	RecoveredUnterminatedString bool
	ScalarFromProse             bool
	RawStringFallback           bool
	UnitStripped                string
}

// Merge folds other's flags into f (logical OR for bools, other wins for
// UnitStripped when non-empty), used when a child value's recovery flags
// need to propagate up to the candidate that contains it.
func (f *RecoveryFlags) Merge(other RecoveryFlags) {
	f.UsedFence = f.UsedFence || other.UsedFence
	f.UsedSubstring = f.UsedSubstring || other.UsedSubstring
	f.RecoveredUnquotedKeys = f.RecoveredUnquotedKeys || other.RecoveredUnquotedKeys
	f.RecoveredTrailingComma = f.RecoveredTrailingComma || other.RecoveredTrailingComma
	f.RecoveredUnterminatedString = f.RecoveredUnterminatedString || other.RecoveredUnterminatedString
	f.ScalarFromProse = f.ScalarFromProse || other.ScalarFromProse
	f.RawStringFallback = f.RawStringFallback || other.RawStringFallback
	if other.UnitStripped != "" {
		f.UnitStripped = other.UnitStripped
	}
}

// Value is the parser's tagged dynamic value tree: the raw-parser's
// output alphabet. Exactly the fields relevant to Kind are populated.
type Value struct {
	Kind ValueKind

	Bool bool
	Num  string // preserves the original lexeme for later numeric coercion
	Str  string
	Arr  []*Value
	Obj  *orderedmap.OrderedMap[string, *Value] // latest-wins view, ordered
	RawPairs []KV                                // full insertion sequence, duplicates preserved

	// Any holds the candidate interpretations of the same span when the
	// parser recovered more than one plausible reading. OriginalText is
	// the verbatim source text that produced them.
	Any          []*Value
	OriginalText string

	Span  Span
	Flags RecoveryFlags
}

func newNull(span Span) *Value  { return &Value{Kind: VNull, Span: span} }
func newBool(b bool, span Span) *Value { return &Value{Kind: VBool, Bool: b, Span: span} }
func newNumber(repr string, span Span) *Value { return &Value{Kind: VNumber, Num: repr, Span: span} }
func newString(s string, span Span) *Value { return &Value{Kind: VString, Str: s, Span: span} }

func newArray(items []*Value, span Span) *Value {
	return &Value{Kind: VArray, Arr: items, Span: span}
}

func newObject(span Span) *Value {
	return &Value{Kind: VObject, Obj: orderedmap.New[string, *Value](), Span: span}
}

// KV is one raw key/value pair in an Object's original, duplicate-
// preserving insertion order.
type KV struct {
	Key   string
	Value *Value
}

// objectAppend records key/value as the next raw pair and updates the
// latest-wins OrderedMap view. "Later duplicates win" for scalar
// targets falls out of Obj.Set always overwriting; callers that need
// every occurrence (map coercion's duplicate-key penalty, class
// coercion's extra-keys accounting) read RawPairs instead.
func (v *Value) objectAppend(key string, val *Value) {
	v.RawPairs = append(v.RawPairs, KV{Key: key, Value: val})
	v.Obj.Set(key, val)
}

// ObjectPairs returns every key/value pair of an Object Value in
// insertion order, including repeated keys.
func (v *Value) ObjectPairs() []KV {
	if v == nil {
		return nil
	}
	return v.RawPairs
}
