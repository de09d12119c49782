// Package ftype defines the type algebra used to describe a coercion
// target: the FieldType tagged union (primitives, literals, enums,
// classes, lists, maps, unions, tuples, optionals and constraints) that
// drives the jsonish coercer.
package ftype

import (
	"fmt"
	"strings"
)

// Kind tags which variant of FieldType is populated.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
	KindMedia
	KindLiteral
	KindEnum
	KindClass
	KindList
	KindMap
	KindUnion
	KindTuple
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindMedia:
		return "media"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindClass:
		return "class"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	case KindTuple:
		return "tuple"
	case KindOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// MediaKind distinguishes the two media primitives.
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaAudio
)

func (m MediaKind) String() string {
	if m == MediaAudio {
		return "audio"
	}
	return "image"
}

// LiteralTag marks which literal field is populated.
type LiteralTag int

const (
	LitString LiteralTag = iota
	LitInt
	LitBool
)

// ConstraintKind distinguishes fatal asserts from non-fatal checks.
type ConstraintKind int

const (
	Assert ConstraintKind = iota
	Check
)

func (c ConstraintKind) String() string {
	if c == Check {
		return "check"
	}
	return "assert"
}

// Constraint pairs a name with an expr-lang boolean expression evaluated
// against the coerced value (bound as `this`).
type Constraint struct {
	Name string
	Kind ConstraintKind
	Expr string
}

// FieldType is the tagged variant described in the type algebra: exactly
// the fields relevant to Kind are populated. Build one via the
// constructors below rather than struct literals, so Constraints stays
// consistent with DistributeConstraints' invariant.
type FieldType struct {
	Kind Kind

	Media MediaKind

	LiteralTag    LiteralTag
	LiteralString string
	LiteralInt    int64
	LiteralBool   bool

	Name string // enum/class name, resolved against a registry

	Elem    *FieldType   // list element / optional inner
	Key     *FieldType   // map key
	Value   *FieldType   // map value
	Items   []*FieldType // tuple elements
	Choices []*FieldType // union branches, order significant for tie-break

	Constraints []Constraint
}

func String() *FieldType  { return &FieldType{Kind: KindString} }
func Int() *FieldType     { return &FieldType{Kind: KindInt} }
func Float() *FieldType   { return &FieldType{Kind: KindFloat} }
func Bool() *FieldType    { return &FieldType{Kind: KindBool} }
func Null() *FieldType    { return &FieldType{Kind: KindNull} }
func Media(m MediaKind) *FieldType { return &FieldType{Kind: KindMedia, Media: m} }

func LiteralStr(s string) *FieldType {
	return &FieldType{Kind: KindLiteral, LiteralTag: LitString, LiteralString: s}
}

func LiteralInt(i int64) *FieldType {
	return &FieldType{Kind: KindLiteral, LiteralTag: LitInt, LiteralInt: i}
}

func LiteralBool(b bool) *FieldType {
	return &FieldType{Kind: KindLiteral, LiteralTag: LitBool, LiteralBool: b}
}

func EnumRef(name string) *FieldType  { return &FieldType{Kind: KindEnum, Name: name} }
func ClassRef(name string) *FieldType { return &FieldType{Kind: KindClass, Name: name} }

func ListOf(elem *FieldType) *FieldType { return &FieldType{Kind: KindList, Elem: elem} }

func MapOf(key, value *FieldType) *FieldType {
	return &FieldType{Kind: KindMap, Key: key, Value: value}
}

func UnionOf(choices ...*FieldType) *FieldType {
	return &FieldType{Kind: KindUnion, Choices: choices}
}

func TupleOf(items ...*FieldType) *FieldType {
	return &FieldType{Kind: KindTuple, Items: items}
}

func OptionalOf(inner *FieldType) *FieldType {
	return &FieldType{Kind: KindOptional, Elem: inner}
}

// WithConstraint attaches a constraint, returning a new FieldType sharing
// the base's structure. The constraint lives in the node's own
// Constraints slice; there is no separate "Constrained" wrapper kind.
func WithConstraint(base *FieldType, c Constraint) *FieldType {
	clone := *base
	clone.Constraints = append(append([]Constraint{}, base.Constraints...), c)
	return &clone
}

// IsOptional reports whether t is directly Optional-rooted.
func (t *FieldType) IsOptional() bool {
	return t != nil && t.Kind == KindOptional
}

// AllowsNull reports whether Null is a valid value for t, either because
// t is Optional-rooted or because t is a Union containing Null (prior to
// normalization).
func (t *FieldType) AllowsNull() bool {
	if t == nil {
		return false
	}
	if t.Kind == KindOptional || t.Kind == KindNull {
		return true
	}
	if t.Kind == KindUnion {
		for _, c := range t.Choices {
			if c.Kind == KindNull {
				return true
			}
		}
	}
	return false
}

// DistributeConstraints returns a copy of the tree in which every node
// keeps its own Constraints slice: constraints are not moved between
// nodes, so a list element's constraints stay on the element and are
// checked per element. No FieldType in the result needs a distinct
// "Constrained" kind to represent having constraints — Constraints is
// simply non-empty where they apply, so distribution never yields a
// residual wrapper kind.
func DistributeConstraints(t *FieldType) *FieldType {
	if t == nil {
		return nil
	}
	clone := *t
	switch t.Kind {
	case KindList, KindOptional:
		clone.Elem = DistributeConstraints(t.Elem)
	case KindMap:
		clone.Key = DistributeConstraints(t.Key)
		clone.Value = DistributeConstraints(t.Value)
	case KindTuple:
		items := make([]*FieldType, len(t.Items))
		for i, it := range t.Items {
			items[i] = DistributeConstraints(it)
		}
		clone.Items = items
	case KindUnion:
		choices := make([]*FieldType, len(t.Choices))
		for i, c := range t.Choices {
			choices[i] = DistributeConstraints(c)
		}
		clone.Choices = choices
	}
	return &clone
}

// NormalizeOptionalUnion folds a Union containing a Null member into
// Optional of the union of the remaining members, per the invariant that
// Null membership in a Union is normalized to Optional at the type
// boundary, not at every coercion call: jsonish.ParseAndCoerce applies it
// once to the target tree. Field types stored in a registry are not
// normalized by the registry itself.
func NormalizeOptionalUnion(t *FieldType) *FieldType {
	if t == nil {
		return nil
	}

	switch t.Kind {
	case KindList:
		clone := *t
		clone.Elem = NormalizeOptionalUnion(t.Elem)
		t = &clone
	case KindOptional:
		clone := *t
		clone.Elem = NormalizeOptionalUnion(t.Elem)
		t = &clone
	case KindMap:
		clone := *t
		clone.Key = NormalizeOptionalUnion(t.Key)
		clone.Value = NormalizeOptionalUnion(t.Value)
		t = &clone
	case KindTuple:
		items := make([]*FieldType, len(t.Items))
		for i, it := range t.Items {
			items[i] = NormalizeOptionalUnion(it)
		}
		clone := *t
		clone.Items = items
		t = &clone
	case KindUnion:
		choices := make([]*FieldType, len(t.Choices))
		for i, c := range t.Choices {
			choices[i] = NormalizeOptionalUnion(c)
		}
		clone := *t
		clone.Choices = choices
		t = &clone
	}

	if t.Kind != KindUnion {
		return t
	}
	var rest []*FieldType
	hasNull := false
	for _, c := range t.Choices {
		if c.Kind == KindNull {
			hasNull = true
			continue
		}
		rest = append(rest, c)
	}
	if !hasNull {
		return t
	}
	if len(rest) == 1 {
		return OptionalOf(rest[0])
	}
	return OptionalOf(&FieldType{Kind: KindUnion, Choices: rest})
}

// Identity renders a canonical textual identity for t, used for registry
// lookups, dedup in the output-format projection, and diagnostics.
func Identity(t *FieldType) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindString, KindInt, KindFloat, KindBool, KindNull:
		return t.Kind.String()
	case KindMedia:
		return fmt.Sprintf("media(%s)", t.Media)
	case KindLiteral:
		switch t.LiteralTag {
		case LitString:
			return fmt.Sprintf("literal(%q)", t.LiteralString)
		case LitInt:
			return fmt.Sprintf("literal(%d)", t.LiteralInt)
		default:
			return fmt.Sprintf("literal(%t)", t.LiteralBool)
		}
	case KindEnum:
		return fmt.Sprintf("enum(%s)", t.Name)
	case KindClass:
		return fmt.Sprintf("class(%s)", t.Name)
	case KindList:
		return fmt.Sprintf("list(%s)", Identity(t.Elem))
	case KindMap:
		return fmt.Sprintf("map(%s,%s)", Identity(t.Key), Identity(t.Value))
	case KindUnion:
		parts := make([]string, len(t.Choices))
		for i, c := range t.Choices {
			parts[i] = Identity(c)
		}
		return fmt.Sprintf("union(%s)", strings.Join(parts, "|"))
	case KindTuple:
		parts := make([]string, len(t.Items))
		for i, c := range t.Items {
			parts[i] = Identity(c)
		}
		return fmt.Sprintf("tuple(%s)", strings.Join(parts, ","))
	case KindOptional:
		return fmt.Sprintf("optional(%s)", Identity(t.Elem))
	default:
		return "<unknown>"
	}
}

// Depth gives a rough structural depth used by the union tie-break's
// "narrower branch" rule (literal < primitive < composite).
func Depth(t *FieldType) int {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case KindLiteral:
		return 0
	case KindString, KindInt, KindFloat, KindBool, KindNull, KindMedia, KindEnum:
		return 1
	case KindOptional:
		return Depth(t.Elem)
	default:
		return 2
	}
}
