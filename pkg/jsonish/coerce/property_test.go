package coerce

import (
	"testing"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

func TestOptionalNullPassthrough(t *testing.T) {
	reg := emptyRegistry(t)
	v := parse.Parse("null")
	r, err := Coerce(v, ftype.OptionalOf(ftype.Int()), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Value != nil {
		t.Errorf("got %v, want nil", r.Value)
	}
	if r.Score != 0 {
		t.Errorf("score = %d, want 0", r.Score)
	}
}

func TestOptionalDefaultsOnFailure(t *testing.T) {
	reg := emptyRegistry(t)
	v := parse.Parse("not a number at all")
	r, err := Coerce(v, ftype.OptionalOf(ftype.Int()), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Value != nil {
		t.Errorf("got %v, want nil default", r.Value)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning recording the defaulted optional")
	}
}

func TestEnumAmbiguityFails(t *testing.T) {
	reg := registry.New()
	if err := reg.AddEnum(registry.Enum{Name: "Color", Values: []registry.EnumValue{
		{Name: "RED"}, {Name: "REDWOOD"},
	}}); err != nil {
		t.Fatalf("AddEnum: %v", err)
	}
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse("REDWOOD")
	_, err := Coerce(v, ftype.EnumRef("Color"), reg, nil, Options{})
	if err == nil {
		t.Fatal("expected ambiguous-match failure")
	}
}

func TestEnumUnambiguousExactWins(t *testing.T) {
	reg := registry.New()
	if err := reg.AddEnum(registry.Enum{Name: "Color", Values: []registry.EnumValue{
		{Name: "RED"}, {Name: "BLUE"},
	}}); err != nil {
		t.Fatalf("AddEnum: %v", err)
	}
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse("red")
	r, err := Coerce(v, ftype.EnumRef("Color"), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Value != "RED" {
		t.Errorf("got %v, want RED", r.Value)
	}
}

func TestMapOrderIndependence(t *testing.T) {
	reg := emptyRegistry(t)
	target := ftype.MapOf(ftype.String(), ftype.Int())

	a := parse.Parse(`{"x": 1, "y": 2}`)
	b := parse.Parse(`{"y": 2, "x": 1}`)

	ra, err := Coerce(a, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb, err := Coerce(b, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ra.Score != rb.Score {
		t.Errorf("scores differ by key order: %d vs %d", ra.Score, rb.Score)
	}
}

func TestMapDuplicateKeyPenalty(t *testing.T) {
	reg := emptyRegistry(t)
	target := ftype.MapOf(ftype.String(), ftype.Int())
	v := parse.Parse(`{"x": 1, "x": 2}`)
	r, err := Coerce(v, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Flags[FlagDuplicateMapKey] == 0 {
		t.Error("expected duplicate_map_key flag")
	}
}

func TestListScalarWrapping(t *testing.T) {
	reg := emptyRegistry(t)
	v := parse.Parse("42")
	r, err := Coerce(v, ftype.ListOf(ftype.Int()), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := r.Value.([]any)
	if !ok || len(items) != 1 || items[0] != int64(42) {
		t.Errorf("got %#v, want single-element list [42]", r.Value)
	}
	if r.Flags[FlagListWrapped] == 0 {
		t.Error("expected scalar_to_list_wrap flag")
	}
}

func TestTupleWrongLengthFails(t *testing.T) {
	reg := emptyRegistry(t)
	v := parse.Parse("[1, 2]")
	_, err := Coerce(v, ftype.TupleOf(ftype.Int(), ftype.Int(), ftype.Int()), reg, nil, Options{})
	if err == nil {
		t.Fatal("expected failure for wrong tuple length")
	}
}

func TestClassExtraKeysFlagged(t *testing.T) {
	reg := registry.New()
	mustAddClass(t, reg, registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "x", Type: ftype.Int()},
		{Name: "y", Type: ftype.Int()},
	}})
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse(`{"x": 1, "y": 2, "z": 3}`)
	r, err := Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Flags[FlagExtraKeys] == 0 {
		t.Error("expected extra_keys flag for unconsumed key z")
	}
}

func TestClassCaseInsensitiveKeyMatch(t *testing.T) {
	reg := registry.New()
	mustAddClass(t, reg, registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "X", Type: ftype.Int()},
	}})
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse(`{"x": 5}`)
	r, err := Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cv := r.Value.(ClassValue)
	x, _ := cv.Fields.Get("X")
	if x != int64(5) {
		t.Errorf("X = %v, want 5", x)
	}
}

func TestClassMissingRequiredFieldFails(t *testing.T) {
	reg := registry.New()
	mustAddClass(t, reg, registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "x", Type: ftype.Int()},
	}})
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse(`{}`)
	_, err := Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{})
	if err == nil {
		t.Fatal("expected failure for missing required field")
	}
}

func TestClassAllowPartialDefaultsMissingField(t *testing.T) {
	reg := registry.New()
	mustAddClass(t, reg, registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "x", Type: ftype.Int()},
	}})
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	v := parse.Parse(`{}`)
	r, err := Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{AllowPartial: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cv := r.Value.(ClassValue)
	x, _ := cv.Fields.Get("x")
	if x != nil {
		t.Errorf("x = %v, want nil default", x)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for the defaulted required field")
	}
}

func TestMonotonicityRecoveryNeverLowersScore(t *testing.T) {
	reg := emptyRegistry(t)
	target := ftype.Int()

	clean := parse.Parse("42")
	messy := parse.Parse("```json\n42\n```")

	rc, err := Coerce(clean, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm, err := Coerce(messy, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rm.Score < rc.Score {
		t.Errorf("fenced candidate scored lower (%d) than the clean one (%d)", rm.Score, rc.Score)
	}
}

func TestConstrainedAssertFailureIsFatalToCandidate(t *testing.T) {
	reg := emptyRegistry(t)
	target := ftype.WithConstraint(ftype.Int(), ftype.Constraint{
		Name: "positive", Kind: ftype.Assert, Expr: "this > 0",
	})
	v := parse.Parse("-5")
	_, err := Coerce(v, target, reg, nil, Options{})
	if err == nil {
		t.Fatal("expected assert failure for -5 > 0")
	}
}

func TestUnionTieBreakFirstVsShortest(t *testing.T) {
	reg := registry.New()
	if err := reg.AddEnum(registry.Enum{Name: "Color", Values: []registry.EnumValue{
		{Name: "Red"},
	}}); err != nil {
		t.Fatalf("AddEnum: %v", err)
	}
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	// Both branches match "red" only case-insensitively (one recovery
	// flag each, same weight), so they tie on score and flag count. The
	// enum branch is declared first and is structurally wider (depth 1)
	// than the literal branch (depth 0), so the two tie-break policies
	// must disagree on the winner.
	target := ftype.UnionOf(ftype.EnumRef("Color"), ftype.LiteralStr("RED"))
	v := parse.Parse(`"red"`)

	rFirst, err := Coerce(v, target, reg, nil, Options{UnionTieBreak: TieFirst})
	if err != nil {
		t.Fatalf("TieFirst: unexpected error: %v", err)
	}
	if rFirst.Value != "Red" {
		t.Errorf("TieFirst winner = %v, want Red (first-declared enum branch)", rFirst.Value)
	}

	rShortest, err := Coerce(v, target, reg, nil, Options{UnionTieBreak: TieShortest})
	if err != nil {
		t.Fatalf("TieShortest: unexpected error: %v", err)
	}
	if rShortest.Value != "RED" {
		t.Errorf("TieShortest winner = %v, want RED (narrower literal branch)", rShortest.Value)
	}

	if rFirst.Value == rShortest.Value {
		t.Fatal("TieFirst and TieShortest resolved the same genuine tie identically")
	}
}

func TestMaxScoreRejectsNonUnionOverCap(t *testing.T) {
	reg := registry.New()
	mustAddClass(t, reg, registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "a", Type: ftype.Int()},
	}})
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	raw := "```json\n{a:1,}\n```"
	v := parse.Parse(raw)

	r, err := Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error with no cap: %v", err)
	}
	if r.Score < 2 {
		t.Fatalf("expected a heavily-recovered score above 1 to set up the cap test, got %d", r.Score)
	}

	_, err = Coerce(v, ftype.ClassRef("Point"), reg, nil, Options{MaxScore: 1})
	if err == nil {
		t.Fatal("expected MaxScore: 1 to reject a class result scoring well above the cap")
	}
	cerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	// The fenced and substring readings each exceed the cap and the raw
	// string cannot wrap into Point, so every parser candidate fails.
	if cerr.Kind != KindUnresolvedUnion {
		t.Errorf("Kind = %v, want KindUnresolvedUnion", cerr.Kind)
	}
}

func TestConstrainedCheckFailureIsWarningOnly(t *testing.T) {
	reg := emptyRegistry(t)
	target := ftype.WithConstraint(ftype.Int(), ftype.Constraint{
		Name: "is_even", Kind: ftype.Check, Expr: "this % 2 == 0",
	})
	v := parse.Parse("3")
	r, err := Coerce(v, target, reg, nil, Options{})
	if err != nil {
		t.Fatalf("check failure should not be fatal: %v", err)
	}
	if r.Value != int64(3) {
		t.Errorf("got %v, want 3", r.Value)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for the failed check")
	}
}
