package coerce

import (
	"testing"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

func emptyRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := r.Seal(); err != nil {
		t.Fatalf("seal empty registry: %v", err)
	}
	return r
}

// TestSpecScenarios exercises the end-to-end scenario table (§8).
func TestSpecScenarios(t *testing.T) {
	reg := emptyRegistry(t)

	t.Run("1_substring_literal", func(t *testing.T) {
		v := parse.Parse("The answer is TWO")
		r, err := Coerce(v, ftype.LiteralStr("TWO"), reg, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Value != "TWO" {
			t.Errorf("got %v, want TWO", r.Value)
		}
		if r.Score <= 0 {
			t.Errorf("expected positive substring penalty, got score %d", r.Score)
		}
	})

	t.Run("2_case_insensitive_literal", func(t *testing.T) {
		v := parse.Parse("Two")
		r, err := Coerce(v, ftype.LiteralStr("TWO"), reg, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Value != "TWO" {
			t.Errorf("got %v, want TWO", r.Value)
		}
		if r.Score <= 0 {
			t.Errorf("expected positive case penalty, got score %d", r.Score)
		}
	})

	t.Run("3_unambiguous_int_union", func(t *testing.T) {
		v := parse.Parse("2")
		target := ftype.UnionOf(ftype.LiteralInt(2), ftype.LiteralInt(3))
		r, err := Coerce(v, target, reg, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Value != int64(2) {
			t.Errorf("got %v, want 2", r.Value)
		}
		if r.Score != 0 {
			t.Errorf("expected score 0 for exact match, got %d", r.Score)
		}
	})

	t.Run("4_ambiguous_loose_int_fails", func(t *testing.T) {
		v := parse.Parse("2 or 3")
		target := ftype.UnionOf(ftype.LiteralInt(2), ftype.LiteralInt(3))
		_, err := Coerce(v, target, reg, nil, Options{})
		if err == nil {
			t.Fatal("expected failure, got success")
		}
	})

	t.Run("5_object_scalar_extraction", func(t *testing.T) {
		v := parse.Parse(`{ "status": 1 }`)
		target := ftype.UnionOf(ftype.LiteralInt(1), ftype.LiteralBool(true), ftype.LiteralStr("THREE"))
		r, err := Coerce(v, target, reg, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Value != int64(1) {
			t.Errorf("got %v, want 1", r.Value)
		}
	})

	t.Run("6_multi_key_object_fails", func(t *testing.T) {
		v := parse.Parse(`{ "status": 1, "message": "x" }`)
		target := ftype.UnionOf(ftype.LiteralInt(1), ftype.LiteralBool(true), ftype.LiteralStr("THREE"))
		_, err := Coerce(v, target, reg, nil, Options{})
		if err == nil {
			t.Fatal("expected failure for multi-key object with no single scalar to extract")
		}
	})

	t.Run("7_fenced_trailing_comma_class", func(t *testing.T) {
		r := registry.New()
		mustAddClass(t, r, registry.Class{Name: "TestClass", Fields: []registry.ClassField{
			{Name: "a", Type: ftype.Int()},
		}})
		if err := r.Seal(); err != nil {
			t.Fatalf("seal: %v", err)
		}

		raw := "```json\n{\"a\":1,}\n```"
		v := parse.Parse(raw)
		res, err := Coerce(v, ftype.ClassRef("TestClass"), r, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cv, ok := res.Value.(ClassValue)
		if !ok {
			t.Fatalf("expected ClassValue, got %T", res.Value)
		}
		a, _ := cv.Fields.Get("a")
		if a != int64(1) {
			t.Errorf("field a = %v, want 1", a)
		}
		if res.Flags[FlagUsedFence] == 0 {
			t.Error("expected used_fence flag")
		}
		if res.Flags[FlagRecoveredTrailingComma] == 0 {
			t.Error("expected recovered_trailing_comma flag")
		}
	})

	t.Run("8_first_match_tie_break", func(t *testing.T) {
		v := parse.Parse("TWO or THREE")
		target := ftype.UnionOf(ftype.LiteralStr("TWO"), ftype.LiteralStr("THREE"))
		r, err := Coerce(v, target, reg, nil, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Value != "TWO" {
			t.Errorf("got %v, want TWO (first-match tie-break)", r.Value)
		}
	})
}

// mustAddClass is shared with registry_test.go's helper name by
// convention but lives in this package's own test scope.
func mustAddClass(t *testing.T, r *registry.Registry, c registry.Class) {
	t.Helper()
	if err := r.AddClass(c); err != nil {
		t.Fatalf("AddClass(%s): %v", c.Name, err)
	}
}
