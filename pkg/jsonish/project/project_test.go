package project

import (
	"testing"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

func sealedRegistry(t *testing.T, build func(r *registry.Registry)) *registry.Registry {
	t.Helper()
	r := registry.New()
	build(r)
	if err := r.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}
	return r
}

func TestProjectScalarTargetIsEmpty(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {})

	p, err := Project(ftype.Int(), r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(p.Classes) != 0 || len(p.Enums) != 0 {
		t.Fatalf("expected empty projection, got %+v", p)
	}
}

func TestProjectCollectsDirectClassAndEnum(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {
		r.AddEnum(registry.Enum{Name: "Color", Values: []registry.EnumValue{{Name: "RED"}, {Name: "BLUE"}}})
		r.AddClass(registry.Class{Name: "Point", Fields: []registry.ClassField{
			{Name: "x", Type: ftype.Int()},
			{Name: "color", Type: ftype.EnumRef("Color")},
		}})
	})

	p, err := Project(ftype.ClassRef("Point"), r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(p.Classes) != 1 || p.Classes[0].Name != "Point" {
		t.Fatalf("classes = %+v, want [Point]", p.Classes)
	}
	if len(p.Enums) != 1 || p.Enums[0].Name != "Color" {
		t.Fatalf("enums = %+v, want [Color]", p.Enums)
	}
}

func TestProjectVisitsEachClassOnce(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {
		r.AddClass(registry.Class{Name: "Leaf", Fields: []registry.ClassField{
			{Name: "v", Type: ftype.Int()},
		}})
		r.AddClass(registry.Class{Name: "Pair", Fields: []registry.ClassField{
			{Name: "a", Type: ftype.ClassRef("Leaf")},
			{Name: "b", Type: ftype.ClassRef("Leaf")},
		}})
	})

	p, err := Project(ftype.ClassRef("Pair"), r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	count := 0
	for _, c := range p.Classes {
		if c.Name == "Leaf" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Leaf visited %d times, want 1", count)
	}
}

func TestProjectRecursiveClassReportedSeparately(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {
		r.AddClass(registry.Class{Name: "Node", Fields: []registry.ClassField{
			{Name: "value", Type: ftype.Int()},
			{Name: "next", Type: ftype.OptionalOf(ftype.ClassRef("Node"))},
		}})
	})

	p, err := Project(ftype.ClassRef("Node"), r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(p.Classes) != 1 || p.Classes[0].Name != "Node" {
		t.Fatalf("classes = %+v, want single Node entry, not re-expanded", p.Classes)
	}
	if !p.Recursive["Node"] {
		t.Error("expected Node to be reported in the recursive set")
	}
}

func TestProjectWalksUnionUnderComposites(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {
		r.AddEnum(registry.Enum{Name: "Status", Values: []registry.EnumValue{{Name: "OK"}}})
		r.AddClass(registry.Class{Name: "Event", Fields: []registry.ClassField{{Name: "s", Type: ftype.Int()}}})
	})

	target := ftype.ListOf(ftype.UnionOf(ftype.EnumRef("Status"), ftype.ClassRef("Event")))
	p, err := Project(target, r)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(p.Enums) != 1 || len(p.Classes) != 1 {
		t.Fatalf("expected one enum and one class reachable through list<union<...>>, got enums=%+v classes=%+v", p.Enums, p.Classes)
	}
}

func TestProjectUnknownClassIsError(t *testing.T) {
	r := sealedRegistry(t, func(r *registry.Registry) {})

	_, err := Project(ftype.ClassRef("Missing"), r)
	if err == nil {
		t.Fatal("expected error for unresolved class reference")
	}
}

func TestProjectAppliesOverridesAtCollectionTime(t *testing.T) {
	base := registry.New()
	base.AddClass(registry.Class{Name: "Point", Fields: []registry.ClassField{
		{Name: "x", Type: ftype.Int()},
	}})
	if err := base.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}

	overridden := base.WithOverrides(registry.Overrides{
		Aliases: map[string]string{"Point.x": "coordinate_x"},
	})

	p, err := Project(ftype.ClassRef("Point"), overridden)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(p.Classes) != 1 {
		t.Fatalf("expected one class, got %+v", p.Classes)
	}
	if p.Classes[0].Fields[0].Alias != "coordinate_x" {
		t.Errorf("field alias = %q, want coordinate_x (override must apply at collection time)", p.Classes[0].Fields[0].Alias)
	}
}
