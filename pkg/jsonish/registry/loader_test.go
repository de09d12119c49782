package registry

import (
	"testing"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
)

func TestLoadRegistryYAML(t *testing.T) {
	r, err := LoadRegistryYAML("testdata/sample.registry.yaml")
	if err != nil {
		t.Fatalf("LoadRegistryYAML: %v", err)
	}

	enum, ok := r.Enum("Priority")
	if !ok {
		t.Fatal("expected Priority enum to load")
	}
	if len(enum.Values) != 3 {
		t.Fatalf("Priority has %d values, want 3", len(enum.Values))
	}
	if enum.Values[2].Alias != "critical" {
		t.Errorf("HIGH alias = %q, want critical", enum.Values[2].Alias)
	}

	cls, ok := r.Class("Ticket")
	if !ok {
		t.Fatal("expected Ticket class to load")
	}
	want := map[string]ftype.Kind{
		"id":       ftype.KindInt,
		"title":    ftype.KindString,
		"priority": ftype.KindEnum,
		"tags":     ftype.KindList,
		"assignee": ftype.KindOptional,
	}
	if len(cls.Fields) != len(want) {
		t.Fatalf("Ticket has %d fields, want %d", len(cls.Fields), len(want))
	}
	for _, f := range cls.Fields {
		k, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected field %q", f.Name)
			continue
		}
		if f.Type.Kind != k {
			t.Errorf("field %s kind = %s, want %s", f.Name, f.Type.Kind, k)
		}
	}
}

func TestLoadRegistryYAMLMissingFile(t *testing.T) {
	_, err := LoadRegistryYAML("testdata/does-not-exist.registry.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
