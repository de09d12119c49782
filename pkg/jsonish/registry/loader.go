package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
)

// yamlDoc is the on-disk test-fixture form of a registry: classes and
// enums authored in YAML, the same way the teacher authors runbooks.
type yamlDoc struct {
	Classes []yamlClass `yaml:"classes"`
	Enums   []yamlEnum  `yaml:"enums"`
}

type yamlClass struct {
	Name   string       `yaml:"name"`
	Fields []yamlField  `yaml:"fields"`
}

type yamlField struct {
	Name        string `yaml:"name"`
	Alias       string `yaml:"alias,omitempty"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type"`
}

type yamlEnum struct {
	Name   string           `yaml:"name"`
	Values []yamlEnumValue  `yaml:"values"`
}

type yamlEnumValue struct {
	Name        string `yaml:"name"`
	Alias       string `yaml:"alias,omitempty"`
	Description string `yaml:"description,omitempty"`
	Skip        bool   `yaml:"skip,omitempty"`
}

// LoadRegistryYAML loads a registry fixture from a YAML file and seals
// it. The "type" string for each class field is resolved with
// ParseTypeRef, which understands primitive names, "list<T>", "map<K,V>",
// "optional<T>", class/enum names, and pipe-separated unions ("A|B").
func LoadRegistryYAML(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}

	enumNames := make(map[string]bool, len(doc.Enums))
	for _, e := range doc.Enums {
		enumNames[e.Name] = true
	}

	r := New()
	for _, e := range doc.Enums {
		values := make([]EnumValue, len(e.Values))
		for i, v := range e.Values {
			values[i] = EnumValue{Name: v.Name, Alias: v.Alias, Description: v.Description, Skip: v.Skip}
		}
		if err := r.AddEnum(Enum{Name: e.Name, Values: values}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Classes {
		fields := make([]ClassField, len(c.Fields))
		for i, f := range c.Fields {
			t, err := ParseTypeRef(f.Type, enumNames)
			if err != nil {
				return nil, fmt.Errorf("registry: class %s field %s: %w", c.Name, f.Name, err)
			}
			fields[i] = ClassField{Name: f.Name, Alias: f.Alias, Description: f.Description, Type: t}
		}
		if err := r.AddClass(Class{Name: c.Name, Fields: fields}); err != nil {
			return nil, err
		}
	}

	if err := r.Seal(); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseTypeRef parses the small textual type-reference grammar used by
// YAML registry fixtures: primitives (string, int, float, bool, null),
// "list<T>", "map<K,V>", "optional<T>", "tuple<T1,T2,...>", pipe-separated
// unions ("A|B|C"), and bare names. A bare name resolves to an Enum
// reference if it appears in enumNames, otherwise a Class reference —
// the two are syntactically indistinguishable, so the fixture loader
// resolves against the enum set collected from the same document.
func ParseTypeRef(s string, enumNames map[string]bool) (*ftype.FieldType, error) {
	return parseTypeRef(s, enumNames)
}
