// Package registryjson renders a registry's effective classes and enums as
// a JSON Schema document, for debugging and docs tooling — not the hot
// coercion path. It walks the dynamic FieldType/Registry graph the same
// way package project does, and populates invopop/jsonschema's Schema
// struct directly rather than through Reflector, since there is no static
// Go struct per registered class to reflect over.
package registryjson

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/project"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

// Generate produces a JSON Schema Draft 2020-12 document describing
// target against reg: every class/enum target transitively references
// becomes a named definition, and the root schema either inlines target's
// shape or $refs a definition when target is itself a class or enum.
func Generate(target *ftype.FieldType, reg *registry.Registry) (*jsonschema.Schema, error) {
	proj, err := project.Project(target, reg)
	if err != nil {
		return nil, fmt.Errorf("registryjson: %w", err)
	}

	defs := make(jsonschema.Definitions, len(proj.Classes)+len(proj.Enums))
	for _, c := range proj.Classes {
		defs[c.Name] = classSchema(c)
	}
	for _, e := range proj.Enums {
		defs[e.Name] = enumSchema(e)
	}

	root := fieldTypeSchema(target)
	if len(defs) > 0 {
		root.Definitions = defs
	}
	root.Version = "https://json-schema.org/draft/2020-12/schema"
	return root, nil
}

func classSchema(c registry.Class) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, f := range c.Fields {
		name := f.Name
		if f.Alias != "" {
			name = f.Alias
		}
		fs := fieldTypeSchema(f.Type)
		if f.Description != "" {
			fs.Description = f.Description
		}
		s.Properties.Set(name, fs)
		if !f.Type.IsOptional() {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

func enumSchema(e registry.Enum) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	for _, v := range e.Values {
		if v.Skip {
			continue
		}
		name := v.Name
		if v.Alias != "" {
			name = v.Alias
		}
		s.Enum = append(s.Enum, name)
	}
	return s
}

func fieldTypeSchema(t *ftype.FieldType) *jsonschema.Schema {
	if t == nil {
		return &jsonschema.Schema{}
	}
	switch t.Kind {
	case ftype.KindString:
		return &jsonschema.Schema{Type: "string"}
	case ftype.KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case ftype.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case ftype.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case ftype.KindNull:
		return &jsonschema.Schema{Type: "null"}
	case ftype.KindMedia:
		return &jsonschema.Schema{Type: "string", Description: fmt.Sprintf("media(%s), base64 or URL", t.Media)}
	case ftype.KindLiteral:
		return literalSchema(t)
	case ftype.KindEnum:
		return &jsonschema.Schema{Ref: "#/$defs/" + t.Name}
	case ftype.KindClass:
		return &jsonschema.Schema{Ref: "#/$defs/" + t.Name}
	case ftype.KindList:
		return &jsonschema.Schema{Type: "array", Items: fieldTypeSchema(t.Elem)}
	case ftype.KindMap:
		return &jsonschema.Schema{Type: "object", AdditionalProperties: fieldTypeSchema(t.Value)}
	case ftype.KindTuple:
		items := make([]*jsonschema.Schema, len(t.Items))
		for i, it := range t.Items {
			items[i] = fieldTypeSchema(it)
		}
		return &jsonschema.Schema{Type: "array", PrefixItems: items}
	case ftype.KindUnion:
		choices := make([]*jsonschema.Schema, len(t.Choices))
		for i, c := range t.Choices {
			choices[i] = fieldTypeSchema(c)
		}
		return &jsonschema.Schema{AnyOf: choices}
	case ftype.KindOptional:
		inner := fieldTypeSchema(t.Elem)
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{inner, {Type: "null"}}}
	default:
		return &jsonschema.Schema{}
	}
}

func literalSchema(t *ftype.FieldType) *jsonschema.Schema {
	switch t.LiteralTag {
	case ftype.LitString:
		return &jsonschema.Schema{Type: "string", Const: t.LiteralString}
	case ftype.LitInt:
		return &jsonschema.Schema{Type: "integer", Const: t.LiteralInt}
	default:
		return &jsonschema.Schema{Type: "boolean", Const: t.LiteralBool}
	}
}
