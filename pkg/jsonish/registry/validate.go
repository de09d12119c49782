package registry

import (
	"encoding/json"
	"fmt"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// registryMetaSchema constrains the *shape* of a registry's effective
// classes/enums (identifier-like names, non-empty enum value lists) the
// same way the teacher's validateSemantic constrains a runbook document
// against a generated JSON Schema. It never sees raw LLM output — only
// the registry definitions supplied at schema-load time.
const registryMetaSchema = `{
  "type": "object",
  "properties": {
    "classes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "fields"],
        "properties": {
          "name": {"type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$"},
          "fields": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    },
    "enums": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "values"],
        "properties": {
          "name": {"type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$"},
          "values": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    }
  }
}`

type registryDoc struct {
	Classes []Class `json:"classes"`
	Enums   []Enum  `json:"enums"`
}

// validateShape compiles the fixed meta-schema once and checks the
// registry's effective classes/enums against it, surfacing malformed
// registries (bad names, empty enum value lists) before Seal completes.
func validateShape(classesIn []Class, enumsIn []Enum) error {
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(registryMetaSchema), &schemaDoc); err != nil {
		return fmt.Errorf("registry: internal meta-schema invalid: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("registry-shape.json", schemaDoc); err != nil {
		return fmt.Errorf("registry: add meta-schema resource: %w", err)
	}
	sch, err := c.Compile("registry-shape.json")
	if err != nil {
		return fmt.Errorf("registry: compile meta-schema: %w", err)
	}

	classes, enums := []map[string]any{}, []map[string]any{}
	for _, cl := range classesIn {
		fields := []map[string]any{}
		for _, f := range cl.Fields {
			fields = append(fields, map[string]any{"name": f.Name})
		}
		classes = append(classes, map[string]any{"name": cl.Name, "fields": fields})
	}
	for _, e := range enumsIn {
		values := []map[string]any{}
		for _, v := range e.Values {
			values = append(values, map[string]any{"name": v.Name})
		}
		enums = append(enums, map[string]any{"name": e.Name, "values": values})
	}
	doc := map[string]any{"classes": classes, "enums": enums}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("registry: marshal for shape validation: %w", err)
	}
	var inst interface{}
	if err := json.Unmarshal(data, &inst); err != nil {
		return fmt.Errorf("registry: unmarshal for shape validation: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("registry: shape validation failed: %w", err)
	}
	return nil
}
