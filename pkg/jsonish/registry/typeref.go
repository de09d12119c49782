package registry

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
)

// parseTypeRef is a small hand-written recursive-descent parser for the
// YAML fixture type grammar. It is intentionally minimal — the schema
// definition language proper is an external collaborator (spec.md §1);
// this only needs to express enough of the algebra for test fixtures and
// the demo CLI to construct FieldType values without Go struct literals.
func parseTypeRef(s string, enumNames map[string]bool) (*ftype.FieldType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type reference")
	}

	if parts := splitTopLevel(s, '|'); len(parts) > 1 {
		choices := make([]*ftype.FieldType, len(parts))
		for i, p := range parts {
			t, err := parseTypeRef(p, enumNames)
			if err != nil {
				return nil, err
			}
			choices[i] = t
		}
		return ftype.UnionOf(choices...), nil
	}

	if inner, ok := unwrap(s, "optional<", ">"); ok {
		elem, err := parseTypeRef(inner, enumNames)
		if err != nil {
			return nil, err
		}
		return ftype.OptionalOf(elem), nil
	}
	if inner, ok := unwrap(s, "list<", ">"); ok {
		elem, err := parseTypeRef(inner, enumNames)
		if err != nil {
			return nil, err
		}
		return ftype.ListOf(elem), nil
	}
	if inner, ok := unwrap(s, "map<", ">"); ok {
		parts := splitTopLevel(inner, ',')
		if len(parts) != 2 {
			return nil, fmt.Errorf("map<K,V> requires exactly 2 type args, got %q", inner)
		}
		key, err := parseTypeRef(parts[0], enumNames)
		if err != nil {
			return nil, err
		}
		val, err := parseTypeRef(parts[1], enumNames)
		if err != nil {
			return nil, err
		}
		return ftype.MapOf(key, val), nil
	}
	if inner, ok := unwrap(s, "tuple<", ">"); ok {
		parts := splitTopLevel(inner, ',')
		items := make([]*ftype.FieldType, len(parts))
		for i, p := range parts {
			t, err := parseTypeRef(p, enumNames)
			if err != nil {
				return nil, err
			}
			items[i] = t
		}
		return ftype.TupleOf(items...), nil
	}
	if inner, ok := unwrap(s, "literal(", ")"); ok {
		inner = strings.TrimSpace(inner)
		if strings.HasPrefix(inner, `"`) && strings.HasSuffix(inner, `"`) && len(inner) >= 2 {
			return ftype.LiteralStr(inner[1 : len(inner)-1]), nil
		}
		if inner == "true" || inner == "false" {
			return ftype.LiteralBool(inner == "true"), nil
		}
		var i int64
		if _, err := fmt.Sscanf(inner, "%d", &i); err == nil {
			return ftype.LiteralInt(i), nil
		}
		return nil, fmt.Errorf("unrecognized literal %q", inner)
	}

	switch s {
	case "string":
		return ftype.String(), nil
	case "int":
		return ftype.Int(), nil
	case "float":
		return ftype.Float(), nil
	case "bool":
		return ftype.Bool(), nil
	case "null":
		return ftype.Null(), nil
	case "image":
		return ftype.Media(ftype.MediaImage), nil
	case "audio":
		return ftype.Media(ftype.MediaAudio), nil
	}

	// Bare identifier: resolved against enumNames (collected from the
	// same document) since class and enum names are syntactically
	// indistinguishable in this grammar.
	if isIdentifier(s) {
		if enumNames[s] {
			return ftype.EnumRef(s), nil
		}
		return ftype.ClassRef(s), nil
	}
	return nil, fmt.Errorf("unrecognized type reference %q", s)
}

func unwrap(s, prefix, suffix string) (string, bool) {
	if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, suffix) {
		return s[len(prefix) : len(s)-len(suffix)], true
	}
	return "", false
}

// splitTopLevel splits s on sep, but only at bracket depth 0, so
// "map<string,int>|bool" splits into ["map<string,int>", "bool"].
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[last:]))
	return parts
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}
