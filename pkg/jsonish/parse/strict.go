package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// strictJSON attempts a strict JSON parse of the entire input (spec step
// 1), decoding token-by-token so object key order is preserved (spec.md
// §3.2: "Object keys are ordered") and numeric lexemes survive intact in
// Value.Num rather than collapsing through float64.
func strictJSON(input string) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(input)))
	dec.UseNumber()

	v, err := decodeValue(dec, Span{0, len(input)})
	if err != nil {
		return nil, fmt.Errorf("strict parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("strict parse: trailing content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, span Span) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok, span)
}

func decodeFromToken(dec *json.Decoder, tok json.Token, span Span) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return newNull(span), nil
	case bool:
		return newBool(t, span), nil
	case json.Number:
		return newNumber(string(t), span), nil
	case string:
		return newString(t, span), nil
	case json.Delim:
		switch t {
		case '[':
			var items []*Value
			for dec.More() {
				item, err := decodeValue(dec, span)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return newArray(items, span), nil
		case '{':
			obj := newObject(span)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("strict parse: non-string object key %v", keyTok)
				}
				val, err := decodeValue(dec, span)
				if err != nil {
					return nil, err
				}
				obj.objectAppend(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		default:
			return nil, fmt.Errorf("strict parse: unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("strict parse: unexpected token %v (%T)", tok, tok)
	}
}
