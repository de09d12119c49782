package coerce

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

var firstSignedInt = regexp.MustCompile(`[-+]?\d+`)
var firstSignedFloat = regexp.MustCompile(`[-+]?\d[\d,]*(\.\d+)?`)

// coercePrimitive implements §4.2.2 for Bool/Int/Float/String/Null.
func (c *ctx) coercePrimitive(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if v.Kind == parse.VObject {
		if extracted, ok := extractSingleObjectField(v); ok {
			return c.extractScalarFromObject(extracted, t, path)
		}
	}
	switch t.Kind {
	case ftype.KindBool:
		return c.coerceBool(v, path)
	case ftype.KindInt:
		return c.coerceInt(v, path)
	case ftype.KindFloat:
		return c.coerceFloat(v, path)
	case ftype.KindString:
		return c.coerceString(v, path)
	case ftype.KindNull:
		return c.coerceNull(v, path)
	default:
		return Result{}, fatal(path, "coercePrimitive called with non-primitive kind %s", t.Kind)
	}
}

var boolWords = map[string]bool{
	"true": true, "t": true, "yes": true, "1": true,
	"false": false, "f": false, "no": false, "0": false,
}

func (c *ctx) coerceBool(v *parse.Value, path Path) (Result, error) {
	if v.Kind == parse.VBool {
		r := newResult(v.Bool, 0)
		applyParseFlags(&r, v.Flags)
		return r, nil
	}
	if v.Kind == parse.VString {
		word := strings.ToLower(strings.TrimSpace(v.Str))
		b, ok := boolWords[word]
		if !ok {
			return Result{}, recoverableFailure(path, "%q is not a recognized boolean word", v.Str)
		}
		canonical := word == "true" || word == "false"
		r := newResult(b, 0)
		applyParseFlags(&r, v.Flags)
		if !canonical {
			r.addFlag(FlagStringified)
			r.Score += WeightRecoveryStep
		}
		return r, nil
	}
	return Result{}, recoverableFailure(path, "cannot coerce %s to bool", valueKindName(v))
}

func (c *ctx) coerceInt(v *parse.Value, path Path) (Result, error) {
	switch v.Kind {
	case parse.VNumber:
		r := newResult(nil, 0)
		applyParseFlags(&r, v.Flags)
		f, isInt, err := parseNumLexeme(v.Num)
		if err != nil {
			return Result{}, recoverableFailure(path, "malformed number literal %q", v.Num)
		}
		if isInt {
			r.Value = int64(f)
			return r, nil
		}
		if f == float64(int64(f)) {
			r.Value = int64(f)
			r.addFlag(FlagStringified)
			r.Score += WeightRecoveryStep
			return r, nil
		}
		return Result{}, recoverableFailure(path, "%v has a nonzero fractional part, cannot coerce to int", f)
	case parse.VString:
		m := firstSignedInt.FindString(v.Str)
		if m == "" {
			return Result{}, recoverableFailure(path, "no integer found in %q", v.Str)
		}
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return Result{}, recoverableFailure(path, "cannot parse integer from %q", v.Str)
		}
		r := newResult(n, 0)
		applyParseFlags(&r, v.Flags)
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot coerce %s to int", valueKindName(v))
	}
}

func (c *ctx) coerceFloat(v *parse.Value, path Path) (Result, error) {
	switch v.Kind {
	case parse.VNumber:
		r := newResult(nil, 0)
		applyParseFlags(&r, v.Flags)
		f, _, err := parseNumLexeme(v.Num)
		if err != nil {
			return Result{}, recoverableFailure(path, "malformed number literal %q", v.Num)
		}
		r.Value = f
		return r, nil
	case parse.VString:
		m := firstSignedFloat.FindString(v.Str)
		if m == "" {
			return Result{}, recoverableFailure(path, "no number found in %q", v.Str)
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return Result{}, recoverableFailure(path, "cannot parse float from %q", v.Str)
		}
		r := newResult(f, 0)
		applyParseFlags(&r, v.Flags)
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot coerce %s to float", valueKindName(v))
	}
}

func (c *ctx) coerceString(v *parse.Value, path Path) (Result, error) {
	r := newResult(nil, 0)
	applyParseFlags(&r, v.Flags)
	switch v.Kind {
	case parse.VString:
		r.Value = v.Str
		return r, nil
	case parse.VNumber:
		r.Value = v.Num
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	case parse.VBool:
		r.Value = strconv.FormatBool(v.Bool)
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	case parse.VNull:
		r.Value = ""
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	case parse.VArray, parse.VObject:
		r.Value = canonicalJSON(v)
		r.addFlag(FlagStringified)
		r.Score += WeightObjectToScalar
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot coerce %s to string", valueKindName(v))
	}
}

func (c *ctx) coerceNull(v *parse.Value, path Path) (Result, error) {
	if v.Kind == parse.VNull {
		return newResult(nil, 0), nil
	}
	return Result{}, recoverableFailure(path, "cannot coerce %s to null", valueKindName(v))
}

func (c *ctx) coerceMedia(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	r := newResult(nil, 0)
	applyParseFlags(&r, v.Flags)
	switch v.Kind {
	case parse.VString:
		r.Value = map[string]string{"url": v.Str}
		return r, nil
	case parse.VObject:
		fields := map[string]string{}
		for _, kv := range v.ObjectPairs() {
			if kv.Value.Kind != parse.VString {
				continue
			}
			switch strings.ToLower(kv.Key) {
			case "url":
				fields["url"] = kv.Value.Str
			case "base64", "data":
				fields["base64"] = kv.Value.Str
			case "media_type", "mediatype", "mime_type", "mimetype":
				fields["media_type"] = kv.Value.Str
			}
		}
		if fields["url"] == "" && fields["base64"] == "" {
			return Result{}, recoverableFailure(path, "media object has neither url nor base64 payload")
		}
		r.Value = fields
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot coerce %s to media(%s)", valueKindName(v), t.Media)
	}
}

// parseNumLexeme reports the numeric value of repr and whether it was
// written without a fractional/exponent part.
func parseNumLexeme(repr string) (value float64, isInt bool, err error) {
	cleaned := strings.ReplaceAll(repr, ",", "")
	if !strings.ContainsAny(cleaned, ".eE") {
		n, perr := strconv.ParseInt(cleaned, 10, 64)
		if perr == nil {
			return float64(n), true, nil
		}
	}
	f, ferr := strconv.ParseFloat(cleaned, 64)
	if ferr != nil {
		return 0, false, ferr
	}
	return f, false, nil
}

// extractSingleObjectField implements the "object → scalar extraction"
// weight class of §4.3: an Object with exactly one distinct key can
// stand in for a scalar/literal/enum target by unwrapping to that
// field's value.
func extractSingleObjectField(v *parse.Value) (*parse.Value, bool) {
	var only *parse.Value
	seen := make(map[string]bool)
	for _, kv := range v.ObjectPairs() {
		if !seen[kv.Key] {
			seen[kv.Key] = true
			only = kv.Value
		} else {
			only = kv.Value // last-write-wins for the repeated key
		}
	}
	if len(seen) != 1 {
		return nil, false
	}
	return only, true
}

// extractScalarFromObject recurses the coercion against field and
// layers on the object→scalar extraction penalty.
func (c *ctx) extractScalarFromObject(field *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	res, err := c.coerce(field, t, path)
	if err != nil {
		return Result{}, err
	}
	res.addFlag(FlagImplicitWrap)
	res.Score += WeightObjectToScalar
	return res, nil
}

func valueKindName(v *parse.Value) string {
	switch v.Kind {
	case parse.VNull:
		return "null"
	case parse.VBool:
		return "bool"
	case parse.VNumber:
		return "number"
	case parse.VString:
		return "string"
	case parse.VArray:
		return "array"
	case parse.VObject:
		return "object"
	case parse.VAnyOf:
		return "anyOf"
	default:
		return "unknown"
	}
}
