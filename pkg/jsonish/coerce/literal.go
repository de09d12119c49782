package coerce

import (
	"strconv"
	"strings"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/normalize"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceLiteral implements §4.2.3: Int/Bool literals compare for
// equality after primitive coercion; String literals use the
// normalized substring/alias match of §4.4.
func (c *ctx) coerceLiteral(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if v.Kind == parse.VObject {
		if extracted, ok := extractSingleObjectField(v); ok {
			return c.extractScalarFromObject(extracted, t, path)
		}
		return Result{}, recoverableFailure(path, "multi-key object has no single scalar to extract for literal %s", ftype.Identity(t))
	}

	switch t.LiteralTag {
	case ftype.LitInt:
		return c.coerceLiteralInt(v, t.LiteralInt, path)
	case ftype.LitBool:
		r, err := c.coerceBool(v, path)
		if err != nil {
			return Result{}, err
		}
		if r.Value.(bool) != t.LiteralBool {
			return Result{}, recoverableFailure(path, "%v does not equal literal %t", r.Value, t.LiteralBool)
		}
		return r, nil
	default:
		return c.coerceLiteralString(v, t.LiteralString, path)
	}
}

// coerceLiteralInt matches an Int/Number literal exactly. Unlike plain
// Int coercion (§4.2.2), a String source must parse as the *whole*
// number — no tolerant "first signed integer in the string" extraction
// — so that e.g. "2 or 3" never silently resolves to one of several
// embedded numbers when matched against a union of int literals.
func (c *ctx) coerceLiteralInt(v *parse.Value, want int64, path Path) (Result, error) {
	switch v.Kind {
	case parse.VNumber:
		r, err := c.coerceInt(v, path)
		if err != nil {
			return Result{}, err
		}
		if r.Value.(int64) != want {
			return Result{}, recoverableFailure(path, "%v does not equal literal %d", r.Value, want)
		}
		return r, nil
	case parse.VString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil || n != want {
			return Result{}, recoverableFailure(path, "%q does not equal literal %d", v.Str, want)
		}
		r := newResult(n, 0)
		applyParseFlags(&r, v.Flags)
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot match literal %d against %s", want, valueKindName(v))
	}
}

func (c *ctx) coerceLiteralString(v *parse.Value, want string, path Path) (Result, error) {
	src, wasScalar := literalSourceText(v)
	if !wasScalar {
		return Result{}, recoverableFailure(path, "cannot match literal %q against %s", want, valueKindName(v))
	}

	r := newResult(want, 0)
	applyParseFlags(&r, v.Flags)
	if v.Kind != parse.VString {
		r.addFlag(FlagStringified)
		r.Score += WeightScalarToString
	}

	if src == want {
		return r, nil
	}
	ok, kind, penalty := normalize.Match(src, want)
	if !ok {
		return Result{}, recoverableFailure(path, "%q does not match literal %q", src, want)
	}
	if kind == normalize.ExactMatch {
		r.addFlag(FlagCaseInsensitiveLiteral)
		r.Score += WeightRecoveryStep
		return r, nil
	}
	r.addFlag(FlagSubstringLiteral)
	r.Score += WeightSubstringLiteral + penalty
	return r, nil
}

// literalSourceText extracts the text a literal string match is
// evaluated against, for any scalar source value.
func literalSourceText(v *parse.Value) (string, bool) {
	switch v.Kind {
	case parse.VString:
		return v.Str, true
	case parse.VNumber:
		return v.Num, true
	case parse.VBool:
		return strconv.FormatBool(v.Bool), true
	default:
		return "", false
	}
}
