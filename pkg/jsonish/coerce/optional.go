package coerce

import (
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceOptional implements §4.2.1: Null coerces to nil at zero score;
// anything else coerces against the inner type, with failure degrading
// to nil-with-penalty rather than propagating.
func (c *ctx) coerceOptional(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if v.Kind == parse.VNull {
		r := newResult(nil, 0)
		applyParseFlags(&r, v.Flags)
		return r, nil
	}

	inner, err := c.coerce(v, t.Elem, path)
	if err != nil {
		r := newResult(nil, 0)
		r.addFlag(FlagDefaultSynthesized)
		r.Score += flagWeight(FlagDefaultSynthesized)
		r.addWarning(path, "optional field could not coerce its value, defaulted to null: "+err.Error())
		return r, nil
	}
	return inner, nil
}
