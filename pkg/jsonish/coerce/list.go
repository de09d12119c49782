package coerce

import (
	"strconv"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceList implements §4.2.5: Array coerces element-wise; Object and
// scalar sources are wrapped as a single-element list with penalty;
// Null becomes the empty list with penalty.
func (c *ctx) coerceList(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	switch v.Kind {
	case parse.VArray:
		r := newResult(nil, 0)
		applyParseFlags(&r, v.Flags)
		items := make([]any, 0, len(v.Arr))
		for i, item := range v.Arr {
			elemResult, err := c.coerce(item, t.Elem, path.Push(strconv.Itoa(i)))
			if err != nil {
				if c.opt.AllowPartial {
					r.addWarning(path, "dropped list element: "+err.Error())
					continue
				}
				return Result{}, err
			}
			items = append(items, elemResult.Value)
			r.merge(elemResult)
		}
		r.Value = items
		return r, nil
	case parse.VNull:
		r := newResult([]any{}, 0)
		r.addFlag(FlagDefaultSynthesized)
		r.Score += WeightImplicitPerLevel
		return r, nil
	case parse.VObject, parse.VBool, parse.VNumber, parse.VString:
		elemResult, err := c.coerce(v, t.Elem, path.Push("0"))
		if err != nil {
			return Result{}, err
		}
		r := newResult([]any{elemResult.Value}, 0)
		r.merge(elemResult)
		r.addFlag(FlagListWrapped)
		r.Score += WeightScalarToList
		return r, nil
	default:
		return Result{}, recoverableFailure(path, "cannot coerce %s to list", valueKindName(v))
	}
}
