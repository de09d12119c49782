package coerce

import (
	"strconv"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceTuple implements §4.2.7: Tuple(T1...Tn) accepts an Array of
// exactly length n; any other shape or length fails outright.
func (c *ctx) coerceTuple(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if v.Kind != parse.VArray {
		return Result{}, recoverableFailure(path, "cannot coerce %s to tuple", valueKindName(v))
	}
	if len(v.Arr) != len(t.Items) {
		return Result{}, recoverableFailure(path, "array has %d elements, tuple needs exactly %d", len(v.Arr), len(t.Items))
	}

	r := newResult(nil, 0)
	applyParseFlags(&r, v.Flags)
	items := make([]any, len(t.Items))
	for i, item := range t.Items {
		elemResult, err := c.coerce(v.Arr[i], item, path.Push(strconv.Itoa(i)))
		if err != nil {
			return Result{}, err
		}
		items[i] = elemResult.Value
		r.merge(elemResult)
	}
	r.Value = items
	return r, nil
}
