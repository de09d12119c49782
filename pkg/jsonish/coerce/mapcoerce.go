package coerce

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceMap implements §4.2.6: an Object coerces key-wise and
// value-wise; later duplicate keys win, with a penalty per duplicate.
func (c *ctx) coerceMap(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	if v.Kind != parse.VObject {
		return Result{}, recoverableFailure(path, "cannot coerce %s to map", valueKindName(v))
	}

	r := newResult(nil, 0)
	applyParseFlags(&r, v.Flags)

	out := orderedmap.New[string, any]()
	seen := make(map[string]int)
	for _, kv := range v.ObjectPairs() {
		seen[kv.Key]++
		if seen[kv.Key] > 1 {
			r.addFlag(FlagDuplicateMapKey)
			r.Score += WeightDuplicateMapKey
		}

		keyResult, err := c.coerce(&parse.Value{Kind: parse.VString, Str: kv.Key}, t.Key, path.Push(kv.Key))
		if err != nil {
			if c.opt.AllowPartial {
				r.addWarning(path, "dropped map entry with uncoercible key "+kv.Key+": "+err.Error())
				continue
			}
			return Result{}, err
		}
		valResult, err := c.coerce(kv.Value, t.Value, path.Push(kv.Key))
		if err != nil {
			if c.opt.AllowPartial {
				r.addWarning(path, "dropped map entry "+kv.Key+": "+err.Error())
				continue
			}
			return Result{}, err
		}

		keyStr, ok := keyResult.Value.(string)
		if !ok {
			keyStr = fmt.Sprint(keyResult.Value)
		}
		out.Set(keyStr, valResult.Value)
		r.merge(keyResult)
		r.merge(valResult)
	}

	r.Value = out
	return r, nil
}
