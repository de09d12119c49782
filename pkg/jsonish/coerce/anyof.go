package coerce

import (
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// coerceAnyOf implements §4.2.10: when the parser yielded multiple
// plausible candidate readings of the same span, each is coerced
// against the single target type and the same selection rule as
// §4.2.9 applies one level above branches. All candidates share one
// target type, so the "narrower branch" tie-break never discriminates
// here; declaration (parse) order is the final tie-break.
func (c *ctx) coerceAnyOf(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	attempts := make([]branchAttempt, len(v.Any))
	for i, candidate := range v.Any {
		res, err := c.coerce(candidate, t, path)
		attempts[i] = branchAttempt{
			index:    i,
			typeName: ftype.Identity(t),
			depth:    0,
			result:   res,
			err:      err,
		}
	}
	return c.selectBranch(path, attempts)
}
