package coerce

import "math"

// TieBreak selects the policy for resolving union/AnyOf candidates that
// tie on score and on recovery-flag count: TieFirst falls straight back
// to declaration order, TieShortest compares branch depth first.
type TieBreak int

const (
	// TieFirst: declaration/candidate order wins ties (default).
	TieFirst TieBreak = iota
	// TieShortest: the structurally narrowest candidate wins ties,
	// evaluated before falling back to declaration order.
	TieShortest
)

// Options mirrors the external parse_and_coerce options.
type Options struct {
	// AllowPartial tolerates missing required fields by emitting nulls
	// with warnings instead of failing.
	AllowPartial bool
	// MaxScore rejects results whose total score exceeds the cap. Zero
	// means unbounded.
	MaxScore int
	// UnionTieBreak overrides the default first-wins tie-break.
	UnionTieBreak TieBreak
}

func (o Options) maxScore() int {
	if o.MaxScore <= 0 {
		return math.MaxInt
	}
	return o.MaxScore
}
