package coerce

import (
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// branchAttempt is one candidate considered by the union/AnyOf selector:
// either a distinct union branch type, or a distinct parser candidate
// coerced against the same target type.
type branchAttempt struct {
	index    int
	typeName string
	depth    int
	result   Result
	err      error
}

// coerceUnion implements §4.2.9: every branch is coerced independently
// (never short-circuited, since the lowest-scoring branch may not be
// the first successful one), then the minimum-score candidate wins with
// a three-level tie-break.
func (c *ctx) coerceUnion(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	attempts := make([]branchAttempt, len(t.Choices))
	for i, choice := range t.Choices {
		res, err := c.coerce(v, choice, path)
		attempts[i] = branchAttempt{
			index:    i,
			typeName: ftype.Identity(choice),
			depth:    ftype.Depth(choice),
			result:   res,
			err:      err,
		}
	}
	return c.selectBranch(path, attempts)
}

// selectBranch applies §4.2.9's selection rule to a set of independently
// evaluated attempts: minimum score, then fewer recovery flags, then
// (Options.UnionTieBreak permitting) narrower branch, then declaration
// order.
func (c *ctx) selectBranch(path Path, attempts []branchAttempt) (Result, error) {
	var winner *branchAttempt
	var branches []BranchFailure
	var successes []*branchAttempt

	for i := range attempts {
		a := &attempts[i]
		if a.err != nil {
			branches = append(branches, BranchFailure{Index: a.index, TypeName: a.typeName, Reason: a.err.Error()})
			continue
		}
		if a.result.Score > c.opt.maxScore() {
			branches = append(branches, BranchFailure{Index: a.index, TypeName: a.typeName, Reason: "score exceeds max_score"})
			continue
		}
		successes = append(successes, a)
		if winner == nil || betterBranch(c.opt.UnionTieBreak, *a, *winner) {
			winner = a
		}
	}

	if winner == nil {
		return Result{}, unresolvedUnion(path, branches)
	}

	tied := 0
	for _, a := range successes {
		if a.result.Score == winner.result.Score {
			tied++
		}
	}
	if tied > 1 {
		winner.result.addWarning(path, "multiple candidates tied on score; resolved by declaration-order tie-break")
	}
	return winner.result, nil
}

// betterBranch reports whether a should replace b as the current best
// candidate under the §4.2.9 tie-break order: minimum score, then fewer
// recovery flags always apply; the final tie-break is governed by
// Options.UnionTieBreak (§6.1 `union_tie_break: first|shortest`) —
// TieFirst goes straight to declaration order, TieShortest prefers the
// lower-depth (narrower) branch before falling back to declaration order.
func betterBranch(tie TieBreak, a, b branchAttempt) bool {
	if a.result.Score != b.result.Score {
		return a.result.Score < b.result.Score
	}
	af, bf := flagCount(a.result), flagCount(b.result)
	if af != bf {
		return af < bf
	}
	if tie == TieShortest && a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.index < b.index
}

func flagCount(r Result) int {
	total := 0
	for _, n := range r.Flags {
		total += n
	}
	return total
}
