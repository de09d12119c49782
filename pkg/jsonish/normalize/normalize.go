// Package normalize implements the permissive string-matching rules of
// the jsonish coercer: Unicode NFKC normalization, case folding, and
// punctuation stripping, used by both literal and enum matching.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]`)

// Fold reduces s to its normalized comparison form: NFKC, trimmed,
// lowercased, with every character outside letters/digits removed.
func Fold(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return nonAlnum.ReplaceAllString(s, "")
}

// MatchKind distinguishes the three levels of permissive string match.
type MatchKind int

const (
	NoMatch MatchKind = iota
	ExactMatch
	ContainsMatch // a contains b, or b contains a, after folding
)

// Match folds a and b and reports whether they match, the kind of match,
// and a penalty where a lower value means a tighter match: exact folding
// equality scores 0, one side containing the other scores based on how
// much of the longer string the shorter one covers (closer to full
// coverage ⇒ lower penalty, within the "substring literal match" weight
// class).
func Match(a, b string) (ok bool, kind MatchKind, penalty int) {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false, NoMatch, 0
	}
	if fa == fb {
		return true, ExactMatch, 0
	}

	var shorter, longer string
	if len(fa) <= len(fb) {
		shorter, longer = fa, fb
	} else {
		shorter, longer = fb, fa
	}
	if strings.Contains(longer, shorter) {
		// Longer common run (shorter string covers more of longer) means
		// a lower penalty; coverage ratio is inverted and scaled into a
		// small integer range so the ordering stays monotone with the
		// scoring table's "substring literal match" weight class.
		coverage := float64(len(shorter)) / float64(len(longer))
		penalty = int((1 - coverage) * 4)
		if penalty < 1 {
			penalty = 1
		}
		return true, ContainsMatch, penalty
	}
	return false, NoMatch, 0
}
