package normalize

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and lowercases", "  TWO  ", "two"},
		{"strips punctuation", "T-W.O!", "two"},
		{"keeps digits", "v2.0", "v20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	ok, kind, penalty := Match("TWO", "two")
	if !ok || kind != ExactMatch || penalty != 0 {
		t.Errorf("case-insensitive exact match: ok=%v kind=%v penalty=%v", ok, kind, penalty)
	}

	ok, kind, _ = Match("The answer is TWO", "TWO")
	if !ok || kind != ContainsMatch {
		t.Errorf("substring match: ok=%v kind=%v", ok, kind)
	}

	ok, _, _ = Match("apples", "oranges")
	if ok {
		t.Error("expected no match between unrelated strings")
	}
}

func TestMatchMonotoneLongerRunLowerPenalty(t *testing.T) {
	_, _, pClose := Match("TWO", "TWOO")
	_, _, pFar := Match("TWO", "the quick brown fox said TWO loudly and then left")
	if pClose > pFar {
		t.Errorf("expected closer-length match to have <= penalty of a much longer haystack: pClose=%d pFar=%d", pClose, pFar)
	}
}
