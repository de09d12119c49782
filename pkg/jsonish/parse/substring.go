package parse

import (
	"github.com/buger/jsonparser"
)

// findBalancedSpans scans s for top-level balanced {…}/[…] spans,
// respecting string literals and escapes (spec step 3). Nested spans
// are not reported separately — only the outermost balanced span
// starting at each bracket open is kept, since the tolerant parser
// recurses into nested structure itself.
func findBalancedSpans(s string) []Span {
	var spans []Span
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		if c == '{' || c == '[' {
			end := matchBracket(runes, i)
			if end != -1 {
				spans = append(spans, Span{i, end + 1})
				i = end + 1
				continue
			}
		}
		i++
	}
	return spans
}

// matchBracket finds the index of the rune that closes the bracket
// opened at start, skipping over string literals (both quote styles)
// and their escape sequences. Returns -1 if unbalanced.
func matchBracket(runes []rune, start int) int {
	open := runes[start]
	var close rune
	if open == '{' {
		close = '}'
	} else {
		close = ']'
	}

	depth := 0
	inString := false
	var quote rune
	for i := start; i < len(runes); i++ {
		c := runes[i]
		if inString {
			if c == '\\' {
				i++ // skip escaped character
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{', '[':
			if c == open {
				depth++
			} else {
				// A differently-typed bracket still needs matching
				// nesting tracked generically: treat any opener as
				// depth+1 and any closer as depth-1 so interleaved
				// [{...}] spans balance correctly.
				depth++
			}
		case '}', ']':
			depth--
			if c == close && depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		}
	}
	return -1
}

// probeWellFormed uses jsonparser for a fast strict well-formedness
// check on a candidate span before handing it to the hand-written
// tolerant parser — spans that are already strict JSON skip straight to
// a cheap validated decode instead of running the slower recursive
// descent grammar.
func probeWellFormed(s string) bool {
	if len(s) == 0 {
		return false
	}
	switch s[0] {
	case '{':
		ok := true
		err := jsonparser.ObjectEach([]byte(s), func(_ []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
			return nil
		})
		if err != nil {
			ok = false
		}
		return ok
	case '[':
		ok := true
		_, err := jsonparser.ArrayEach([]byte(s), func(_ []byte, _ jsonparser.ValueType, _ int, _ error) {
		})
		if err != nil {
			ok = false
		}
		return ok
	default:
		return false
	}
}
