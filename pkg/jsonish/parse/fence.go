package parse

import "strings"

// fencedRegion is a ```...``` or ~~~...~~~ Markdown code fence found
// anywhere in the input, with an optional language tag on the opening
// line stripped off.
type fencedRegion struct {
	Content string
	Span    Span
}

// findFences locates every top-level fenced region in s (spec step 2).
// Generalizes the teacher's stripOuterCodeFence (which assumed exactly
// one wrapping fence) to scan the whole string for zero or more fences.
func findFences(s string) []fencedRegion {
	var regions []fencedRegion
	for _, marker := range []string{"```", "~~~"} {
		regions = append(regions, findFencesWithMarker(s, marker)...)
	}
	return regions
}

func findFencesWithMarker(s, marker string) []fencedRegion {
	var regions []fencedRegion
	pos := 0
	for {
		start := strings.Index(s[pos:], marker)
		if start == -1 {
			break
		}
		start += pos
		lineEnd := strings.IndexByte(s[start:], '\n')
		if lineEnd == -1 {
			break // unterminated opening fence, nothing to recover
		}
		contentStart := start + lineEnd + 1

		end := strings.Index(s[contentStart:], marker)
		if end == -1 {
			// Unterminated fence: tolerate it, taking the rest of the
			// string as content (same tolerance as extractBetweenTolerant).
			regions = append(regions, fencedRegion{
				Content: s[contentStart:],
				Span:    Span{start, len(s)},
			})
			break
		}
		contentEnd := contentStart + end
		regions = append(regions, fencedRegion{
			Content: s[contentStart:contentEnd],
			Span:    Span{start, contentEnd + len(marker)},
		})
		pos = contentEnd + len(marker)
	}
	return regions
}
