package parse

// Parse runs the full recovery pipeline (spec step 1 through 6) and
// always returns at least one candidate. If more than one candidate
// results, they are wrapped in a VAnyOf value; worst case the result is
// just the raw-string fallback.
func Parse(raw string) *Value {
	var candidates []*Value
	seen := make(map[Span]bool)

	add := func(v *Value) {
		if v == nil {
			return
		}
		if seen[v.Span] && v.Span != (Span{}) {
			return
		}
		seen[v.Span] = true
		candidates = append(candidates, v)
	}

	// Step 1: strict JSON over the whole input.
	if v, err := strictJSON(raw); err == nil {
		add(v)
	}

	// Step 2: fenced regions, recursing at step 1/3 on each region's
	// content.
	for _, region := range findFences(raw) {
		v := recoverFromText(region.Content, region.Span.Start)
		if v != nil {
			v.Flags.UsedFence = true
			add(v)
		}
	}

	// Step 3: balanced-bracket substrings anywhere in the input,
	// tolerant-parsed (step 4).
	for _, span := range findBalancedSpans(raw) {
		text := string([]rune(raw)[span.Start:span.End])
		v := parseSubstring(text, span.Start)
		if v != nil {
			v.Flags.UsedSubstring = true
			add(v)
		}
	}

	// Step 5: literal/scalar fallback over the whole trimmed input.
	if v, ok := scalarFromWholeInput(raw); ok {
		add(v)
	}

	// Step 6: the entire input as a raw string, always.
	add(rawStringFallback(raw))

	if len(candidates) == 1 {
		return candidates[0]
	}
	return &Value{Kind: VAnyOf, Any: candidates, OriginalText: raw}
}

// recoverFromText applies strict parsing first, falling back to the
// substring/tolerant pipeline, used for fenced region contents (spec
// step 2: "recurse at step 1/3").
func recoverFromText(text string, offset int) *Value {
	if v, err := strictJSON(text); err == nil {
		return v
	}
	for _, span := range findBalancedSpans(text) {
		sub := string([]rune(text)[span.Start:span.End])
		if v := parseSubstring(sub, offset+span.Start); v != nil {
			return v
		}
	}
	return nil
}

// parseSubstring runs the fast well-formedness probe before falling
// through to the hand-written tolerant parser, so spans that are
// already strict JSON skip the slower recursive-descent grammar.
func parseSubstring(text string, offset int) *Value {
	if probeWellFormed(text) {
		if v, err := strictJSON(text); err == nil {
			v.Span = Span{offset, offset + len(text)}
			return v
		}
	}
	v, err := parseTolerant(text, offset)
	if err != nil {
		return nil
	}
	return v
}
