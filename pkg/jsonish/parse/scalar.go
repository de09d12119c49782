package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var scalarToken = regexp.MustCompile(`(?i)^[+-]?[0-9][0-9_]*(\.[0-9_]+)?([eE][+-]?[0-9]+)?[a-zA-Z]*$|^(true|false|yes|no|null|none|nil)$`)

// scalarFromWholeInput implements spec step 5: if the whole input
// trimmed is a recognizable number/bool/null token, emit that scalar.
// Unlike tolerant number/bool parsing, this only fires when the ENTIRE
// trimmed input is the token (not just a prefix), matching "possibly
// among prose" only in the sense that surrounding whitespace is
// tolerated, not arbitrary prose.
func scalarFromWholeInput(raw string) (*Value, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !scalarToken.MatchString(trimmed) {
		return nil, false
	}

	lower := strings.ToLower(trimmed)
	switch lower {
	case "true", "yes":
		return &Value{Kind: VBool, Bool: true, Flags: RecoveryFlags{ScalarFromProse: true}}, true
	case "false", "no":
		return &Value{Kind: VBool, Bool: false, Flags: RecoveryFlags{ScalarFromProse: true}}, true
	case "null", "none", "nil":
		return &Value{Kind: VNull, Flags: RecoveryFlags{ScalarFromProse: true}}, true
	}

	num, unit := splitNumericUnit(trimmed)
	if _, err := strconv.ParseFloat(strings.ReplaceAll(num, "_", ""), 64); err != nil {
		return nil, false
	}
	v := &Value{Kind: VNumber, Num: strings.ReplaceAll(num, "_", ""), Flags: RecoveryFlags{ScalarFromProse: true}}
	if unit != "" {
		v.Flags.UnitStripped = unit
	}
	return v, true
}

// splitNumericUnit separates a numeric lexeme from a trailing
// alphabetic unit suffix ("12ms" -> "12", "ms").
func splitNumericUnit(s string) (num, unit string) {
	i := len(s)
	for i > 0 && isAsciiLetter(rune(s[i-1])) {
		i--
	}
	return s[:i], s[i:]
}

func isAsciiLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// rawStringFallback implements spec step 6: always emit the entire
// input as a String candidate. This guarantees Parse never fails.
func rawStringFallback(raw string) *Value {
	return &Value{Kind: VString, Str: raw, Flags: RecoveryFlags{RawStringFallback: true}}
}
