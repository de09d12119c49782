package coerce

// Weight constants for the permissive actions the coercer can take. The
// exact values are a policy detail; the ORDERING between weight classes
// is contractual (spec.md §4.3) and must never change without revisiting
// every test that asserts relative ordering between two coercions.
const (
	WeightExact               = 0
	WeightRecoveryStep        = 1 // single-quote / trailing comma / fence / case-insensitive literal
	WeightSubstringLiteral    = 2
	WeightScalarToString      = 3
	WeightObjectToScalar      = 5
	WeightScalarToList        = 5
	WeightRawStringFallback   = 10
	WeightImplicitPerLevel    = 1
	WeightUnitStripped        = 1
	WeightDuplicateMapKey     = 1
	WeightExtraKeys           = 1
)

// flagWeight returns the fixed score contribution for a single
// occurrence of a parser-level recovery flag, used when translating
// parse.RecoveryFlags into coercion score at the leaves.
func flagWeight(f Flag) int {
	switch f {
	case FlagUsedFence, FlagRecoveredTrailingComma, FlagRecoveredUnquotedKeys,
		FlagRecoveredUnterminated, FlagCaseInsensitiveLiteral:
		return WeightRecoveryStep
	case FlagUsedSubstring:
		return WeightRecoveryStep
	case FlagSubstringLiteral:
		return WeightSubstringLiteral
	case FlagStringified:
		return WeightScalarToString
	case FlagImplicitWrap:
		return WeightObjectToScalar
	case FlagListWrapped:
		return WeightScalarToList
	case FlagRawStringFallback:
		return WeightRawStringFallback
	case FlagDefaultSynthesized:
		return WeightImplicitPerLevel
	case FlagUnitStripped:
		return WeightUnitStripped
	case FlagDuplicateMapKey:
		return WeightDuplicateMapKey
	case FlagExtraKeys:
		return WeightExtraKeys
	case FlagScalarFromProse:
		return WeightRecoveryStep
	default:
		return 0
	}
}
