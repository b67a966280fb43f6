package bbgraph

// OOVBehavior selects what happens when the Builder is asked to resolve a token
// that is not present in the Builder's vocabulary.
type OOVBehavior byte

const (
	// OOVReturnError fails the enclosing AddBlock call and rolls it back.
	OOVReturnError OOVBehavior = iota
	// OOVReplaceToken substitutes a fixed replacement token and logs a warning.
	OOVReplaceToken
)

// OOVPolicy describes how the Builder should react to an out-of-vocabulary
// token. The zero value is OOVReturnError with no replacement, which is the
// strictest and default policy.
type OOVPolicy struct {
	Behavior    OOVBehavior
	Replacement string
}

// ReturnError builds the strict OOV policy: unknown tokens fail AddBlock.
func ReturnError() OOVPolicy {
	return OOVPolicy{Behavior: OOVReturnError}
}

// ReplaceToken builds the substituting OOV policy: unknown tokens are
// replaced by replacement, which must itself resolve in the vocabulary.
func ReplaceToken(replacement string) OOVPolicy {
	return OOVPolicy{Behavior: OOVReplaceToken, Replacement: replacement}
}
