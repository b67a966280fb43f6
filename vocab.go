package bbgraph

import (
	"github.com/emirpasic/gods/maps/hashmap"
)

// Vocabulary is a fixed, dense string-to-index mapping built once at
// Builder construction time. It never mutates after New returns.
type Vocabulary struct {
	tokens *hashmap.Map // string -> TokenIndex
	size   int
}

// NewVocabulary builds a Vocabulary from an ordered token list. A duplicate
// token is a fatal configuration error, matching MakeIndex in the original
// graph builder.
func NewVocabulary(tokens []string) *Vocabulary {
	if len(tokens) == 0 {
		panic(&InvariantError{Invariant: "NewVocabulary", Detail: ErrEmptyVocabulary.Error()})
	}

	v := &Vocabulary{tokens: hashmap.New()}
	for i, token := range tokens {
		if _, exists := v.tokens.Get(token); exists {
			fatalf("NewVocabulary", "%s: %q", ErrDuplicateToken, token)
		}
		v.tokens.Put(token, TokenIndex(i))
	}
	v.size = len(tokens)
	return v
}

// Lookup returns the TokenIndex for token and whether it was found.
func (v *Vocabulary) Lookup(token string) (TokenIndex, bool) {
	value, found := v.tokens.Get(token)
	if !found {
		return InvalidTokenIndex, false
	}
	return value.(TokenIndex), true
}

// MustLookup resolves token or panics; used for the four required
// vocabulary entries at construction time, matching FindTokenOrDie.
func (v *Vocabulary) MustLookup(token string) TokenIndex {
	idx, found := v.Lookup(token)
	if !found {
		fatalf("NewVocabulary", "%s: %q", ErrMissingCoreToken, token)
	}
	return idx
}

// Size returns |V|, the number of distinct tokens in the vocabulary.
func (v *Vocabulary) Size() int {
	return v.size
}
