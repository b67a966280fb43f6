package bbgraph

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. ErrUnknownToken is the one AddBlock returns (wrapped):
// it is recoverable, and the builder is left exactly as it was before the
// call. The other four describe configuration errors at construction time;
// they appear only in the Detail of a panicked InvariantError, never as a
// returned error.
var (
	ErrUnknownToken     = errors.New("unknown token")
	ErrEmptyVocabulary  = errors.New("vocabulary must not be empty")
	ErrDuplicateToken   = errors.New("duplicate vocabulary token")
	ErrMissingCoreToken = errors.New("missing required vocabulary token")
	ErrBadReplacement   = errors.New("OOV replacement token not found in vocabulary")
)

// InvariantError signals a fatal, process-level programming error: a
// violated data-model invariant, malformed input the algorithm was never
// meant to tolerate (an Unknown operand, an Immediate output operand), or a
// Transaction that discovered a shrunk array. Every InvariantError is
// raised via panic; there is no recoverable path for these.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("bbgraph: invariant violated: %s", e.Invariant)
	}
	return fmt.Sprintf("bbgraph: invariant violated: %s: %s", e.Invariant, e.Detail)
}

func fatalf(invariant, format string, args ...interface{}) {
	panic(&InvariantError{
		Invariant: invariant,
		Detail:    fmt.Sprintf(format, args...),
	})
}
