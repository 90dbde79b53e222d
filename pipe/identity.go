package pipe

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource produces the per-slot identities a composer assigns at build
// time. The source is owned by the composer instance, not ambient process
// state, so pipeline construction stays deterministic under test.
type IDSource interface {
	Next() string
}

// uuidSource is the default identity source.
type uuidSource struct{}

func (uuidSource) Next() string { return uuid.NewString() }

// Sequence is a deterministic IDSource emitting prefix-0, prefix-1, ...
// Intended for tests that need predictable slot identities.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence creates a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) Next() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1)-1)
}
