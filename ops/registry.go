package ops

import (
	"github.com/kbukum/pipekit/pipe"
	"github.com/kbukum/pipekit/resolve"
)

// DefaultRegistry returns a registry seeded with the reference operations,
// ready for declarative pipelines:
//
//	prep/scale       -> MinMaxScaler factory
//	prep/vocab       -> VocabFilter factory
//	math/multiply-by -> MultiplyBy factory
//	str/upper        -> lifted Upper
//	str/token-count  -> lifted TokenCount
//
// with aliases m -> math and s -> str. The factories need a call form
// ([prep/scale] or [math/multiply-by, 2]); the lifted string operations
// are ready ops and may be referenced bare.
func DefaultRegistry() *resolve.Registry {
	reg := resolve.NewRegistry()

	reg.Register("prep/scale", MinMaxScaler)
	reg.Register("prep/vocab", VocabFilter)
	reg.Register("math/multiply-by", MultiplyBy)
	reg.Register("str/upper", pipe.Lift(Upper))
	reg.Register("str/token-count", pipe.Lift(TokenCount))

	reg.Alias("m", "math")
	reg.Alias("s", "str")

	return reg
}
