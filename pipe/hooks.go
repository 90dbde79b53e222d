package pipe

import "context"

// Hook observes operation execution. BeforeOp may derive a new
// context.Context (for span propagation); the returned context is passed
// to the operation and to AfterOp. Hooks are observers only: they cannot
// alter the pipeline context and must not break the fold.
type Hook interface {
	BeforeOp(ctx context.Context, slot int, id string, c Context) context.Context
	AfterOp(ctx context.Context, slot int, id string, c Context, err error)
}

// Probe returns a pass-through operation that hands the current context to
// fn for side-effecting inspection. The context flows on unchanged.
func Probe(fn func(Context)) Op {
	return func(_ context.Context, c Context) (Context, error) {
		fn(c)
		return c, nil
	}
}

// Capture returns a pass-through operation that stores a copy of the
// current context in dst for later interactive inspection.
func Capture(dst *Context) Op {
	return func(_ context.Context, c Context) (Context, error) {
		*dst = c.Clone()
		return c, nil
	}
}
