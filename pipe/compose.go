package pipe

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
)

// Op is the unit of work composed into a pipeline: it receives a context
// mapping and returns a new context mapping. Operations never mutate their
// input; they derive a new context via With/Merge and return it. The
// context.Context parameter carries cancellation and observability state
// for hooks; the engine itself never blocks on it.
type Op func(ctx context.Context, c Context) (Context, error)

// Composer builds executable pipelines from operation sequences. A zero
// composer is not usable; create one with NewComposer or use the
// package-level Compose.
type Composer struct {
	ids   IDSource
	log   *logger.Logger
	hooks []Hook
}

// Option configures a Composer.
type Option func(*Composer)

// WithIDSource replaces the default uuid-backed identity source.
func WithIDSource(src IDSource) Option {
	return func(c *Composer) { c.ids = src }
}

// WithLogger replaces the composer's logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Composer) { c.log = l }
}

// WithHooks attaches observer hooks invoked around every operation of
// every pipeline this composer builds.
func WithHooks(hooks ...Hook) Option {
	return func(c *Composer) { c.hooks = append(c.hooks, hooks...) }
}

// NewComposer creates a Composer.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		ids: uuidSource{},
		log: logger.Get(logger.ComponentComposer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// slot is one position in a built pipeline: either an operation with its
// fixed identity, or a static injection mapping.
type slot struct {
	index  int
	op     Op
	id     string
	inject Context
}

// Pipeline is an executable operation sequence. Identities were fixed when
// the pipeline was built and never change across invocations, so a fit run
// and a later transform run of the same pipeline address identical
// per-operation storage keys. A Pipeline is immutable and safe for
// concurrent use.
type Pipeline struct {
	slots []slot
	log   *logger.Logger
	hooks []Hook
}

// Compose builds a pipeline from the given steps using a default composer
// with uuid identities.
func Compose(steps ...any) (*Pipeline, error) {
	return NewComposer().Compose(steps...)
}

// MustCompose is Compose but panics on a build error. Intended for
// statically-known pipelines in package initialization.
func MustCompose(steps ...any) *Pipeline {
	p, err := Compose(steps...)
	if err != nil {
		panic(err)
	}
	return p
}

// Compose builds an executable pipeline from an ordered step sequence.
// Each step must be an operation (Op or an assignable function value), a
// static injection mapping, or another Pipeline (inlined as a single
// operation). Anything else is an UNCALLABLE_OPERATION build error.
//
// Operation slots draw their identity from the composer's IDSource here,
// at build time, once.
func (c *Composer) Compose(steps ...any) (*Pipeline, error) {
	p := &Pipeline{
		slots: make([]slot, 0, len(steps)),
		log:   c.log,
		hooks: c.hooks,
	}
	for i, step := range steps {
		s := slot{index: i}
		switch v := step.(type) {
		case Op:
			s.op = v
		case func(context.Context, Context) (Context, error):
			s.op = v
		case func(Context) (Context, error):
			fn := v
			s.op = func(_ context.Context, in Context) (Context, error) { return fn(in) }
		case func(Context) Context:
			fn := v
			s.op = func(_ context.Context, in Context) (Context, error) { return fn(in), nil }
		case *Pipeline:
			s.op = v.AsOp()
		case Context:
			s.inject = v.Clone()
		case map[string]any:
			s.inject = Context(v).Clone()
		default:
			return nil, errors.UncallableOperation(i, step)
		}
		if s.op != nil {
			s.id = c.ids.Next()
		}
		p.slots = append(p.slots, s)
	}
	return p, nil
}

// Run invokes the pipeline. A nil input is equivalent to an empty context;
// a non-mapping input x is equivalent to Context{"data": x}. The step
// sequence folds left to right:
//
//   - injection slots merge into the current context, later keys winning;
//   - operation slots run with the slot identity assoc'd under "id" (an
//     identity override placed by the immediately preceding injection is
//     respected for that one operation), and the engine removes the "id"
//     it injected once the operation returns.
//
// A nil context returned by an operation aborts the run. A returned
// context without the "data" key logs a warning and execution continues.
func (p *Pipeline) Run(ctx context.Context, input any) (Context, error) {
	c := asContext(input)
	overridden := false

	for _, s := range p.slots {
		if s.op == nil {
			if _, ok := s.inject[KeyID]; ok {
				overridden = true
			}
			c = c.Merge(s.inject)
			continue
		}

		if !overridden {
			c = c.With(KeyID, s.id)
		}

		opCtx := ctx
		for _, h := range p.hooks {
			opCtx = h.BeforeOp(opCtx, s.index, c.ID(), c)
		}

		out, err := s.op(opCtx, c)

		for i := len(p.hooks) - 1; i >= 0; i-- {
			p.hooks[i].AfterOp(opCtx, s.index, c.ID(), out, err)
		}

		if err != nil {
			return nil, errors.OperationFailed(s.index, err)
		}
		if out == nil {
			return nil, errors.InvalidResult(s.index)
		}
		if _, ok := out[KeyData]; !ok {
			p.log.Warn("operation result is missing the data key",
				logger.Fields(logger.FieldSlot, s.index, logger.FieldOpID, s.id))
		}

		if overridden {
			// The injected identity belongs to the caller; leave it alone.
			c = out
			overridden = false
		} else {
			c = out.Without(KeyID)
		}
	}
	return c, nil
}

// AsOp adapts the pipeline into a single operation, letting built
// pipelines nest inside other pipelines. The inner pipeline keeps its own
// slot identities.
func (p *Pipeline) AsOp() Op {
	return func(ctx context.Context, c Context) (Context, error) {
		return p.Run(ctx, c)
	}
}

// Len returns the number of slots in the pipeline.
func (p *Pipeline) Len() int { return len(p.slots) }

// IDs returns the identities of the pipeline's operation slots in order.
// Injection slots carry no identity and are skipped.
func (p *Pipeline) IDs() []string {
	ids := make([]string, 0, len(p.slots))
	for _, s := range p.slots {
		if s.op != nil {
			ids = append(ids, s.id)
		}
	}
	return ids
}
