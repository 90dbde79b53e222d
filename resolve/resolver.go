package resolve

import (
	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/pipe"
)

// Resolver expands declarative pipeline descriptions into the concrete
// step sequence the composer accepts. Each line of a description is one
// of:
//
//   - a symbolic reference (Ref or string), resolved by registry lookup;
//   - a mapping literal, passed through as a static injection;
//   - a call form []any{head, params...}, whose head resolves to a factory
//     that is applied to the recursively resolved parameters at build time.
//
// By default an unresolvable reference is passed through unchanged and
// left for the composer's type check to reject; Strict(true) turns it into
// an immediate build error.
type Resolver struct {
	reg    *Registry
	strict bool
	log    *logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// Strict makes unresolved references an immediate UNRESOLVED_REFERENCE
// error instead of a silent pass-through.
func Strict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithLogger replaces the resolver's logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// New creates a Resolver over the given registry.
func New(reg *Registry, opts ...Option) *Resolver {
	r := &Resolver{
		reg: reg,
		log: logger.Get(logger.ComponentResolver),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build resolves declaration lines into the ordered step sequence the
// composer expects. cfg supplies the values for ctx-qualified parameter
// references; it may be nil when the declaration uses none.
func (r *Resolver) Build(cfg map[string]any, lines ...any) ([]any, error) {
	steps := make([]any, 0, len(lines))
	for _, line := range lines {
		step, err := r.line(cfg, line)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// BuildPipeline resolves the lines and composes them in one step. A nil
// composer means a default one.
func (r *Resolver) BuildPipeline(c *pipe.Composer, cfg map[string]any, lines ...any) (*pipe.Pipeline, error) {
	steps, err := r.Build(cfg, lines...)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = pipe.NewComposer()
	}
	return c.Compose(steps...)
}

func (r *Resolver) line(cfg map[string]any, line any) (any, error) {
	switch v := line.(type) {
	case Ref:
		return r.reference(v, line)
	case string:
		return r.reference(Ref(v), line)
	case map[string]any, pipe.Context:
		return v, nil
	case []any:
		return r.callForm(cfg, v)
	default:
		// Anything else (a concrete operation, or garbage) is the
		// composer's to judge.
		return v, nil
	}
}

func (r *Resolver) reference(ref Ref, original any) (any, error) {
	if v, ok := r.reg.Lookup(ref); ok {
		return v, nil
	}
	if r.strict {
		return nil, errors.UnresolvedReference(string(ref))
	}
	r.log.Debug("unresolved reference passed through",
		logger.Fields(logger.FieldRef, string(ref)))
	return original, nil
}

func (r *Resolver) callForm(cfg map[string]any, form []any) (any, error) {
	if len(form) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDeclaration, "empty call form")
	}

	head := form[0]
	switch h := head.(type) {
	case Ref:
		v, ok := r.reg.Lookup(h)
		if !ok {
			if r.strict {
				return nil, errors.UnresolvedReference(string(h))
			}
			r.log.Debug("unresolved call head passed through",
				logger.Fields(logger.FieldRef, string(h)))
			return form, nil
		}
		head = v
	case string:
		v, ok := r.reg.Lookup(Ref(h))
		if !ok {
			if r.strict {
				return nil, errors.UnresolvedReference(h)
			}
			r.log.Debug("unresolved call head passed through",
				logger.Fields(logger.FieldRef, h))
			return form, nil
		}
		head = v
	}

	params := make([]any, 0, len(form)-1)
	for _, p := range form[1:] {
		rp, err := r.param(cfg, p)
		if err != nil {
			return nil, err
		}
		params = append(params, rp)
	}

	op, err := pipe.Invoke(head, params...)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidDeclaration, "applying call form failed").
			WithCause(err)
	}
	return op, nil
}

// param recursively resolves a declaration parameter. Mappings and
// sequences are walked element-wise; ctx-qualified references are replaced
// by configuration values at build time; references whose qualifier names
// a known namespace are replaced by the bound value; everything else is
// passed through literally.
func (r *Resolver) param(cfg map[string]any, p any) (any, error) {
	switch v := p.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			re, err := r.param(cfg, e)
			if err != nil {
				return nil, err
			}
			out[k] = re
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			re, err := r.param(cfg, e)
			if err != nil {
				return nil, err
			}
			out[i] = re
		}
		return out, nil
	case Ref:
		return r.refParam(cfg, v, true)
	case string:
		return r.refParam(cfg, Ref(v), false)
	default:
		return v, nil
	}
}

func (r *Resolver) refParam(cfg map[string]any, ref Ref, explicit bool) (any, error) {
	qualifier, name := ref.Qualifier()

	// ctx/ is the late-binding hook: the value comes from the build-time
	// configuration mapping, not the registry.
	if qualifier == "ctx" {
		v, ok := cfg[name]
		if !ok {
			return nil, errors.BadParameter(string(ref), "not present in configuration")
		}
		return v, nil
	}

	if explicit {
		if v, ok := r.reg.Lookup(ref); ok {
			return v, nil
		}
		if r.strict {
			return nil, errors.UnresolvedReference(string(ref))
		}
		return ref, nil
	}

	// Plain strings only resolve when their qualifier names a known
	// namespace; everything else is a literal.
	if qualifier != "" && r.reg.HasNamespace(qualifier) {
		if v, ok := r.reg.Lookup(ref); ok {
			return v, nil
		}
		if r.strict {
			return nil, errors.UnresolvedReference(string(ref))
		}
	}
	return string(ref), nil
}
