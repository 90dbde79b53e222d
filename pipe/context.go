package pipe

import "maps"

// Reserved context keys. Operations may add arbitrary keys of their own;
// these three have engine-level meaning.
const (
	// KeyData holds the primary payload being transformed. Every compliant
	// operation preserves this key on exit; its absence is a warning, not
	// an error.
	KeyData = "data"
	// KeyID holds the build-time identity of the currently executing
	// operation slot. It is injected immediately before an operation runs
	// and removed immediately after.
	KeyID = "id"
	// KeyMode holds an optional marker read by mode-aware operations.
	KeyMode = "mode"
)

// Conventional mode values. Modes are arbitrary application-chosen strings;
// these two are only the conventions the mode helpers use.
const (
	ModeFit       = "fit"
	ModeTransform = "transform"
)

// Context is the mapping threaded through every pipeline operation.
// It is immutable by convention: the engine never mutates a context in
// place, and the With/Without/Merge helpers always return copies. All
// per-invocation state lives in the context value, which is what makes a
// built pipeline safe for concurrent use across goroutines.
type Context map[string]any

// NewContext creates a context carrying the given payload under KeyData.
func NewContext(data any) Context {
	return Context{KeyData: data}
}

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	return out
}

// With returns a copy of the context with key set to value.
func (c Context) With(key string, value any) Context {
	out := c.Clone()
	out[key] = value
	return out
}

// Without returns a copy of the context with key removed.
func (c Context) Without(key string) Context {
	if _, ok := c[key]; !ok {
		return c
	}
	out := c.Clone()
	delete(out, key)
	return out
}

// Merge returns a copy of the context with all entries of other applied on
// top. Later keys win.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}

// Get retrieves a value by key. Returns false if the key does not exist.
func (c Context) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Data returns the payload under KeyData, or nil if absent.
func (c Context) Data() any { return c[KeyData] }

// Mode returns the mode marker, or the empty string if absent or not a
// string. Mode-aware operations treat anything unrecognized as "pass
// through unchanged".
func (c Context) Mode() string {
	if m, ok := c[KeyMode].(string); ok {
		return m
	}
	return ""
}

// ID returns the identity of the currently executing operation slot, or the
// empty string outside an operation invocation. Stateful operations use it
// as their private storage key in the same context.
func (c Context) ID() string {
	if id, ok := c[KeyID].(string); ok {
		return id
	}
	return ""
}

// asContext normalizes a pipeline input value into a Context. Nil becomes
// an empty context, mappings are copied, and anything else is wrapped as
// the payload.
func asContext(input any) Context {
	switch v := input.(type) {
	case nil:
		return Context{}
	case Context:
		return v.Clone()
	case map[string]any:
		return Context(v).Clone()
	default:
		return Context{KeyData: input}
	}
}
