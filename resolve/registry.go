package resolve

import (
	"sort"
	"strings"
	"sync"
)

// Ref is a symbolic reference to a registered value, optionally qualified
// with a namespace: "scale" or "prep/scale". Use it to mark strings in
// programmatic pipeline declarations as references rather than literals.
type Ref string

// Qualifier splits the reference into its namespace qualifier and bare
// name. The qualifier is empty for unqualified references.
func (r Ref) Qualifier() (string, string) {
	if i := strings.IndexByte(string(r), '/'); i >= 0 {
		return string(r[:i]), string(r[i+1:])
	}
	return "", string(r)
}

// Registry maps qualified names to values (operations, factories,
// constants) for declarative pipeline construction, with an alias table
// for qualifier substitution. It replaces a live symbol table with an
// explicit, enumerable lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]any
	aliases map[string]string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]any),
		aliases: make(map[string]string),
	}
}

// Register binds a qualified name ("prep/scale") or plain name ("scale")
// to a value.
func (r *Registry) Register(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = value
}

// Alias maps a short qualifier to a canonical namespace, so "p/scale"
// resolves as "prep/scale" after Alias("p", "prep").
func (r *Registry) Alias(alias, canonical string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = canonical
}

// Lookup resolves a reference. An unqualified reference resolves by plain
// name; a qualified one first substitutes a known alias for its qualifier,
// then resolves the qualified name.
func (r *Registry) Lookup(ref Ref) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qualifier, name := ref.Qualifier()
	if qualifier == "" {
		v, ok := r.entries[name]
		return v, ok
	}
	if canonical, ok := r.aliases[qualifier]; ok {
		qualifier = canonical
	}
	v, ok := r.entries[qualifier+"/"+name]
	return v, ok
}

// HasNamespace reports whether any entry is registered under the given
// qualifier (after alias substitution).
func (r *Registry) HasNamespace(qualifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[qualifier]; ok {
		qualifier = canonical
	}
	prefix := qualifier + "/"
	for name := range r.entries {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// List returns the sorted qualified names of all registered values.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
