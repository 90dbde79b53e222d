package logger

import "sync"

// Engine component names used for scoped loggers.
const (
	ComponentComposer = "composer"
	ComponentResolver = "resolver"
	ComponentLoader   = "loader"
)

var (
	regMu   sync.RWMutex
	loggers = make(map[string]*Logger)
)

// Register stores a named component logger, replacing any previous one.
func Register(name string, l *Logger) {
	regMu.Lock()
	defer regMu.Unlock()
	loggers[name] = l
}

// Get retrieves a component logger. An unregistered name falls back to the
// global logger tagged with the requested component, so engine code can
// always call Get without caring whether Init or SeedComponents ran.
func Get(name string) *Logger {
	regMu.RLock()
	l, ok := loggers[name]
	regMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// SeedComponents registers loggers for the engine's own components
// (composer, resolver, loader), derived from the current global logger.
// Call it after Init so the component loggers pick up the configured
// level and format.
func SeedComponents() {
	for _, name := range []string{ComponentComposer, ComponentResolver, ComponentLoader} {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
