// Package modules is the minimal in-memory implementation of
// evaluator.ModuleLoader: a caller-supplied registry of module name to
// its exported bindings, with no filesystem resolution of its own.
// Lexing/parsing own the filesystem/import-path concern and are out of
// scope here; a host embedding pkg/ruff fills this loader with real
// modules (or a filesystem-backed loader of its own) before running a
// program that imports anything.
package modules

import "github.com/rufflang/ruff/internal/runtime"

// Registry satisfies evaluator.ModuleLoader against a fixed, in-memory
// set of modules, each a plain name-to-value export map.
type Registry struct {
	modules map[string]map[string]runtime.Value
}

// NewRegistry builds an empty registry; use Register to add modules
// before handing it to evaluator.WithModuleLoader.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]map[string]runtime.Value)}
}

// Register installs or replaces a module's export set.
func (r *Registry) Register(name string, exports map[string]runtime.Value) {
	r.modules[name] = exports
}

// Load returns module's exports, or an error if no module was
// registered under that name.
func (r *Registry) Load(module string) (map[string]runtime.Value, error) {
	exports, ok := r.modules[module]
	if !ok {
		return nil, &UnresolvedModuleError{Module: module}
	}
	return exports, nil
}

// UnresolvedModuleError reports an import naming a module the
// registry has no entry for.
type UnresolvedModuleError struct {
	Module string
}

func (e *UnresolvedModuleError) Error() string {
	return "module not found: " + e.Module
}
