package generator

import (
	"sync"

	"github.com/rufflang/ruff/internal/runtime"
)

// RunFunc executes a generator's body to completion (or until it hits an
// explicit `return`), calling yield(v) from inside the body's own
// goroutine every time it evaluates a yield expression. It returns any
// uncaught error produced while running the body.
type RunFunc func(yield func(runtime.Value)) error

// sessions tracks the one live *Session for each GeneratorValue. A
// GeneratorValue is a plain runtime.Value (no goroutine/channel fields of
// its own, so it stays comparable and safe to copy into error messages);
// the driver is the only thing that needs the channel plumbing, so it
// keeps that state out-of-band, keyed by the generator's identity.
var (
	sessionsMu sync.Mutex
	sessions   = map[*runtime.GeneratorValue]*Session{}
)

func sessionFor(gen *runtime.GeneratorValue) *Session {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	if s, ok := sessions[gen]; ok {
		return s
	}
	s := NewSession()
	sessions[gen] = s
	return s
}

func dropSession(gen *runtime.GeneratorValue) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	delete(sessions, gen)
}

// Next drives one resumption of gen, running run (supplied by the
// evaluator) on first call. It returns (value, true) on a yield, or
// (Null, false) once the generator is exhausted — matching `next()`'s
// {done, value} result shape, which the evaluator wraps into an
// OptionValue.
func Next(gen *runtime.GeneratorValue, run RunFunc) (runtime.Value, bool, error) {
	if gen.Exhausted {
		return runtime.Null, false, nil
	}

	s := sessionFor(gen)
	s.Start(func() error {
		return run(func(v runtime.Value) { s.Yield(v) })
	})

	raw, ok, err := s.Next()
	if !ok {
		gen.Exhausted = true
		dropSession(gen)
		return runtime.Null, false, err
	}
	gen.PC++
	val, _ := raw.(runtime.Value)
	if val == nil {
		val = runtime.Null
	}
	return val, true, nil
}
