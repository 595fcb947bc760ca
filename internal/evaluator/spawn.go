package evaluator

import (
	"sync"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

// spawnedWG lets internal/cleanup's shutdown wait for every
// outstanding spawned thread before exiting;
// individual spawns are fire-and-forget from the language's point of
// view (no handle is returned to `spawn { ... }` itself).
var spawnedWG sync.WaitGroup

// WaitForSpawned blocks until every `spawn`-ed thread has finished,
// called by internal/cleanup at program shutdown.
func WaitForSpawned() { spawnedWG.Wait() }

// spawnThread launches s.Body on a new goroutine with a snapshot of
// the current environment's transferable bindings, running against its
// own fresh Evaluator/environment/call stack — genuine isolation from
// the parent's mutable scopes, not a goroutine sharing this
// Evaluator's env. Struct/enum type definitions are the one exception:
// they're declarative and global, so the spawned thread keeps the same
// *runtime.StructDefs pointer as the parent (safe for concurrent
// Get/Set; see its doc comment) rather than getting its own copy.
func (e *Evaluator) spawnThread(s *ast.Spawn) {
	snapshot := e.env.Snapshot()
	structDefs := e.structDefs
	output := e.output
	modules := e.modules
	source := e.source
	body := s.Body

	spawnedWG.Add(1)
	go func() {
		defer spawnedWG.Done()
		threadEnv := runtime.NewEnvironment()
		for name, v := range snapshot {
			threadEnv.Define(name, v)
		}
		sub := &Evaluator{
			env: threadEnv, callStack: runtime.NewCallStack(0), output: output,
			modules: modules, source: source, structDefs: structDefs,
		}
		sub.execBlock(body.Statements)
	}()
}
