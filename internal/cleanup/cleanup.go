// Package cleanup runs the shutdown sequence for one evaluator run: wait
// for every spawned thread to finish, then roll back any database
// transaction still open across the environment's scope stack.
package cleanup

import (
	"fmt"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// Run waits for outstanding spawned threads, then walks every binding
// reachable from env looking for a *runtime.DatabaseValue with an open
// transaction and rolls it back. It collects every rollback error
// rather than stopping at the first one, since one leaked transaction
// should not hide another.
func Run(env *runtime.Environment) []error {
	evaluator.WaitForSpawned()

	var errs []error
	env.Range(func(name string, val runtime.Value) bool {
		db, ok := val.(*runtime.DatabaseValue)
		if !ok || !db.InTransaction() {
			return true
		}
		if err := db.Rollback(); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", name, err))
		}
		return true
	})
	return errs
}
