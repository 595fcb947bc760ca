package cleanup

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestRunRollsBackOpenTransaction(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (n INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO t (n) VALUES (1)"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dbVal := &runtime.DatabaseValue{DB: db, DriverName: "sqlite3"}
	dbVal.BeginTx(tx)

	env := runtime.NewEnvironment()
	env.Define("conn", dbVal)

	if errs := Run(env); len(errs) != 0 {
		t.Fatalf("unexpected rollback errors: %v", errs)
	}
	if dbVal.InTransaction() {
		t.Fatal("expected InTransaction() to be false after Run")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d rows, want 0 — transaction should have rolled back", count)
	}
}

func TestRunIgnoresDatabaseWithNoOpenTransaction(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	env := runtime.NewEnvironment()
	env.Define("conn", &runtime.DatabaseValue{DB: db, DriverName: "sqlite3"})

	if errs := Run(env); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
