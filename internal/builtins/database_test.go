package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestDbOpenUnknownKind(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "db_open", runtime.Str("oracle"), runtime.Str(":memory:"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestDbOpenSqliteExecQuery(t *testing.T) {
	ev := setup(t)
	db := call(t, ev, "db_open", runtime.Str("sqlite"), runtime.Str(":memory:"))
	dbv, ok := db.(*runtime.DatabaseValue)
	if !ok {
		t.Fatalf("got %v, want DatabaseValue", db)
	}

	created := call(t, ev, "db_exec", dbv, runtime.Str("CREATE TABLE items (id INTEGER, name TEXT)"))
	if runtime.IsError(created) {
		t.Fatalf("create table failed: %v", created)
	}
	inserted := call(t, ev, "db_exec", dbv, runtime.Str("INSERT INTO items (id, name) VALUES (?, ?)"),
		&runtime.IntValue{Value: 1}, runtime.Str("widget"))
	wantInt(t, inserted, 1)

	rows := call(t, ev, "db_query", dbv, runtime.Str("SELECT name FROM items WHERE id = ?"), &runtime.IntValue{Value: 1})
	arr, ok := rows.(*runtime.ArrayValue)
	if !ok || arr.Len() != 1 {
		t.Fatalf("got %v, want 1 row", rows)
	}
	row := arr.Elems[0].(*runtime.DictValue)
	name, _ := row.Get("name")
	wantString(t, name, "widget")
}

func TestDbExecRequiresDatabase(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "db_exec", runtime.Str("not a db"), runtime.Str("SELECT 1"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want type error", got)
	}
}
