package builtins

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerDatabase installs the database category named in spec.md
// §4.6/Glossary on database/sql, with sqlite3/mysql/postgres drivers
// blank-imported for their side-effecting sql.Register calls — the
// driver a script gets is chosen at runtime by db_open's "kind"
// argument, not by the Go build.
func registerDatabase() {
	evaluator.RegisterNative("db_open", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("db_open", 2, len(args))
		}
		kind, ok1 := args[0].(*runtime.StringValue)
		dsn, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("db_open", "string", args[0])
		}
		driver, errv := driverName(kind.Value)
		if errv != nil {
			return errv
		}
		db, err := sql.Open(driver, dsn.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "db_open: " + err.Error()}
		}
		return &runtime.DatabaseValue{DB: db, DriverName: driver, ConnectionString: dsn.Value}
	})

	evaluator.RegisterNative("db_pool", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("db_pool", 3, len(args))
		}
		kind, ok1 := args[0].(*runtime.StringValue)
		dsn, ok2 := args[1].(*runtime.StringValue)
		maxConn, ok3 := args[2].(*runtime.IntValue)
		if !ok1 || !ok2 || !ok3 {
			return typeError("db_pool", "string, string, int", args[0])
		}
		driver, errv := driverName(kind.Value)
		if errv != nil {
			return errv
		}
		db, err := sql.Open(driver, dsn.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "db_pool: " + err.Error()}
		}
		db.SetMaxOpenConns(int(maxConn.Value))
		db.SetMaxIdleConns(int(maxConn.Value))
		return &runtime.DatabasePoolValue{DB: db, DriverName: driver, MaxConnections: int(maxConn.Value)}
	})

	evaluator.RegisterNative("db_exec", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 2 {
			return arityError("db_exec", 2, len(args))
		}
		db, query, params, errv := dbQueryArgs("db_exec", args)
		if errv != nil {
			return errv
		}
		res, err := db.Exec(query, params...)
		if err != nil {
			return &runtime.ErrorValue{Message: "db_exec: " + err.Error()}
		}
		affected, _ := res.RowsAffected()
		return &runtime.IntValue{Value: affected}
	})

	evaluator.RegisterNative("db_query", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 2 {
			return arityError("db_query", 2, len(args))
		}
		db, query, params, errv := dbQueryArgs("db_query", args)
		if errv != nil {
			return errv
		}
		rows, err := db.Query(query, params...)
		if err != nil {
			return &runtime.ErrorValue{Message: "db_query: " + err.Error()}
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return &runtime.ErrorValue{Message: "db_query: " + err.Error()}
		}
		out := make([]runtime.Value, 0)
		for rows.Next() {
			raw := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range raw {
				ptrs[i] = &raw[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return &runtime.ErrorValue{Message: "db_query: " + err.Error()}
			}
			row := runtime.NewDict()
			for i, c := range cols {
				row.Set(c, goToValue(normalizeSQLValue(raw[i])))
			}
			out = append(out, row)
		}
		return runtime.NewArray(out)
	})
}

// dbQueryArgs pulls a DatabaseValue/DatabasePoolValue, a query string,
// and trailing bind parameters off args, shared by db_exec/db_query.
func dbQueryArgs(name string, args []runtime.Value) (interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}, string, []any, runtime.Value) {
	var db *sql.DB
	switch d := args[0].(type) {
	case *runtime.DatabaseValue:
		db = d.DB
	case *runtime.DatabasePoolValue:
		db = d.DB
	default:
		return nil, "", nil, typeError(name, "Database", args[0])
	}
	query, ok := args[1].(*runtime.StringValue)
	if !ok {
		return nil, "", nil, typeError(name, "string", args[1])
	}
	params := make([]any, len(args)-2)
	for i, a := range args[2:] {
		params[i] = valueToGo(a)
	}
	return db, query.Value, params, nil
}

func driverName(kind string) (string, runtime.Value) {
	switch kind {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", &runtime.ErrorValue{Message: "db_open: unknown database kind " + kind}
	}
}

// normalizeSQLValue turns database/sql's raw scan output ([]byte for
// text columns) into plain Go strings so goToValue produces a StringValue
// rather than a byte array.
func normalizeSQLValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
