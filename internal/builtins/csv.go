package builtins

import (
	"encoding/csv"
	"strings"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerCSV installs the CSV category named in spec.md §4.6 on
// stdlib encoding/csv — no example repo in the retrieval pack imports a
// third-party CSV library, and encoding/csv's reader/writer already
// handles quoting/escaping correctly, so reimplementing it would only
// reintroduce bugs the stdlib already fixed.
func registerCSV() {
	evaluator.RegisterNative("csv_parse", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("csv_parse", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("csv_parse", "string", args[0])
		}
		rows, err := csv.NewReader(strings.NewReader(s.Value)).ReadAll()
		if err != nil {
			return &runtime.ErrorValue{Message: "csv_parse: " + err.Error()}
		}
		out := make([]runtime.Value, len(rows))
		for i, row := range rows {
			cells := make([]runtime.Value, len(row))
			for j, c := range row {
				cells[j] = runtime.Str(c)
			}
			out[i] = runtime.NewArray(cells)
		}
		return runtime.NewArray(out)
	})

	evaluator.RegisterNative("to_csv", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_csv", 1, len(args))
		}
		rows, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("to_csv", "array of arrays", args[0])
		}
		var buf strings.Builder
		w := csv.NewWriter(&buf)
		for _, r := range rows.Elems {
			row, ok := r.(*runtime.ArrayValue)
			if !ok {
				return typeError("to_csv", "array of arrays", r)
			}
			record := make([]string, row.Len())
			for i, c := range row.Elems {
				record[i] = runtime.Stringify(c)
			}
			if err := w.Write(record); err != nil {
				return &runtime.ErrorValue{Message: "to_csv: " + err.Error()}
			}
		}
		w.Flush()
		return runtime.Str(buf.String())
	})
}
