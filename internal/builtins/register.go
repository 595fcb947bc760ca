// Package builtins registers every native function spec.md §4.6 names
// into the Native Dispatcher (evaluator.RegisterNative). Each category
// lives in its own file, mirroring the teacher's one-file-per-category
// builtins_*.go split (builtins_core.go, builtins_math_basic.go,
// builtins_strings.go, ...).
//
// Register must be called once (pkg/ruff's NewInterpreter does this)
// before running any program that
// calls a native function; the dispatcher is process-wide, matching
// the teacher's own builtins being methods on a single long-lived
// Interpreter rather than re-registered per run.
package builtins

// Register installs every builtin category. Safe to call more than
// once; later registrations simply overwrite earlier ones under the
// same name.
func Register() {
	registerCore()
	registerMath()
	registerStrings()
	registerArrays()
	registerConvert()
	registerAssert()
	registerAsync()
	registerShared()
	registerJSON()
	registerYAML()
	registerTOML()
	registerCSV()
	registerEncoding()
	registerIO()
	registerTime()
	registerRandom()
	registerPath()
	registerCollections()
	registerHTTP()
	registerJWT()
	registerDatabase()
	registerHash()
	registerText()
	registerImage()
	registerZip()
	registerProcess()
	registerNet()
}
