package builtins

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerZip installs the archive category named in spec.md
// §4.6/Glossary on stdlib archive/zip — no example repo pulls in a
// third-party zip library, since archive/zip already covers both
// directions of the format.
func registerZip() {
	evaluator.RegisterNative("zip_create", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("zip_create", 1, len(args))
		}
		path, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("zip_create", "string", args[0])
		}
		f, err := os.Create(path.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "zip_create: " + err.Error()}
		}
		w := zip.NewWriter(f)
		return &runtime.ZipArchiveValue{
			Path: path.Value,
			Closer: func() error {
				werr := w.Close()
				ferr := f.Close()
				if werr != nil {
					return werr
				}
				return ferr
			},
		}
	})

	evaluator.RegisterNative("zip_close", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("zip_close", 1, len(args))
		}
		arc, ok := args[0].(*runtime.ZipArchiveValue)
		if !ok {
			return typeError("zip_close", "ZipArchive", args[0])
		}
		if err := arc.Close(); err != nil {
			return &runtime.ErrorValue{Message: "zip_close: " + err.Error()}
		}
		return runtime.Null
	})

	evaluator.RegisterNative("zip_extract", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("zip_extract", 2, len(args))
		}
		path, ok1 := args[0].(*runtime.StringValue)
		destDir, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("zip_extract", "string", args[0])
		}
		r, err := zip.OpenReader(path.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "zip_extract: " + err.Error()}
		}
		defer r.Close()
		names := make([]runtime.Value, 0, len(r.File))
		for _, file := range r.File {
			if err := extractZipFile(file, destDir.Value); err != nil {
				return &runtime.ErrorValue{Message: "zip_extract: " + err.Error()}
			}
			names = append(names, runtime.Str(file.Name))
		}
		return runtime.NewArray(names)
	})
}

func extractZipFile(file *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, file.Name)
	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, rc)
	return err
}
