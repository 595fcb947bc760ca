package builtins

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerImage installs the image category named in spec.md
// §4.6/Glossary on disintegration/imaging, the only image-manipulation
// library in the teacher's go.mod — imaging.Open/Resize/Encode already
// cover decode/transform/encode without hand-rolling pixel math over
// stdlib image.
func registerImage() {
	evaluator.RegisterNative("image_open", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("image_open", 1, len(args))
		}
		path, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("image_open", "string", args[0])
		}
		img, err := imaging.Open(path.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "image_open: " + err.Error()}
		}
		return &runtime.ImageValue{Data: img, Format: formatFromPath(path.Value)}
	})

	evaluator.RegisterNative("image_resize", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("image_resize", 3, len(args))
		}
		img, ok := args[0].(*runtime.ImageValue)
		if !ok {
			return typeError("image_resize", "Image", args[0])
		}
		w, ok1 := args[1].(*runtime.IntValue)
		h, ok2 := args[2].(*runtime.IntValue)
		if !ok1 || !ok2 {
			return typeError("image_resize", "int", args[1])
		}
		img.Lock()
		defer img.Unlock()
		resized := imaging.Resize(img.Data, int(w.Value), int(h.Value), imaging.Lanczos)
		return &runtime.ImageValue{Data: resized, Format: img.Format}
	})

	evaluator.RegisterNative("image_save", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("image_save", 2, len(args))
		}
		img, ok := args[0].(*runtime.ImageValue)
		if !ok {
			return typeError("image_save", "Image", args[0])
		}
		path, ok := args[1].(*runtime.StringValue)
		if !ok {
			return typeError("image_save", "string", args[1])
		}
		img.Lock()
		defer img.Unlock()
		if err := imaging.Save(img.Data, path.Value); err != nil {
			return &runtime.ErrorValue{Message: "image_save: " + err.Error()}
		}
		return runtime.Null
	})

	evaluator.RegisterNative("image_encode", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("image_encode", 2, len(args))
		}
		img, ok := args[0].(*runtime.ImageValue)
		if !ok {
			return typeError("image_encode", "Image", args[0])
		}
		format, ok := args[1].(*runtime.StringValue)
		if !ok {
			return typeError("image_encode", "string", args[1])
		}
		img.Lock()
		defer img.Unlock()
		var buf bytes.Buffer
		var err error
		switch format.Value {
		case "png":
			err = png.Encode(&buf, img.Data)
		case "jpeg", "jpg":
			err = jpeg.Encode(&buf, img.Data, nil)
		default:
			return &runtime.ErrorValue{Message: "image_encode: unsupported format " + format.Value}
		}
		if err != nil {
			return &runtime.ErrorValue{Message: "image_encode: " + err.Error()}
		}
		return &runtime.BytesValue{Value: buf.Bytes()}
	})
}

func formatFromPath(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
