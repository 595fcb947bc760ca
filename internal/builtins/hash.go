package builtins

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerHash installs the hashing/crypto category named in spec.md
// §4.6/Glossary: sha256/md5 are thin stdlib wrappers (no example repo
// pulls in a third-party digest library), while password hashing goes
// through golang.org/x/crypto/bcrypt, the one password-hashing primitive
// the teacher's go.mod already carries.
func registerHash() {
	evaluator.RegisterNative("sha256_hex", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("sha256_hex", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("sha256_hex", "string", args[0])
		}
		sum := sha256.Sum256([]byte(s.Value))
		return runtime.Str(hex.EncodeToString(sum[:]))
	})

	evaluator.RegisterNative("md5_hex", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("md5_hex", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("md5_hex", "string", args[0])
		}
		sum := md5.Sum([]byte(s.Value))
		return runtime.Str(hex.EncodeToString(sum[:]))
	})

	evaluator.RegisterNative("bcrypt_hash", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("bcrypt_hash", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("bcrypt_hash", "string", args[0])
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Value), bcrypt.DefaultCost)
		if err != nil {
			return &runtime.ErrorValue{Message: "bcrypt_hash: " + err.Error()}
		}
		return runtime.Str(string(hashed))
	})

	evaluator.RegisterNative("bcrypt_check", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("bcrypt_check", 2, len(args))
		}
		hashv, ok1 := args[0].(*runtime.StringValue)
		plain, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("bcrypt_check", "string", args[0])
		}
		err := bcrypt.CompareHashAndPassword([]byte(hashv.Value), []byte(plain.Value))
		return &runtime.BoolValue{Value: err == nil}
	})
}
