package builtins

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerJWT installs the JWT category named in spec.md §4.6/Glossary
// on golang-jwt/jwt/v5, the token library the teacher's go.mod already
// carries — HMAC-signed claims dicts are the common case scripts need,
// so jwt_sign/jwt_verify only support HS256 rather than exposing the
// full algorithm registry.
func registerJWT() {
	evaluator.RegisterNative("jwt_sign", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("jwt_sign", 2, len(args))
		}
		claimsDict, ok := args[0].(*runtime.DictValue)
		if !ok {
			return typeError("jwt_sign", "dict", args[0])
		}
		secret, ok := args[1].(*runtime.StringValue)
		if !ok {
			return typeError("jwt_sign", "string", args[1])
		}
		claims := jwt.MapClaims{}
		for _, k := range claimsDict.Keys() {
			v, _ := claimsDict.Get(k)
			claims[k] = valueToGo(v)
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret.Value))
		if err != nil {
			return &runtime.ErrorValue{Message: "jwt_sign: " + err.Error()}
		}
		return runtime.Str(signed)
	})

	evaluator.RegisterNative("jwt_verify", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("jwt_verify", 2, len(args))
		}
		tok, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("jwt_verify", "string", args[0])
		}
		secret, ok := args[1].(*runtime.StringValue)
		if !ok {
			return typeError("jwt_verify", "string", args[1])
		}
		parsed, err := jwt.Parse(tok.Value, func(t *jwt.Token) (any, error) {
			return []byte(secret.Value), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			return &runtime.ErrorValue{Message: "jwt_verify: invalid token"}
		}
		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return &runtime.ErrorValue{Message: "jwt_verify: invalid claims"}
		}
		out := runtime.NewDict()
		for k, v := range claims {
			out.Set(k, goToValue(v))
		}
		return out
	})
}
