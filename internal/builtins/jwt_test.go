package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestJwtSignVerifyRoundTrip(t *testing.T) {
	ev := setup(t)
	claims := runtime.NewDict()
	claims.Set("sub", runtime.Str("user-1"))
	secret := runtime.Str("top-secret")

	token := call(t, ev, "jwt_sign", claims, secret)
	sv, ok := token.(*runtime.StringValue)
	if !ok {
		t.Fatalf("got %v, want string", token)
	}

	verified := call(t, ev, "jwt_verify", sv, secret)
	d, ok := verified.(*runtime.DictValue)
	if !ok {
		t.Fatalf("got %v, want dict", verified)
	}
	sub, _ := d.Get("sub")
	wantString(t, sub, "user-1")
}

func TestJwtVerifyWrongSecret(t *testing.T) {
	ev := setup(t)
	claims := runtime.NewDict()
	claims.Set("sub", runtime.Str("user-1"))
	token := call(t, ev, "jwt_sign", claims, runtime.Str("secret-a"))

	got := call(t, ev, "jwt_verify", token, runtime.Str("secret-b"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestJwtVerifyMalformedToken(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "jwt_verify", runtime.Str("not.a.token"), runtime.Str("secret"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}
