package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestSha256Hex(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "sha256_hex", runtime.Str(""))
	wantString(t, got, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
}

func TestMd5Hex(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "md5_hex", runtime.Str(""))
	wantString(t, got, "d41d8cd98f00b204e9800998ecf8427e")
}

func TestBcryptHashAndCheck(t *testing.T) {
	ev := setup(t)
	hashed := call(t, ev, "bcrypt_hash", runtime.Str("s3cret"))
	sv, ok := hashed.(*runtime.StringValue)
	if !ok {
		t.Fatalf("got %v, want string", hashed)
	}
	wantBool(t, call(t, ev, "bcrypt_check", sv, runtime.Str("s3cret")), true)
	wantBool(t, call(t, ev, "bcrypt_check", sv, runtime.Str("wrong")), false)
}
