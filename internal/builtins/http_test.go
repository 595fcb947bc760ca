package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestHttpServerConstructor(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "http_server", &runtime.IntValue{Value: 8080})
	srv, ok := got.(*runtime.HttpServerValue)
	if !ok || srv.Port != 8080 || len(srv.Routes) != 0 {
		t.Fatalf("got %v, want empty HttpServer on port 8080", got)
	}
}

func TestHttpResponseConstructor(t *testing.T) {
	ev := setup(t)
	headers := runtime.NewDict()
	headers.Set("Content-Type", runtime.Str("text/plain"))

	got := call(t, ev, "http_response", &runtime.IntValue{Value: 201}, runtime.Str("created"), headers)
	resp, ok := got.(*runtime.HttpResponseValue)
	if !ok || resp.Status != 201 || resp.Body != "created" || resp.Headers["Content-Type"] != "text/plain" {
		t.Fatalf("got %v, want 201/created response with headers", got)
	}
}

func TestHttpResponseDefaultsToEmptyHeaders(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "http_response", &runtime.IntValue{Value: 200}, runtime.Str("ok"))
	resp := got.(*runtime.HttpResponseValue)
	if len(resp.Headers) != 0 {
		t.Fatalf("got %v, want no headers", resp.Headers)
	}
}
