// Package httpserver drives an *runtime.HttpServerValue's accept loop:
// two-pass (exact, then parameterized) route matching followed by one
// reentrant call into the evaluator per request.
//
// Routing is deliberately hand-rolled over net/http rather than built on
// a router framework (gorilla/mux, chi, ...): the exact-match-first,
// parameterized-second matching order and the params-on-the-request-dict
// shape are specific to this language's semantics, and a framework
// router would impose its own (longest-prefix, trie-based) matching
// order instead of this one.
package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// Server wraps one HttpServerValue and the evaluator its handlers run
// against.
type Server struct {
	ev    *evaluator.Evaluator
	value *runtime.HttpServerValue
}

// New builds a Server for value, dispatching every matched handler
// through ev.
func New(ev *evaluator.Evaluator, value *runtime.HttpServerValue) *Server {
	return &Server{ev: ev, value: value}
}

// Register installs the "__http_listen" native bridge the evaluator's
// HttpServer.listen dispatch (internal/evaluator/calls.go) calls into.
// It is an explicit call rather than an init() side effect so that
// pulling this package in never silently wires a native function a
// caller didn't ask for.
func Register() {
	evaluator.RegisterNative("__http_listen", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		srv, ok := args[0].(*runtime.HttpServerValue)
		if !ok {
			return &runtime.ErrorValue{Message: "listen: not an HttpServer"}
		}
		if err := New(ev, srv).Listen(); err != nil {
			return &runtime.ErrorValue{Message: "listen: " + err.Error()}
		}
		return runtime.Null
	})
}

// Listen enters a blocking accept loop on value.Port. It returns only
// on a listener error (including a graceful http.ErrServerClosed from a
// future shutdown hook).
func (s *Server) Listen() error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.value.Port),
		Handler: http.HandlerFunc(s.handle),
	}
	return srv.ListenAndServe()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if route, params, ok := s.match(r.Method, r.URL.Path); ok {
		s.invoke(w, r, route, params)
		return
	}
	http.Error(w, "not found", http.StatusNotFound)
}

// match runs the two-pass lookup spec.md §4.8 requires: an exact
// (method, path) match first, then parameterized routes (patterns with
// `:name` segments) second. Exact routes always win over a
// parameterized route that would also match the same request.
func (s *Server) match(method, path string) (runtime.Route, map[string]string, bool) {
	for _, route := range s.value.Routes {
		if route.Method == method && route.Pattern == path {
			return route, nil, true
		}
	}
	for _, route := range s.value.Routes {
		if route.Method != method || !strings.Contains(route.Pattern, ":") {
			continue
		}
		if params, ok := matchParameterized(route.Pattern, path); ok {
			return route, params, true
		}
	}
	return runtime.Route{}, nil, false
}

// matchParameterized compares pattern and path segment by segment; a
// pattern segment beginning with ':' captures that path segment under
// its own name (without the colon). Segment counts must match exactly
// — `/users/:id` does not match `/users/42/extra`, per spec.md §8's
// pinned example.
func matchParameterized(pattern, path string) (map[string]string, bool) {
	pSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	rSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(pSegs) != len(rSegs) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = rSegs[i]
			continue
		}
		if seg != rSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request, route runtime.Route, params map[string]string) {
	body, _ := io.ReadAll(r.Body)

	paramsDict := runtime.NewDict()
	for k, v := range params {
		paramsDict.Set(k, runtime.Str(v))
	}
	headersDict := runtime.NewDict()
	for k := range r.Header {
		headersDict.Set(k, runtime.Str(r.Header.Get(k)))
	}

	req := runtime.NewDict()
	req.Set("method", runtime.Str(r.Method))
	req.Set("path", runtime.Str(r.URL.Path))
	req.Set("body", runtime.Str(string(body)))
	req.Set("params", paramsDict)
	req.Set("headers", headersDict)

	result := s.ev.CallValue(route.Handler, []runtime.Value{req})

	resp, ok := result.(*runtime.HttpResponseValue)
	if !ok {
		http.Error(w, fmt.Sprintf("handler returned %s, expected HttpResponse", result.Type()), http.StatusInternalServerError)
		return
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, resp.Body)
}
