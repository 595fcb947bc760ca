package builtins

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/httpserver"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerHTTP installs the HTTP Server Loop and HTTP client category
// named in spec.md §4.8: http_server/http_response construct the
// capability objects the evaluator's dedicated HttpServer method
// dispatch operates on, httpserver.Register wires the "listen" bridge,
// and http_get/http_post give scripts an outbound client. No example
// repo pulls in a third-party HTTP client, and net/http already covers
// the whole surface a scripting runtime needs for outbound requests.
func registerHTTP() {
	httpserver.Register()

	evaluator.RegisterNative("http_server", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("http_server", 1, len(args))
		}
		port, ok := args[0].(*runtime.IntValue)
		if !ok {
			return typeError("http_server", "int", args[0])
		}
		return &runtime.HttpServerValue{Port: int(port.Value)}
	})

	evaluator.RegisterNative("http_response", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 2 || len(args) > 3 {
			return arityError("http_response", 2, len(args))
		}
		status, ok := args[0].(*runtime.IntValue)
		if !ok {
			return typeError("http_response", "int", args[0])
		}
		body, ok := args[1].(*runtime.StringValue)
		if !ok {
			return typeError("http_response", "string", args[1])
		}
		headers := map[string]string{}
		if len(args) == 3 {
			d, ok := args[2].(*runtime.DictValue)
			if !ok {
				return typeError("http_response", "dict", args[2])
			}
			for _, k := range d.Keys() {
				v, _ := d.Get(k)
				headers[k] = runtime.Stringify(v)
			}
		}
		return &runtime.HttpResponseValue{Status: int(status.Value), Body: body.Value, Headers: headers}
	})

	client := &http.Client{Timeout: 30 * time.Second}

	evaluator.RegisterNative("http_get", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("http_get", 1, len(args))
		}
		url, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("http_get", "string", args[0])
		}
		return doRequest(client, http.MethodGet, url.Value, "", nil)
	})

	evaluator.RegisterNative("http_post", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("http_post", 2, len(args))
		}
		url, ok1 := args[0].(*runtime.StringValue)
		body, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("http_post", "string", args[0])
		}
		return doRequest(client, http.MethodPost, url.Value, body.Value, nil)
	})
}

func doRequest(client *http.Client, method, url, body string, headers map[string]string) runtime.Value {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return &runtime.ErrorValue{Message: "http: " + err.Error()}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return &runtime.ErrorValue{Message: "http: " + err.Error()}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &runtime.ErrorValue{Message: "http: " + err.Error()}
	}
	respHeaders := runtime.NewDict()
	for k := range resp.Header {
		respHeaders.Set(k, runtime.Str(resp.Header.Get(k)))
	}
	out := runtime.NewDict()
	out.Set("status", &runtime.IntValue{Value: int64(resp.StatusCode)})
	out.Set("body", runtime.Str(string(data)))
	out.Set("headers", respHeaders)
	return out
}
