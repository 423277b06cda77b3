package httpkit

import (
	"net/http"

	phttp "landingrouter/internal/platform/net/http"
)

// PostJSON mounts a handler under POST that binds and validates T from the body
// a returned Response is written as is, anything else is wrapped in a 200 envelope
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}
