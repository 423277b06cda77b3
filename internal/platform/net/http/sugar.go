package http

import (
	"net/http"

	"landingrouter/internal/platform/net/http/bind"
)

// bindJSON is a seam over bind.ParseJSON
func bindJSON[T any](r *http.Request) (T, error) { return bind.ParseJSON[T](r) }

// GetJSON mounts a JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a JSON handler for POST that binds T from the body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}
