// Package swaggerkit serves the embedded OpenAPI document and Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	phttp "landingrouter/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapiJSON []byte

// Mount the Swagger UI and JSON spec if enabled
// base is the API prefix written into servers, e.g. /api/v1
func Mount(r phttp.Router, base string, enabled bool) {
	if !enabled {
		return
	}
	doc := Document(base)
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

// Document returns the OpenAPI JSON with servers and the shared error responses filled in
func Document(base string) []byte {
	var spec map[string]any
	if err := json.Unmarshal(openapiJSON, &spec); err != nil {
		panic("swaggerkit: embedded openapi.json: " + err.Error())
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
	ensureErrorResponse(spec)
	addErrorResponses(spec)

	out, err := json.Marshal(spec)
	if err != nil {
		panic("swaggerkit: marshal: " + err.Error())
	}
	return out
}

// ensureErrorResponse adds the error envelope schema
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponse(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
			"data":        map[string]any{"type": "object"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addErrorResponses injects 400, 429 and 503 on every POST operation that lacks them
// meta GETs only answer 200
func addErrorResponses(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	ref := map[string]any{"$ref": "#/components/schemas/ErrorResponse"}
	defaults := map[string]string{
		"400": "Invalid JSON or a host that fails validation",
		"429": "Rate limit exceeded",
		"503": "Domain registry unavailable; data carries the partial report",
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for method, opAny := range node {
			if method != "post" {
				continue
			}
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for code, desc := range defaults {
				if _, exists := resps[code]; !exists {
					resps[code] = map[string]any{
						"description": desc,
						"content":     map[string]any{"application/json": map[string]any{"schema": ref}},
					}
				}
			}
		}
	}
}
