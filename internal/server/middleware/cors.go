package middleware

import (
	"net/http"

	"github.com/agentstation/backend-api/pkg/constants"
)

// CORS headers
const (
	headerAllowOrigin    = "Access-Control-Allow-Origin"
	headerAllowMethods   = "Access-Control-Allow-Methods"
	headerAllowHeaders   = "Access-Control-Allow-Headers"
	headerMaxAge         = "Access-Control-Max-Age"
	headerRequestMethod  = "Access-Control-Request-Method"
	headerRequestHeaders = "Access-Control-Request-Headers"
)

// allowedMethods is advertised on preflight responses.
const allowedMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// CORS applies a blanket allow-all cross-origin policy to every response,
// whatever the path, method, or status.
//
// A preflight (OPTIONS carrying Access-Control-Request-Method) is answered
// here with 204 and never reaches the router. A bare OPTIONS is not a
// preflight and falls through, still carrying the allow-origin header.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(headerAllowOrigin, "*")

			if !isPreflight(r) {
				next.ServeHTTP(w, r)
				return
			}

			h.Set(headerAllowMethods, allowedMethods)
			if requested := r.Header.Get(headerRequestHeaders); requested != "" {
				h.Set(headerAllowHeaders, requested)
			}
			h.Set(headerMaxAge, constants.CORSMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// isPreflight reports whether r is a CORS preflight request.
func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get(headerRequestMethod) != ""
}
