package server

import (
	"net/http"

	"github.com/agentstation/backend-api/internal/server/handlers"
	"github.com/agentstation/backend-api/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.applyMiddleware(mux)
}

// registerRoutes registers the public routes. "{$}" pins the pattern to
// the exact root so every other path falls through to the mux's 404.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handlers.HandleRoot)
}

// applyMiddleware wraps the router. Recovery is outermost so panics in
// any later layer still produce a response.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		middleware.Metrics(s.metrics),
		middleware.CORS(),
	)(handler)
}

// metricsHandler serves the Prometheus registry on the private listener.
func (s *Server) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", s.metrics.Handler())
	return middleware.Recovery(s.logger)(mux)
}
