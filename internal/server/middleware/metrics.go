package middleware

import (
	"net/http"
	"time"
)

// Observer records completed requests.
type Observer interface {
	Observe(method string, status int, duration time.Duration)
}

// Metrics reports every request's method, status, and latency to obs.
func Metrics(obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			obs.Observe(r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}
