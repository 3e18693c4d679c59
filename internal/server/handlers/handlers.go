// Package handlers provides HTTP request handlers for the backend-api server.
package handlers

import (
	"net/http"

	"github.com/agentstation/backend-api/internal/server/response"
	"github.com/agentstation/backend-api/pkg/logging"
)

// Greeting is the fixed body returned from the root route.
const Greeting = "Hello from the Python Backend API!"

// HandleRoot handles GET /.
// The response does not depend on the request.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	logging.FromContext(r.Context()).Debug().Msg("Serving greeting")
	response.Text(w, http.StatusOK, Greeting)
}
