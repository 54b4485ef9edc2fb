package handlers

import (
	"net/http"
)

// Health reports liveness and whether the generative backend is reachable by
// configuration. An offline backend is not a process failure: the service
// keeps serving, every run just fails fast.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"backend_ready": a.Pipeline.Available(),
	})
}
