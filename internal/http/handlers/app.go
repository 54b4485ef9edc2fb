package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"designstudio/internal/infra"
	"designstudio/internal/pipeline"
	"designstudio/internal/storage"
)

// Runner is the slice of the pipeline the HTTP layer depends on. It keeps
// handlers testable with an in-process double.
type Runner interface {
	Run(ctx context.Context, brief pipeline.DesignBrief) *pipeline.Run
	Available() bool
}

// App bundles the dependencies shared by all handlers.
type App struct {
	Pipeline Runner
	Runs     *RunStore
	Store    *storage.FileStore
	Logger   *infra.Logger
}

// NewApp wires the handler container. Store may be nil when no output
// directory is configured.
func NewApp(p Runner, runs *RunStore, store *storage.FileStore, logger *infra.Logger) *App {
	return &App{Pipeline: p, Runs: runs, Store: store, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
