package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"designstudio/internal/pipeline"
)

type designRequest struct {
	RoomType string `json:"room_type"`
	Style    string `json:"style"`
	Material string `json:"material"`
	Palette  string `json:"palette"`
	Details  string `json:"details,omitempty"`
}

type stageStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type designResponse struct {
	ID            string                 `json:"id"`
	State         string                 `json:"state"`
	EnhancedBrief string                 `json:"enhanced_brief,omitempty"`
	Stages        map[string]stageStatus `json:"stages"`
	SketchURL     string                 `json:"sketch_url,omitempty"`
	RenderURL     string                 `json:"render_url,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// DesignGenerate runs the full pipeline synchronously for the submitted
// brief. The connection stays open for three backend round trips; a stage
// failure still produces a 200 with the failed state and the artifacts that
// did complete, since partial results are part of the contract.
func (a *App) DesignGenerate(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	brief := pipeline.DesignBrief{
		RoomType: strings.TrimSpace(req.RoomType),
		Style:    strings.TrimSpace(req.Style),
		Material: strings.TrimSpace(req.Material),
		Palette:  strings.TrimSpace(req.Palette),
		Details:  req.Details,
	}
	if brief.RoomType == "" || brief.Style == "" || brief.Material == "" || brief.Palette == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "room_type, style, material and palette are required")
		return
	}

	run := a.Pipeline.Run(r.Context(), brief)
	a.Runs.Put(run)
	a.persistArtifacts(r, run)

	a.json(w, http.StatusOK, a.designResponse(run))
}

// DesignStatus returns the recorded state of a past run.
func (a *App) DesignStatus(w http.ResponseWriter, r *http.Request) {
	run, ok := a.Runs.Get(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown design run")
		return
	}
	a.json(w, http.StatusOK, a.designResponse(run))
}

// DesignSketch serves the sketch PNG of a completed stage.
func (a *App) DesignSketch(w http.ResponseWriter, r *http.Request) {
	a.serveArtifact(w, r, func(run *pipeline.Run) pipeline.Outcome[[]byte] { return run.Sketch })
}

// DesignRender serves the final render PNG.
func (a *App) DesignRender(w http.ResponseWriter, r *http.Request) {
	a.serveArtifact(w, r, func(run *pipeline.Run) pipeline.Outcome[[]byte] { return run.Render })
}

func (a *App) serveArtifact(w http.ResponseWriter, r *http.Request, pick func(*pipeline.Run) pipeline.Outcome[[]byte]) {
	run, ok := a.Runs.Get(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown design run")
		return
	}
	outcome := pick(run)
	if !outcome.OK() {
		a.error(w, http.StatusNotFound, "not_found", "artifact not available for this run")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(outcome.Value())
}

func (a *App) designResponse(run *pipeline.Run) designResponse {
	resp := designResponse{
		ID:    run.ID,
		State: string(run.State),
		Stages: map[string]stageStatus{
			pipeline.StageEnhance.String(): outcomeStatus(run.Enhanced.Attempted(), run.Enhanced.OK(), run.Enhanced.Err()),
			pipeline.StageSketch.String():  outcomeStatus(run.Sketch.Attempted(), run.Sketch.OK(), run.Sketch.Err()),
			pipeline.StageRender.String():  outcomeStatus(run.Render.Attempted(), run.Render.OK(), run.Render.Err()),
		},
	}
	if run.Enhanced.OK() {
		resp.EnhancedBrief = run.Enhanced.Value()
	}
	if run.Sketch.OK() {
		resp.SketchURL = fmt.Sprintf("/v1/designs/%s/sketch.png", run.ID)
	}
	if run.Render.OK() {
		resp.RenderURL = fmt.Sprintf("/v1/designs/%s/render.png", run.ID)
	}
	if err := run.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func outcomeStatus(attempted, ok bool, err error) stageStatus {
	switch {
	case !attempted:
		return stageStatus{Status: "skipped"}
	case ok:
		return stageStatus{Status: "succeeded"}
	default:
		return stageStatus{Status: "failed", Error: err.Error()}
	}
}

func (a *App) persistArtifacts(r *http.Request, run *pipeline.Run) {
	if a.Store == nil {
		return
	}
	artifacts := map[string]pipeline.Outcome[[]byte]{
		"sketch.png": run.Sketch,
		"render.png": run.Render,
	}
	for name, outcome := range artifacts {
		if !outcome.OK() {
			continue
		}
		key := run.ID + "/" + name
		if _, err := a.Store.Write(r.Context(), key, outcome.Value()); err != nil {
			a.Logger.Warn().Err(err).Str("key", key).Msg("failed to persist artifact")
		}
	}
}
