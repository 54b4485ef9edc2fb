package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"designstudio/internal/http/handlers"
	"designstudio/internal/http/httpapi"
	"designstudio/internal/infra"
	"designstudio/internal/pipeline"
)

type fakeRunner struct {
	calls     int
	available bool
	run       func(brief pipeline.DesignBrief) *pipeline.Run
}

func (f *fakeRunner) Run(ctx context.Context, brief pipeline.DesignBrief) *pipeline.Run {
	f.calls++
	return f.run(brief)
}

func (f *fakeRunner) Available() bool { return f.available }

type stagePayload struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type designPayload struct {
	ID            string                  `json:"id"`
	State         string                  `json:"state"`
	EnhancedBrief string                  `json:"enhanced_brief"`
	Stages        map[string]stagePayload `json:"stages"`
	SketchURL     string                  `json:"sketch_url"`
	RenderURL     string                  `json:"render_url"`
	Error         string                  `json:"error"`
}

func successfulRun(brief pipeline.DesignBrief) *pipeline.Run {
	run := pipeline.NewRun(brief)
	run.Enhanced = pipeline.Success("A bright Scandinavian bedroom.")
	run.Sketch = pipeline.Success([]byte("sketch-png"))
	run.Render = pipeline.Success([]byte("render-png"))
	run.State = pipeline.StateSucceeded
	return run
}

func failedAtSketchRun(brief pipeline.DesignBrief) *pipeline.Run {
	run := pipeline.NewRun(brief)
	run.Enhanced = pipeline.Success("A bright Scandinavian bedroom.")
	run.Sketch = pipeline.Failure[[]byte](&pipeline.StageError{Stage: pipeline.StageSketch, Err: pipeline.ErrNoImageProduced})
	run.State = pipeline.StateFailed
	return run
}

func newTestServer(t *testing.T, runner handlers.Runner) *httptest.Server {
	t.Helper()
	logger := infra.Logger(zerolog.New(io.Discard))
	app := handlers.NewApp(runner, handlers.NewRunStore(8), nil, &logger)
	cfg := &infra.Config{GenerateRateLimit: 100}
	srv := httptest.NewServer(httpapi.NewRouter(app, cfg, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postDesign(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/designs", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /v1/designs failed: %v", err)
	}
	return resp
}

func decodeDesign(t *testing.T, resp *http.Response) designPayload {
	t.Helper()
	defer resp.Body.Close()
	var out designPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestDesignGenerateSuccess(t *testing.T) {
	runner := &fakeRunner{available: true, run: successfulRun}
	srv := newTestServer(t, runner)

	resp := postDesign(t, srv, `{"room_type":"Bedroom","style":"Scandinavian","material":"Wood","palette":"Neutral"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeDesign(t, resp)

	if out.State != string(pipeline.StateSucceeded) {
		t.Fatalf("state = %q, want succeeded", out.State)
	}
	if out.EnhancedBrief != "A bright Scandinavian bedroom." {
		t.Fatalf("enhanced_brief = %q", out.EnhancedBrief)
	}
	if !strings.HasSuffix(out.SketchURL, "/sketch.png") || !strings.HasSuffix(out.RenderURL, "/render.png") {
		t.Fatalf("artifact URLs = %q, %q", out.SketchURL, out.RenderURL)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}

	// The artifact endpoints serve the stored bytes.
	imgResp, err := http.Get(srv.URL + out.RenderURL)
	if err != nil {
		t.Fatalf("GET render failed: %v", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", imgResp.StatusCode)
	}
	if ct := imgResp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q, want image/png", ct)
	}
	data, _ := io.ReadAll(imgResp.Body)
	if string(data) != "render-png" {
		t.Fatalf("render body = %q", data)
	}
}

func TestDesignGenerateValidatesBrief(t *testing.T) {
	runner := &fakeRunner{available: true, run: successfulRun}
	srv := newTestServer(t, runner)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"room_type":`},
		{"missing style", `{"room_type":"Bedroom","material":"Wood","palette":"Neutral"}`},
		{"blank fields", `{"room_type":"  ","style":"Modern","material":"Wood","palette":"Neutral"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postDesign(t, srv, tc.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
	if runner.calls != 0 {
		t.Fatalf("runner calls = %d, want 0 for rejected briefs", runner.calls)
	}
}

func TestDesignGeneratePartialFailureKeepsUpstreamArtifacts(t *testing.T) {
	runner := &fakeRunner{available: true, run: failedAtSketchRun}
	srv := newTestServer(t, runner)

	resp := postDesign(t, srv, `{"room_type":"Bedroom","style":"Scandinavian","material":"Wood","palette":"Neutral"}`)
	out := decodeDesign(t, resp)

	if out.State != string(pipeline.StateFailed) {
		t.Fatalf("state = %q, want failed", out.State)
	}
	if out.EnhancedBrief == "" {
		t.Fatal("stage-1 artifact must stay visible after a stage-2 failure")
	}
	if out.SketchURL != "" || out.RenderURL != "" {
		t.Fatal("failed stages must not expose artifact URLs")
	}
	if out.Stages["sketch"].Status != "failed" {
		t.Fatalf("sketch status = %+v, want failed", out.Stages["sketch"])
	}
	if out.Stages["render"].Status != "skipped" {
		t.Fatalf("render status = %+v, want skipped", out.Stages["render"])
	}
	if out.Error == "" {
		t.Fatal("response must carry the stage-tagged failure")
	}

	// Artifacts that never materialized return 404.
	imgResp, err := http.Get(srv.URL + "/v1/designs/" + out.ID + "/render.png")
	if err != nil {
		t.Fatalf("GET render failed: %v", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusNotFound {
		t.Fatalf("render status = %d, want 404", imgResp.StatusCode)
	}
}

func TestDesignStatusUnknownRun(t *testing.T) {
	runner := &fakeRunner{available: true, run: successfulRun}
	srv := newTestServer(t, runner)

	resp, err := http.Get(srv.URL + "/v1/designs/nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthReportsBackendAvailability(t *testing.T) {
	runner := &fakeRunner{available: false, run: successfulRun}
	srv := newTestServer(t, runner)

	resp, err := http.Get(srv.URL + "/v1/healthz")
	if err != nil {
		t.Fatalf("GET healthz failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if out["status"] != "ok" {
		t.Fatalf("status = %v, want ok", out["status"])
	}
	if out["backend_ready"] != false {
		t.Fatalf("backend_ready = %v, want false", out["backend_ready"])
	}
}
