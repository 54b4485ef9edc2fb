package pipeline

import (
	"context"
	"time"

	"designstudio/internal/metrics"
)

// Run executes the three stages in order for a single brief, threading each
// stage's artifact into the next and aborting on the first failure. Stages
// past the failing one are never invoked; artifacts already produced stay in
// the returned record for the caller to inspect. The returned Run is
// terminal: it is never resumed or retried.
func (p *Pipeline) Run(ctx context.Context, brief DesignBrief) *Run {
	run := NewRun(brief)
	run.StartedAt = time.Now()

	p.logger.Info().
		Str("run_id", run.ID).
		Str("room_type", brief.RoomType).
		Str("style", brief.Style).
		Msg("pipeline: run started")

	run.State = StateEnhancing
	run.Enhanced = p.EnhanceBrief(ctx, brief)
	if !run.Enhanced.OK() {
		return p.finish(run, StateFailed)
	}
	run.State = StateEnhanced
	p.logger.Info().
		Str("run_id", run.ID).
		Str("enhanced", run.Enhanced.Value()).
		Msg("pipeline: brief enhanced")

	run.State = StateSketching
	run.Sketch = p.GenerateSketch(ctx, run.Enhanced.Value())
	if !run.Sketch.OK() {
		return p.finish(run, StateFailed)
	}
	run.State = StateSketched
	p.logger.Info().
		Str("run_id", run.ID).
		Int("sketch_bytes", len(run.Sketch.Value())).
		Msg("pipeline: sketch generated")

	run.State = StateRendering
	run.Render = p.GenerateRender(ctx, run.Sketch.Value())
	if !run.Render.OK() {
		return p.finish(run, StateFailed)
	}
	p.logger.Info().
		Str("run_id", run.ID).
		Int("render_bytes", len(run.Render.Value())).
		Msg("pipeline: render complete")

	return p.finish(run, StateSucceeded)
}

func (p *Pipeline) finish(run *Run, state State) *Run {
	run.State = state
	run.FinishedAt = time.Now()
	metrics.RunDuration.WithLabelValues(string(state)).Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())

	evt := p.logger.Info()
	if state == StateFailed {
		evt = p.logger.Warn().Err(run.Err())
	}
	evt.Str("run_id", run.ID).
		Str("state", string(state)).
		Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).
		Msg("pipeline: run finished")

	return run
}
