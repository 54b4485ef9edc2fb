package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// State tracks an individual run through the stage sequence.
type State string

const (
	StateNotStarted State = "not_started"
	StateEnhancing  State = "enhancing"
	StateEnhanced   State = "enhanced"
	StateSketching  State = "sketching"
	StateSketched   State = "sketched"
	StateRendering  State = "rendering"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Terminal reports whether the run can make no further progress.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Run holds the caller-visible record of one end-to-end pipeline invocation.
// Slots fill monotonically left to right and are never overwritten within a
// run; a later slot is non-empty only if every earlier slot succeeded.
// Artifacts from completed stages stay readable after a downstream failure.
//
// A Run is owned by exactly one orchestrator invocation while in flight.
// Callers may read it after Run returns; concurrent runs each get their own
// instance.
type Run struct {
	ID    string
	Brief DesignBrief

	Enhanced Outcome[string]
	Sketch   Outcome[[]byte]
	Render   Outcome[[]byte]

	State      State
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRun initializes an empty single-use run record for the brief.
func NewRun(brief DesignBrief) *Run {
	return &Run{
		ID:    uuid.NewString(),
		Brief: brief,
		State: StateNotStarted,
	}
}

// Err returns the stage-tagged error that terminated the run, or nil.
func (r *Run) Err() error {
	for _, err := range []error{r.Enhanced.Err(), r.Sketch.Err(), r.Render.Err()} {
		if err != nil {
			return err
		}
	}
	return nil
}
