package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies one of the three generation stages.
type Stage int

const (
	StageEnhance Stage = 1
	StageSketch  Stage = 2
	StageRender  Stage = 3
)

func (s Stage) String() string {
	switch s {
	case StageEnhance:
		return "enhance"
	case StageSketch:
		return "sketch"
	case StageRender:
		return "render"
	default:
		return fmt.Sprintf("stage-%d", int(s))
	}
}

var (
	// ErrBackendUnavailable means no usable gateway handle exists. It is fatal
	// to the whole run: every stage short-circuits without a network call.
	ErrBackendUnavailable = errors.New("generative backend unavailable")

	// ErrEmptyResult means the backend answered the enhance call successfully
	// but returned no usable text.
	ErrEmptyResult = errors.New("backend returned no usable text")

	// ErrNoImageProduced means an image stage got a well-formed response with
	// no inline image part in it. Text-only refusals land here; it is an
	// expected failure mode, distinct from a transport error.
	ErrNoImageProduced = errors.New("backend response contained no inline image")
)

// StageError tags an underlying cause with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", int(e.Stage), e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func failStage(s Stage, err error) *StageError {
	return &StageError{Stage: s, Err: err}
}
