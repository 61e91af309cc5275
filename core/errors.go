package core

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure with its taxonomy class so callers (and the
// progress sink) can branch on the category without parsing messages. A
// timed-out stage must remain distinguishable from a generic model failure
// all the way to the user-facing surface.
type ErrorKind string

const (
	// ErrorKindNone is the zero kind, carried by events that are not failures.
	ErrorKindNone ErrorKind = ""
	// ErrorKindModelTimeout indicates the deadline elapsed before the remote
	// model call resolved.
	ErrorKindModelTimeout ErrorKind = "model_timeout"
	// ErrorKindModelError indicates the remote call resolved but signaled
	// failure (rate limit, transport fault, malformed envelope).
	ErrorKindModelError ErrorKind = "model_error"
	// ErrorKindSchemaValidation indicates the remote call succeeded but its
	// output failed structural validation.
	ErrorKindSchemaValidation ErrorKind = "schema_validation"
	// ErrorKindOverrideRejected is a non-fatal, logged-only condition: an
	// override key not recognized by its target agent.
	ErrorKindOverrideRejected ErrorKind = "override_rejected"
)

// Sentinel errors for the taxonomy. Agents wrap these with %w so engine and
// caller code can discriminate via errors.Is regardless of message text.
var (
	// ErrModelTimeout is returned when TimedCall abandons a model call at its deadline.
	ErrModelTimeout = errors.New("model call timed out")
	// ErrModelError is returned when the model call resolved with a failure.
	ErrModelError = errors.New("model call failed")
	// ErrSchemaValidation is returned when model output cannot be parsed or
	// validated against the expected structure.
	ErrSchemaValidation = errors.New("model output failed schema validation")
)

// KindOf maps an error to its taxonomy kind. Unknown errors are classified
// as model errors: every halting failure reaching the engine originates at
// a stage boundary and must carry one of the halting kinds.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrModelTimeout):
		return ErrorKindModelTimeout
	case errors.Is(err, ErrSchemaValidation):
		return ErrorKindSchemaValidation
	default:
		return ErrorKindModelError
	}
}

// StageError wraps a stage failure with the stage identity and error kind so
// a sealed PipelineRun and the progress sink can report precisely where and
// how a cycle halted.
type StageError struct {
	Stage Stage
	Kind  ErrorKind
	// Topic identifies which article's inner pipeline failed; empty for the
	// cycle-level analysis phase.
	Topic string
	Err   error
}

// Error renders a message that explicitly names a timeout as such; operators
// rely on the distinction to separate infrastructure slowness from genuine
// model or schema problems.
func (e *StageError) Error() string {
	if e.Kind == ErrorKindModelTimeout {
		return fmt.Sprintf("stage %s (stage %d) timed out: %v", e.Stage, e.Stage.Index(), e.Err)
	}
	return fmt.Sprintf("stage %s (stage %d) failed: %v", e.Stage, e.Stage.Index(), e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As chains.
func (e *StageError) Unwrap() error { return e.Err }

// NewStageError builds a StageError, deriving the kind from err.
func NewStageError(stage Stage, topic string, err error) *StageError {
	return &StageError{Stage: stage, Kind: KindOf(err), Topic: topic, Err: err}
}
