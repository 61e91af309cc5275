package core

import "time"

// StageStatus is the transition a progress event reports.
type StageStatus string

const (
	// StageStarted fires when a stage begins executing.
	StageStarted StageStatus = "started"
	// StageCompleted fires when a stage finishes successfully.
	StageCompleted StageStatus = "completed"
	// StageFailed fires when a stage halts the cycle; ErrorKind carries the
	// taxonomy class so a timeout is distinguishable from other failures by
	// tag, not message text.
	StageFailed StageStatus = "failed"
)

// ProgressEvent is one stage transition emitted to the caller's sink in
// strict pipeline order.
type ProgressEvent struct {
	RunID      string      `json:"run_id"`
	Stage      Stage       `json:"stage"`
	StageIndex int         `json:"stage_index"`
	Topic      string      `json:"topic,omitempty"`
	Status     StageStatus `json:"status"`
	ErrorKind  ErrorKind   `json:"error_kind,omitempty"`
	Message    string      `json:"message,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ProgressSink receives ordered progress events. The consumer owns any
// user-facing display; the engine only guarantees ordering and distinct
// error-kind tags.
type ProgressSink interface {
	Progress(event ProgressEvent)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(event ProgressEvent)

// Progress implements ProgressSink.
func (f ProgressFunc) Progress(event ProgressEvent) { f(event) }

// NoOpProgressSink discards all progress events.
type NoOpProgressSink struct{}

// Progress implements ProgressSink.
func (NoOpProgressSink) Progress(ProgressEvent) {}
