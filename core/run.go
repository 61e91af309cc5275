package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage names one agent's slot in the cycle. The Analyst phase runs once per
// cycle before the inner sequence; Strategist through SEO form the fixed
// inner pipeline executed per article.
type Stage string

const (
	// StageAnalyst is the once-per-cycle analysis phase.
	StageAnalyst Stage = "analyst"
	// StageStrategist is inner stage 1.
	StageStrategist Stage = "strategist"
	// StageWriter is inner stage 2.
	StageWriter Stage = "writer"
	// StageHumanizer is inner stage 3.
	StageHumanizer Stage = "humanizer"
	// StageSEO is inner stage 4.
	StageSEO Stage = "seo"
)

// InnerStages returns the fixed inner pipeline order.
func InnerStages() []Stage {
	return []Stage{StageStrategist, StageWriter, StageHumanizer, StageSEO}
}

// Index returns the stage's position in the inner sequence (1-4); the
// Analyst phase is 0 as it sits outside the per-article sequence.
func (s Stage) Index() int {
	switch s {
	case StageStrategist:
		return 1
	case StageWriter:
		return 2
	case StageHumanizer:
		return 3
	case StageSEO:
		return 4
	default:
		return 0
	}
}

// StageOf maps an agent class to its stage slot.
func StageOf(class AgentClass) Stage {
	switch class {
	case AgentClassStrategist:
		return StageStrategist
	case AgentClassWriter:
		return StageWriter
	case AgentClassHumanizer:
		return StageHumanizer
	case AgentClassSEO:
		return StageSEO
	default:
		return StageAnalyst
	}
}

// RunStatus is the overall state of a PipelineRun.
type RunStatus string

const (
	// RunStatusRunning means the cycle is executing.
	RunStatusRunning RunStatus = "running"
	// RunStatusCompleted means every stage finished and final content exists.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusFailed means a stage halted the cycle; FailedStage and
	// FailureKind say where and how.
	RunStatusFailed RunStatus = "failed"
)

// OverrideRejection records one override entry dropped at validation:
// non-fatal, retained on the run for diagnostics, never applied.
type OverrideRejection struct {
	Target AgentClass `json:"target"`
	Key    ConfigKey  `json:"key"`
	Reason string     `json:"reason"`
}

// PipelineRun is the engine-owned aggregate for one editorial cycle. It
// collects the strictly ordered invocation log, dropped override entries and
// the final articles, then seals exactly once, either completed or failed
// at a stage. A sealed run is immutable; late appends are discarded.
//
// Each cycle owns its own PipelineRun; there is no cross-run shared state.
// If the host process is torn down mid-cycle the in-flight run is simply
// lost, not marked failed; durability is explicitly not guaranteed.
type PipelineRun struct {
	ID                string              `json:"id"`
	StartedAt         time.Time           `json:"started_at"`
	EndedAt           time.Time           `json:"ended_at"`
	Status            RunStatus           `json:"status"`
	FailedStage       Stage               `json:"failed_stage,omitempty"`
	FailureKind       ErrorKind           `json:"failure_kind,omitempty"`
	FailureMessage    string              `json:"failure_message,omitempty"`
	Invocations       []AgentInvocation   `json:"invocations"`
	RejectedOverrides []OverrideRejection `json:"rejected_overrides,omitempty"`
	// Articles holds finalized artifacts only on Completed. Partial output
	// from earlier stages of a failed run survives solely in the invocation
	// log, as diagnostics.
	Articles []Article `json:"articles,omitempty"`

	sealed bool
}

// NewPipelineRun opens a run for one cycle.
func NewPipelineRun() *PipelineRun {
	return &PipelineRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    RunStatusRunning,
	}
}

// Record appends a finalized invocation in issuance order. Appends after
// sealing are dropped; nothing may grow a sealed run.
func (r *PipelineRun) Record(inv AgentInvocation) {
	if r.sealed {
		return
	}
	r.Invocations = append(r.Invocations, inv)
}

// RejectOverride retains a dropped override entry for diagnostics.
func (r *PipelineRun) RejectOverride(target AgentClass, key ConfigKey, reason string) {
	if r.sealed {
		return
	}
	r.RejectedOverrides = append(r.RejectedOverrides, OverrideRejection{
		Target: target,
		Key:    key,
		Reason: reason,
	})
}

// SealCompleted closes the run as successful with its final articles.
func (r *PipelineRun) SealCompleted(articles []Article) {
	if r.sealed {
		return
	}
	r.Status = RunStatusCompleted
	r.Articles = articles
	r.EndedAt = time.Now().UTC()
	r.sealed = true
}

// SealFailed closes the run at the failing stage with the triggering error
// kind. No later stage may run against a sealed run.
func (r *PipelineRun) SealFailed(stage Stage, kind ErrorKind, msg string) {
	if r.sealed {
		return
	}
	r.Status = RunStatusFailed
	r.FailedStage = stage
	r.FailureKind = kind
	r.FailureMessage = msg
	r.EndedAt = time.Now().UTC()
	r.sealed = true
}

// Sealed reports whether the run has been closed.
func (r *PipelineRun) Sealed() bool { return r.sealed }

// InvocationsFor returns the log entries of one stage, preserving order.
func (r *PipelineRun) InvocationsFor(stage Stage) []AgentInvocation {
	var out []AgentInvocation
	for _, inv := range r.Invocations {
		if inv.Stage == stage {
			out = append(out, inv)
		}
	}
	return out
}

// Summary renders a one-line operator description of the run outcome.
func (r *PipelineRun) Summary() string {
	switch r.Status {
	case RunStatusCompleted:
		return fmt.Sprintf("run %s completed: %d articles, %d model calls", r.ID, len(r.Articles), len(r.Invocations))
	case RunStatusFailed:
		if r.FailureKind == ErrorKindModelTimeout {
			return fmt.Sprintf("run %s timed out at stage %s (stage %d)", r.ID, r.FailedStage, r.FailedStage.Index())
		}
		return fmt.Sprintf("run %s failed at stage %s (stage %d): %s", r.ID, r.FailedStage, r.FailedStage.Index(), r.FailureKind)
	default:
		return fmt.Sprintf("run %s running", r.ID)
	}
}
