package core

import (
	"time"

	"github.com/google/uuid"
)

// InvocationOutcome classifies how a timed model call ended.
type InvocationOutcome string

const (
	// OutcomeSuccess means the call resolved within its deadline and, for
	// structured calls, its payload validated.
	OutcomeSuccess InvocationOutcome = "success"
	// OutcomeTimeout means the deadline elapsed and the call was abandoned.
	OutcomeTimeout InvocationOutcome = "timeout"
	// OutcomeModelError means the remote call resolved with a failure.
	OutcomeModelError InvocationOutcome = "model_error"
	// OutcomeSchemaError means the call resolved but its payload failed
	// structural validation.
	OutcomeSchemaError InvocationOutcome = "schema_error"
)

// AgentInvocation is the log record of one timed model call: who called,
// with which prompts and deadline, and how it ended. It is created at call
// start, finalized exactly once at call end (including on failure), appended
// to the active PipelineRun's log and never mutated again.
type AgentInvocation struct {
	ID           string            `json:"id"`
	Agent        AgentClass        `json:"agent"`
	AgentName    string            `json:"agent_name"`
	Stage        Stage             `json:"stage"`
	Topic        string            `json:"topic,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  time.Time         `json:"completed_at"`
	Timeout      time.Duration     `json:"timeout"`
	SystemPrompt string            `json:"system_prompt"`
	UserPrompt   string            `json:"user_prompt"`
	Outcome      InvocationOutcome `json:"outcome"`
	Payload      string            `json:"payload,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// OpenInvocation starts an invocation record for a call about to be issued.
// The returned value is finalized with Close before being appended to a run.
func OpenInvocation(agent AgentClass, name string, timeout time.Duration, system, user string) AgentInvocation {
	return AgentInvocation{
		ID:           uuid.NewString(),
		Agent:        agent,
		AgentName:    name,
		Stage:        StageOf(agent),
		StartedAt:    time.Now().UTC(),
		Timeout:      timeout,
		SystemPrompt: system,
		UserPrompt:   user,
	}
}

// Close finalizes the record with its outcome. The closed value is what gets
// retained; no path re-enters a closed invocation.
func (inv AgentInvocation) Close(outcome InvocationOutcome, payload string, err error) AgentInvocation {
	inv.CompletedAt = time.Now().UTC()
	inv.Outcome = outcome
	inv.Payload = payload
	if err != nil {
		inv.Error = err.Error()
	}
	return inv
}

// Duration returns the wall time the call occupied its stage.
func (inv AgentInvocation) Duration() time.Duration {
	return inv.CompletedAt.Sub(inv.StartedAt)
}

// InvocationRecorder receives finalized invocation records. The engine hands
// each stage a recorder scoped to the active PipelineRun so the call log
// stays ordered by stage execution and, within a stage, by issuance.
type InvocationRecorder interface {
	Record(inv AgentInvocation)
}

// RecorderFunc adapts a function to the InvocationRecorder interface.
type RecorderFunc func(inv AgentInvocation)

// Record implements InvocationRecorder.
func (f RecorderFunc) Record(inv AgentInvocation) { f(inv) }
