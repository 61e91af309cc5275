package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/logging"
	"github.com/hupe1980/editorialmesh/model"
)

// Options configures an agent instance. Use functional options with the
// agent constructors to override defaults.
type Options struct {
	// Name is the agent's log identity; defaults to the class name.
	Name string
	// Timeout is the agent-class call deadline. Defaults to the class budget
	// (Writer 120s, Humanizer/SEO/Analyst 90s, otherwise 60s).
	Timeout time.Duration
	// Temperature passed through to the model; zero keeps the adapter default.
	Temperature float64
	// MaxTokens passed through to the model; zero keeps the adapter default.
	MaxTokens int64
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// CallOption adjusts a single ProduceText / ProduceStructured call.
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
}

// WithCallTimeout overrides the deadline for one call. Resolution priority:
// per-call override, then agent-class default, then the global default.
func WithCallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// BaseAgent bundles the capability contract shared by every agent variant:
// identity, the model handle, the timeout policy and invocation recording.
// Embed it in a concrete agent and build operations from ProduceText /
// ProduceStructured.
type BaseAgent struct {
	name        string
	class       core.AgentClass
	llm         model.Model
	timeout     time.Duration
	temperature float64
	maxTokens   int64
	logger      logging.Logger
}

// NewBaseAgent constructs the shared agent core for a class.
func NewBaseAgent(class core.AgentClass, llm model.Model, optFns ...func(o *Options)) BaseAgent {
	opts := Options{
		Name:    string(class),
		Timeout: class.DefaultTimeout(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return BaseAgent{
		name:        opts.Name,
		class:       class,
		llm:         llm,
		timeout:     opts.Timeout,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      opts.Logger,
	}
}

// Name returns the agent's log identity.
func (b *BaseAgent) Name() string { return b.name }

// Class returns the agent's class.
func (b *BaseAgent) Class() core.AgentClass { return b.class }

func (b *BaseAgent) resolveTimeout(co callOptions) time.Duration {
	if co.timeout > 0 {
		return co.timeout
	}
	if b.timeout > 0 {
		return b.timeout
	}
	return core.DefaultCallTimeout
}

// ProduceText issues one timed free-form generation. Exactly one
// AgentInvocation is recorded per call, including on timeout or model
// failure. Errors carry the taxonomy sentinel (ErrModelTimeout or
// ErrModelError) for errors.Is discrimination.
func (b *BaseAgent) ProduceText(ctx context.Context, rec core.InvocationRecorder, system, user string, optFns ...CallOption) (string, error) {
	resp, inv, err := b.timedComplete(ctx, system, user, false, optFns...)
	if err != nil {
		outcome := core.OutcomeModelError
		if errors.Is(err, core.ErrModelTimeout) {
			outcome = core.OutcomeTimeout
		}
		rec.Record(inv.Close(outcome, "", err))
		return "", err
	}
	rec.Record(inv.Close(core.OutcomeSuccess, resp.Text, nil))
	return resp.Text, nil
}

// Validatable is implemented by every structured output type so schema
// checks live next to the type they protect.
type Validatable interface {
	Validate() error
}

// ProduceStructured issues one timed generation whose output must parse as
// JSON into T and pass T's validation; otherwise the call fails with
// ErrSchemaValidation, independent of timeout and model errors. The single
// AgentInvocation recorded carries the schema_error outcome in that case.
//
// It is a function rather than a method because Go methods cannot introduce
// type parameters.
func ProduceStructured[T Validatable](ctx context.Context, b *BaseAgent, rec core.InvocationRecorder, system, user string, optFns ...CallOption) (T, error) {
	var zero T

	resp, inv, err := b.timedComplete(ctx, system, user, true, optFns...)
	if err != nil {
		outcome := core.OutcomeModelError
		if errors.Is(err, core.ErrModelTimeout) {
			outcome = core.OutcomeTimeout
		}
		rec.Record(inv.Close(outcome, "", err))
		return zero, err
	}

	payload := extractJSON(resp.Text)
	if payload == "" {
		verr := fmt.Errorf("agent %s: %w: no JSON object in model output", b.name, core.ErrSchemaValidation)
		rec.Record(inv.Close(core.OutcomeSchemaError, resp.Text, verr))
		return zero, verr
	}

	var out T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		verr := fmt.Errorf("agent %s: %w: %v", b.name, core.ErrSchemaValidation, err)
		rec.Record(inv.Close(core.OutcomeSchemaError, resp.Text, verr))
		return zero, verr
	}
	if err := out.Validate(); err != nil {
		verr := fmt.Errorf("agent %s: %w: %v", b.name, core.ErrSchemaValidation, err)
		rec.Record(inv.Close(core.OutcomeSchemaError, resp.Text, verr))
		return zero, verr
	}

	rec.Record(inv.Close(core.OutcomeSuccess, resp.Text, nil))
	return out, nil
}

// timedComplete races the model call against the resolved deadline and
// returns the open invocation record for the caller to close.
func (b *BaseAgent) timedComplete(ctx context.Context, system, user string, jsonOnly bool, optFns ...CallOption) (model.Response, core.AgentInvocation, error) {
	co := callOptions{}
	for _, fn := range optFns {
		fn(&co)
	}
	timeout := b.resolveTimeout(co)

	inv := core.OpenInvocation(b.class, b.name, timeout, system, user)
	start := time.Now()

	resp, err := core.TimedCall(ctx, timeout, func(ctx context.Context) (model.Response, error) {
		return b.llm.Complete(ctx, model.Request{
			System:      system,
			User:        user,
			Temperature: b.temperature,
			MaxTokens:   b.maxTokens,
			JSONOnly:    jsonOnly,
		})
	})

	switch {
	case errors.Is(err, core.ErrModelTimeout):
		b.logger.Warn("agent.call.timeout", "agent", b.name, "timeout", timeout)
		return model.Response{}, inv, fmt.Errorf("agent %s: %w after %s", b.name, core.ErrModelTimeout, timeout)
	case err != nil:
		b.logger.Error("agent.call.error", "agent", b.name, "error", err.Error())
		return model.Response{}, inv, fmt.Errorf("agent %s: %w: %v", b.name, core.ErrModelError, err)
	}

	b.logger.Debug("agent.call.complete", "agent", b.name, "duration", time.Since(start))
	return resp, inv, nil
}

// extractJSON returns the outermost JSON object in s, tolerating code fences
// and prose the model wraps around it. Empty when no object is present.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
