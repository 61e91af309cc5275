// Package editorialmesh provides a high-level façade over the cycle engine
// and its service abstractions (cycle archive, metrics, analytics, content &
// logging) enabling rapid construction of the automated editorial pipeline.
// Most applications interact with this package by:
//  1. Creating an EditorialMesh via New() (supplying a model, optionally
//     overriding default in-memory services)
//  2. Running editorial cycles via RunCycle with the topics to produce
//  3. Consuming progress events and the sealed PipelineRun per cycle
//
// The façade delegates orchestration to engine.Engine while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply durable stores, the
// real analytics source and a structured logger.
package editorialmesh

import (
	"context"

	"github.com/hupe1980/editorialmesh/agent"
	"github.com/hupe1980/editorialmesh/analytics"
	"github.com/hupe1980/editorialmesh/content"
	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/cycle"
	"github.com/hupe1980/editorialmesh/engine"
	"github.com/hupe1980/editorialmesh/logging"
	"github.com/hupe1980/editorialmesh/metrics"
	"github.com/hupe1980/editorialmesh/model"
)

// Options configures the EditorialMesh instance.
type Options struct {
	// EngineConfig tunes the orchestrator (articles per cycle).
	EngineConfig engine.Config

	// Model backs every agent. Defaults to a MockModel, which is only
	// useful for tests and examples; real deployments supply model/openai
	// or model/anthropic.
	Model model.Model

	// Services (default to in-memory implementations if not provided).
	CycleStore   core.CycleStore
	MetricsStore core.MetricsStore
	Analytics    core.AnalyticsSource
	ContentSink  core.ContentSink
	ProgressSink core.ProgressSink

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// EditorialMesh is the high-level façade aggregating the engine and the five
// stage agents.
type EditorialMesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new EditorialMesh instance with optional overrides. Any
// unset service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *EditorialMesh {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Model:        model.NewMockModel(),
		CycleStore:   cycle.NewInMemoryStore(),
		MetricsStore: metrics.NewInMemoryStore(),
		Analytics:    analytics.UnavailableSource{},
		ContentSink:  content.NewInMemorySink(),
		ProgressSink: core.NoOpProgressSink{},
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	withLogger := func(o *agent.Options) { o.Logger = opts.Logger }

	e := engine.New(
		agent.NewAnalyst(opts.Model, opts.MetricsStore, opts.Analytics, withLogger),
		agent.NewStrategist(opts.Model, withLogger),
		agent.NewWriter(opts.Model, withLogger),
		agent.NewHumanizer(opts.Model, withLogger),
		agent.NewSEO(opts.Model, withLogger),
		func(o *engine.Options) {
			o.Config = opts.EngineConfig
			o.Cycles = opts.CycleStore
			o.Content = opts.ContentSink
			o.Progress = opts.ProgressSink
			o.Logger = opts.Logger
		},
	)

	return &EditorialMesh{opts: opts, engine: e}
}

// RunCycle executes one editorial cycle for the given topics and returns
// the sealed PipelineRun. The error is non-nil exactly when the run failed;
// the run is returned either way for diagnostics.
func (m *EditorialMesh) RunCycle(ctx context.Context, topics ...string) (*core.PipelineRun, error) {
	return m.engine.RunCycle(ctx, engine.CycleInput{Topics: topics})
}

// Engine exposes the underlying orchestrator for advanced wiring.
func (m *EditorialMesh) Engine() *engine.Engine { return m.engine }
