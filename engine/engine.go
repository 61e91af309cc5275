package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/editorialmesh/agent"
	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/logging"
)

// Config defines tuning parameters for the engine's operational behavior.
type Config struct {
	// MaxArticlesPerCycle caps how many inner pipelines one cycle runs.
	// Additional topics are dropped with a warning. Zero means unlimited.
	MaxArticlesPerCycle int
}

// DefaultConfig provides production-ready default configuration values.
var DefaultConfig = Config{
	MaxArticlesPerCycle: 5,
}

// Options configures an Engine instance using the functional options pattern.
// Every service has an in-memory-friendly default so tests and local
// development need no wiring beyond the agents themselves.
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config
	// Cycles archives sealed runs and reports; the override feedback loop
	// reads the most recent sealed report from here.
	Cycles core.CycleStore
	// Content receives finalized articles on completed cycles only.
	Content core.ContentSink
	// Progress receives ordered stage-transition events.
	Progress core.ProgressSink
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// CycleInput names the work of one cycle: the topics to produce articles
// for. Each topic gets its own independent inner pipeline; all topics share
// one analysis and override-application phase.
type CycleInput struct {
	Topics []string
}

// Engine is the orchestrator of the editorial cycle. Its state machine per
// run is Idle → Running(stage) → Completed | Failed(stage); the PipelineRun
// value it returns is the sealed record of that trajectory.
type Engine struct {
	cfg        Config
	analyst    *agent.Analyst
	strategist *agent.Strategist
	writer     *agent.Writer
	humanizer  *agent.Humanizer
	seo        *agent.SEO
	cycles     core.CycleStore
	content    core.ContentSink
	progress   core.ProgressSink
	logger     logging.Logger
	baselines  map[core.AgentClass]core.AgentConfig
}

// New creates an engine over the five stage agents.
func New(analyst *agent.Analyst, strategist *agent.Strategist, writer *agent.Writer, humanizer *agent.Humanizer, seo *agent.SEO, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:   DefaultConfig,
		Progress: core.NoOpProgressSink{},
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	baselines := map[core.AgentClass]core.AgentConfig{}
	for _, class := range core.Classes() {
		baselines[class] = core.BaselineConfig(class)
	}

	return &Engine{
		cfg:        opts.Config,
		analyst:    analyst,
		strategist: strategist,
		writer:     writer,
		humanizer:  humanizer,
		seo:        seo,
		cycles:     opts.Cycles,
		content:    opts.Content,
		progress:   opts.Progress,
		logger:     opts.Logger,
		baselines:  baselines,
	}
}

// RunCycle executes one full editorial cycle and returns the sealed
// PipelineRun. The returned error is non-nil exactly when the run sealed
// failed; the run itself is always returned for diagnostics.
//
// There is no mid-stage cancellation beyond ctx: a cycle ends by completing,
// by a stage failure, or by the host process going away. In the last case
// the in-flight run is lost, not marked failed.
func (e *Engine) RunCycle(ctx context.Context, input CycleInput) (*core.PipelineRun, error) {
	if len(input.Topics) == 0 {
		return nil, fmt.Errorf("cycle requires at least one topic")
	}
	topics := input.Topics
	if e.cfg.MaxArticlesPerCycle > 0 && len(topics) > e.cfg.MaxArticlesPerCycle {
		e.logger.Warn("engine.topics.capped", "requested", len(topics), "max", e.cfg.MaxArticlesPerCycle)
		topics = topics[:e.cfg.MaxArticlesPerCycle]
	}

	run := core.NewPipelineRun()
	e.logger.Info("engine.cycle.start", "run", run.ID, "topics", len(topics))

	// Per-cycle config snapshots: cloned baselines with the previous cycle's
	// validated overrides applied. Baselines are never mutated.
	configs := e.cycleConfigs(run)

	report := e.runAnalysis(ctx, run, configs)

	var articles []core.Article
	for _, topic := range topics {
		article, serr := e.runInner(ctx, run, configs, report, topic)
		if serr != nil {
			run.SealFailed(serr.Stage, serr.Kind, serr.Error())
			e.archive(run)
			e.logger.Warn("engine.cycle.failed", "run", run.ID, "stage", serr.Stage, "kind", serr.Kind)
			return run, serr
		}
		articles = append(articles, article)
	}

	for _, article := range articles {
		if err := e.content.Publish(ctx, article); err != nil {
			// The sink is an external collaborator; its failure does not
			// un-complete a cycle whose content exists and is well-formed.
			e.logger.Error("engine.publish.error", "run", run.ID, "article", article.Slug, "error", err.Error())
		}
	}

	run.SealCompleted(articles)
	e.archive(run)
	e.logger.Info("engine.cycle.completed", "run", run.ID, "articles", len(articles), "calls", len(run.Invocations))
	return run, nil
}

// runAnalysis executes the once-per-cycle Analyst phase. Its report feeds
// the Strategist now and the override loop next cycle. An analysis failure
// does not halt the cycle: downstream baseline behavior is fully defined
// without a report, so the cycle proceeds and the failure is reported via
// the progress sink.
func (e *Engine) runAnalysis(ctx context.Context, run *core.PipelineRun, configs map[core.AgentClass]core.AgentConfig) *core.AnalystReport {
	e.emit(run, core.StageAnalyst, "", core.StageStarted, core.ErrorKindNone, "")

	started := time.Now()
	report, err := e.analyst.Analyze(ctx, run, configs[core.AgentClassAnalyst], run.ID)
	if err != nil {
		kind := core.KindOf(err)
		e.emit(run, core.StageAnalyst, "", core.StageFailed, kind, err.Error())
		e.logger.Warn("engine.analysis.failed", "run", run.ID, "kind", kind, "error", err.Error())
		return nil
	}

	e.emit(run, core.StageAnalyst, "", core.StageCompleted, core.ErrorKindNone, "")
	e.logger.Info("engine.analysis.completed", "run", run.ID, "overrides", len(report.Overrides), "degraded", report.Degraded, "duration", time.Since(started))

	if e.cycles != nil {
		if err := e.cycles.SaveReport(report); err != nil {
			e.logger.Error("engine.report.save.error", "run", run.ID, "error", err.Error())
		}
	}
	return &report
}

// runInner executes the fixed four-stage pipeline for one topic. The first
// failing stage stops the sequence; the StageError carries stage and kind.
func (e *Engine) runInner(ctx context.Context, run *core.PipelineRun, configs map[core.AgentClass]core.AgentConfig, report *core.AnalystReport, topic string) (core.Article, *core.StageError) {
	e.emit(run, core.StageStrategist, topic, core.StageStarted, core.ErrorKindNone, "")
	brief, err := e.strategist.Plan(ctx, run, configs[core.AgentClassStrategist], report, topic)
	if err != nil {
		return core.Article{}, e.failStage(run, core.StageStrategist, topic, err)
	}
	e.emit(run, core.StageStrategist, topic, core.StageCompleted, core.ErrorKindNone, "")

	e.emit(run, core.StageWriter, topic, core.StageStarted, core.ErrorKindNone, "")
	draft, err := e.writer.Write(ctx, run, configs[core.AgentClassWriter], brief)
	if err != nil {
		return core.Article{}, e.failStage(run, core.StageWriter, topic, err)
	}
	e.emit(run, core.StageWriter, topic, core.StageCompleted, core.ErrorKindNone, "")

	e.emit(run, core.StageHumanizer, topic, core.StageStarted, core.ErrorKindNone, "")
	refined, err := e.humanizer.Refine(ctx, run, configs[core.AgentClassHumanizer], draft)
	if err != nil {
		return core.Article{}, e.failStage(run, core.StageHumanizer, topic, err)
	}
	e.emit(run, core.StageHumanizer, topic, core.StageCompleted, core.ErrorKindNone, "")

	e.emit(run, core.StageSEO, topic, core.StageStarted, core.ErrorKindNone, "")
	article, err := e.seo.Optimize(ctx, run, configs[core.AgentClassSEO], brief, refined)
	if err != nil {
		return core.Article{}, e.failStage(run, core.StageSEO, topic, err)
	}
	e.emit(run, core.StageSEO, topic, core.StageCompleted, core.ErrorKindNone, "")

	return article, nil
}

// failStage reports a halting stage failure to the progress sink with its
// distinct error-kind tag. A timed-out stage carries an explicit "timed out"
// message so the caller's surface can show a dedicated explanation.
func (e *Engine) failStage(run *core.PipelineRun, stage core.Stage, topic string, err error) *core.StageError {
	serr := core.NewStageError(stage, topic, err)
	e.emit(run, stage, topic, core.StageFailed, serr.Kind, serr.Error())
	return serr
}

func (e *Engine) emit(run *core.PipelineRun, stage core.Stage, topic string, status core.StageStatus, kind core.ErrorKind, msg string) {
	e.progress.Progress(core.ProgressEvent{
		RunID:      run.ID,
		Stage:      stage,
		StageIndex: stage.Index(),
		Topic:      topic,
		Status:     status,
		ErrorKind:  kind,
		Message:    msg,
		Timestamp:  time.Now().UTC(),
	})
}

func (e *Engine) archive(run *core.PipelineRun) {
	if e.cycles == nil {
		return
	}
	if err := e.cycles.SaveRun(run); err != nil {
		e.logger.Error("engine.run.save.error", "run", run.ID, "error", err.Error())
	}
}
