package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKindNone, KindOf(nil))
	assert.Equal(t, ErrorKindModelTimeout, KindOf(fmt.Errorf("agent writer: %w after 1s", ErrModelTimeout)))
	assert.Equal(t, ErrorKindSchemaValidation, KindOf(fmt.Errorf("agent seo: %w: no JSON", ErrSchemaValidation)))
	assert.Equal(t, ErrorKindModelError, KindOf(errors.New("anything else")))
}

func TestStageError_TimeoutMessageNamesTimeout(t *testing.T) {
	serr := NewStageError(StageWriter, "topic-a", fmt.Errorf("agent writer: %w after 2m0s", ErrModelTimeout))

	assert.Equal(t, ErrorKindModelTimeout, serr.Kind)
	assert.Contains(t, serr.Error(), "timed out")
	assert.Contains(t, serr.Error(), "writer")
	assert.ErrorIs(t, serr, ErrModelTimeout)
}

func TestStageError_GenericFailureMessage(t *testing.T) {
	serr := NewStageError(StageHumanizer, "", fmt.Errorf("agent humanizer: %w: rate limited", ErrModelError))

	assert.Equal(t, ErrorKindModelError, serr.Kind)
	assert.NotContains(t, serr.Error(), "timed out")
	assert.Contains(t, serr.Error(), "stage 3")
}

func TestStageIndexOrder(t *testing.T) {
	assert.Equal(t, 0, StageAnalyst.Index())
	assert.Equal(t, []Stage{StageStrategist, StageWriter, StageHumanizer, StageSEO}, InnerStages())
	for i, stage := range InnerStages() {
		assert.Equal(t, i+1, stage.Index())
	}
}

func TestAgentClassRecognizes(t *testing.T) {
	assert.True(t, AgentClassWriter.Recognizes(ConfigKeyLowerWordCount))
	assert.True(t, AgentClassHumanizer.Recognizes(ConfigKeyReduceHype))
	assert.False(t, AgentClassWriter.Recognizes(ConfigKeyReduceHype))
	assert.False(t, AgentClassSEO.Recognizes("madeUpKnob"))
}

func TestAgentClassDefaultTimeout(t *testing.T) {
	assert.Equal(t, 120*time.Second, AgentClassWriter.DefaultTimeout())
	assert.Equal(t, 90*time.Second, AgentClassAnalyst.DefaultTimeout())
	assert.Equal(t, 90*time.Second, AgentClassHumanizer.DefaultTimeout())
	assert.Equal(t, 90*time.Second, AgentClassSEO.DefaultTimeout())
	assert.Equal(t, 60*time.Second, AgentClassStrategist.DefaultTimeout())
	assert.Equal(t, DefaultCallTimeout, AgentClass("unknown").DefaultTimeout())
}

func TestAgentConfig_CloneIsolation(t *testing.T) {
	baseline := BaselineConfig(AgentClassWriter)
	clone := baseline.Clone()

	clone.Set(ConfigKeyLowerWordCount, true)
	clone.Set(ConfigKeyWordCountCeiling, 900)

	assert.True(t, clone.Bool(ConfigKeyLowerWordCount, false))
	assert.Equal(t, 900, clone.Int(ConfigKeyWordCountCeiling, 0))
	// The baseline the clone came from is untouched.
	assert.False(t, baseline.Bool(ConfigKeyLowerWordCount, false))
	assert.Equal(t, 1800, baseline.Int(ConfigKeyWordCountCeiling, 0))
}

func TestAgentConfig_TypedGettersTolerateJSONNumbers(t *testing.T) {
	cfg := BaselineConfig(AgentClassWriter)
	// Override values decoded from JSON arrive as float64.
	cfg.Set(ConfigKeyWordCountCeiling, float64(1200))

	assert.Equal(t, 1200, cfg.Int(ConfigKeyWordCountCeiling, 0))
	assert.Equal(t, 1200.0, cfg.Float(ConfigKeyWordCountCeiling, 0))
	assert.Equal(t, "fallback", cfg.String(ConfigKeyWordCountCeiling, "fallback"))
}

func TestPipelineRun_OrderedLogAndSealing(t *testing.T) {
	run := NewPipelineRun()
	require.Equal(t, RunStatusRunning, run.Status)

	for _, class := range []AgentClass{AgentClassStrategist, AgentClassWriter, AgentClassHumanizer} {
		inv := OpenInvocation(class, string(class), time.Minute, "sys", "user")
		run.Record(inv.Close(OutcomeSuccess, "ok", nil))
	}

	run.SealFailed(StageHumanizer, ErrorKindModelError, "boom")
	assert.True(t, run.Sealed())
	assert.Equal(t, RunStatusFailed, run.Status)
	assert.Equal(t, StageHumanizer, run.FailedStage)
	assert.Equal(t, ErrorKindModelError, run.FailureKind)

	// Nothing grows a sealed run.
	late := OpenInvocation(AgentClassSEO, "seo", time.Minute, "sys", "user")
	run.Record(late.Close(OutcomeSuccess, "late", nil))
	run.RejectOverride(AgentClassWriter, ConfigKeyLowerWordCount, "late")
	run.SealCompleted([]Article{{ID: "a"}})

	assert.Len(t, run.Invocations, 3)
	assert.Empty(t, run.RejectedOverrides)
	assert.Equal(t, RunStatusFailed, run.Status)
	assert.Empty(t, run.Articles)

	// Issuance order is preserved.
	assert.Equal(t, StageStrategist, run.Invocations[0].Stage)
	assert.Equal(t, StageWriter, run.Invocations[1].Stage)
	assert.Equal(t, StageHumanizer, run.Invocations[2].Stage)
}

func TestPipelineRun_SummaryDistinguishesTimeout(t *testing.T) {
	run := NewPipelineRun()
	run.SealFailed(StageWriter, ErrorKindModelTimeout, "deadline elapsed")
	assert.Contains(t, run.Summary(), "timed out at stage writer")

	other := NewPipelineRun()
	other.SealFailed(StageWriter, ErrorKindModelError, "rate limited")
	assert.NotContains(t, other.Summary(), "timed out")
}

func TestAgentInvocation_CloseCapturesOutcome(t *testing.T) {
	inv := OpenInvocation(AgentClassWriter, "writer", 30*time.Second, "sys", "user")
	closed := inv.Close(OutcomeTimeout, "", errors.New("agent writer: model call timed out"))

	assert.Equal(t, OutcomeTimeout, closed.Outcome)
	assert.Equal(t, 30*time.Second, closed.Timeout)
	assert.NotZero(t, closed.CompletedAt)
	assert.Contains(t, closed.Error, "timed out")
	assert.Equal(t, StageWriter, closed.Stage)
}

func TestAnalystReport_Validate(t *testing.T) {
	report := NewAnalystReport("cycle-1")
	report.RecommendedTier = TierStandard
	report.RecommendedHook = HookStory
	report.RecommendedFormat = FormatAnalysis
	report.Trend = TrendStable
	report.BestStrategy = "listicles on organic search"
	report.Insights = []string{"one", "two", "three"}

	require.NoError(t, report.Validate())

	bad := report
	bad.Insights = []string{"one", "two"}
	assert.Error(t, bad.Validate())

	bad = report
	bad.Insights = []string{"1", "2", "3", "4", "5", "6", "7"}
	assert.Error(t, bad.Validate())

	bad = report
	bad.RecommendedTier = "epic"
	assert.Error(t, bad.Validate())

	bad = report
	bad.BestStrategy = ""
	assert.Error(t, bad.Validate())
}

func TestScrollDepthReachRate(t *testing.T) {
	depth := ScrollDepthSummary{Reached25: 80, Reached50: 60, Reached75: 40, Reached90: 15}

	assert.InDelta(t, 60.0, depth.ReachRate(50, 100), 0.001)
	assert.InDelta(t, 15.0, depth.ReachRate(90, 100), 0.001)
	assert.Zero(t, depth.ReachRate(50, 0))
}
