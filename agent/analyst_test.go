package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/editorialmesh/analytics"
	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/internal/testutil"
	"github.com/hupe1980/editorialmesh/metrics"
	"github.com/hupe1980/editorialmesh/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalystUnderTest(source core.AnalyticsSource) *Analyst {
	store := metrics.NewInMemoryStore()
	store.SetAggregates([]core.ArticleAggregate{
		{Slug: "a", Title: "A", Views: 1200, BounceRate: 38, Conversions: 9},
		{Slug: "b", Title: "B", Views: 640, BounceRate: 51, Conversions: 2},
	})
	store.SetTrend(core.TrendComparison{RecentViews: 1840, OlderViews: 1500, Direction: core.TrendImproving})
	return NewAnalyst(testutil.ScriptedPipelineModel(), store, source)
}

func overridesFor(report core.AnalystReport, target core.AgentClass) []core.AgentOverride {
	var out []core.AgentOverride
	for _, ov := range report.Overrides {
		if ov.Target == target {
			out = append(out, ov)
		}
	}
	return out
}

func TestAnalyze_LowScrollDepthEmitsWriterOverride(t *testing.T) {
	summary := testutil.NewSummaryBuilder().
		Engagement(55).
		AvgScroll(35).
		Reach(50, 15).
		Reach(90, 4).
		Build()
	analyst := newAnalystUnderTest(analytics.NewStaticSource(summary))
	rec := &testutil.ListRecorder{}

	report, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	require.NoError(t, err)
	require.NoError(t, report.Validate())

	writerOverrides := overridesFor(report, core.AgentClassWriter)
	require.Len(t, writerOverrides, 1)
	lower, ok := writerOverrides[0].Changes[core.ConfigKeyLowerWordCount]
	require.True(t, ok)
	assert.Equal(t, true, lower)
	assert.Equal(t, core.TierQuick, report.RecommendedTier)
}

func TestAnalyze_StrongScrollDepthEmitsNoOverrides(t *testing.T) {
	summary := testutil.NewSummaryBuilder().
		Engagement(62).
		AvgScroll(72).
		Reach(50, 80).
		Reach(90, 53).
		Build()
	analyst := newAnalystUnderTest(analytics.NewStaticSource(summary))
	rec := &testutil.ListRecorder{}

	report, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	require.NoError(t, err)
	assert.Empty(t, report.Overrides)

	var noChanges bool
	for _, in := range report.Insights {
		if strings.Contains(in, "no changes needed") {
			noChanges = true
		}
	}
	assert.True(t, noChanges, "expected an explicit no-changes insight, got %v", report.Insights)
}

func TestAnalyze_MidArticleDropOffFlagsStructureNotLength(t *testing.T) {
	summary := testutil.NewSummaryBuilder().
		Engagement(58).
		AvgScroll(56).
		Reach(50, 68).
		Reach(90, 12).
		Build()
	analyst := newAnalystUnderTest(analytics.NewStaticSource(summary))
	rec := &testutil.ListRecorder{}

	report, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	require.NoError(t, err)
	// Structural signal, not a shortening one: no Writer override.
	assert.Empty(t, overridesFor(report, core.AgentClassWriter))

	var structural bool
	for _, in := range report.Insights {
		if strings.Contains(in, "subheading") {
			structural = true
		}
	}
	assert.True(t, structural, "expected a subheading-density insight, got %v", report.Insights)
}

func TestAnalyze_LowEngagementEmitsHumanizerHypeOverride(t *testing.T) {
	summary := testutil.NewSummaryBuilder().
		Engagement(31).
		AvgScroll(58).
		Reach(50, 62).
		Reach(90, 40).
		Build()
	analyst := newAnalystUnderTest(analytics.NewStaticSource(summary))
	rec := &testutil.ListRecorder{}

	report, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	require.NoError(t, err)
	humanizerOverrides := overridesFor(report, core.AgentClassHumanizer)
	require.Len(t, humanizerOverrides, 1)
	assert.Equal(t, true, humanizerOverrides[0].Changes[core.ConfigKeyReduceHype])
	assert.Equal(t, core.TierQuick, report.RecommendedTier)
}

func TestAnalyze_DegradedModeStillProducesValidReport(t *testing.T) {
	analyst := newAnalystUnderTest(analytics.UnavailableSource{})
	rec := &testutil.ListRecorder{}

	report, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	require.NoError(t, err)
	require.NoError(t, report.Validate())
	assert.True(t, report.Degraded)
	assert.Empty(t, report.Overrides)

	var degraded bool
	for _, in := range report.Insights {
		if strings.Contains(in, "internally stored metrics only") {
			degraded = true
		}
	}
	assert.True(t, degraded, "expected a degraded-mode insight, got %v", report.Insights)

	// The model call still happened and was logged.
	require.Len(t, rec.Invocations, 1)
	assert.Equal(t, core.OutcomeSuccess, rec.Invocations[0].Outcome)
}

func TestAnalyze_ModelFailurePropagates(t *testing.T) {
	summary := testutil.NewSummaryBuilder().Build()
	store := metrics.NewInMemoryStore()
	llm := model.NewMockModel().SetFallback("not json")
	analyst := NewAnalyst(llm, store, analytics.NewStaticSource(summary))
	rec := &testutil.ListRecorder{}

	_, err := analyst.Analyze(context.Background(), rec, core.BaselineConfig(core.AgentClassAnalyst), "cycle-1")

	assert.Error(t, err)
	require.Len(t, rec.Invocations, 1)
}
