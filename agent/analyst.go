package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

const analystSystemPrompt = `You are the performance analyst of an editorial team.
You receive aggregated article metrics and a behavioral analytics summary and
you explain what is working, what is not, and which strategy performed best.
Respond with a single JSON object of the form
{"insights": ["..."], "bestStrategy": "..."} and nothing else. Keep each
insight to one sentence grounded in the numbers you were given.`

// Analyst fuses internally stored performance metrics with the external
// analytics summary into one AnalystReport per cycle. The recommendation and
// override rules are deterministic over the metric inputs; the model call
// contributes the narrative insight and best-strategy text.
//
// When the external analytics source is unavailable the Analyst degrades to
// internal metrics only: it still produces a valid report, records the
// degradation in its insight text and never fails the cycle for this reason
// alone.
type Analyst struct {
	BaseAgent
	metrics   core.MetricsStore
	analytics core.AnalyticsSource
}

// NewAnalyst creates the once-per-cycle analysis agent.
func NewAnalyst(llm model.Model, metrics core.MetricsStore, analytics core.AnalyticsSource, optFns ...func(o *Options)) *Analyst {
	return &Analyst{
		BaseAgent: NewBaseAgent(core.AgentClassAnalyst, llm, optFns...),
		metrics:   metrics,
		analytics: analytics,
	}
}

// analystNarrative is the schema of the Analyst's structured model output.
type analystNarrative struct {
	Insights     []string `json:"insights"`
	BestStrategy string   `json:"bestStrategy"`
}

// Validate implements Validatable.
func (n analystNarrative) Validate() error {
	if len(n.Insights) == 0 {
		return fmt.Errorf("narrative requires at least one insight")
	}
	if n.BestStrategy == "" {
		return fmt.Errorf("narrative requires a best-strategy summary")
	}
	return nil
}

// Analyze produces the cycle's AnalystReport from the previous cycle's
// stored metrics and the analytics window configured by lookbackDays.
func (a *Analyst) Analyze(ctx context.Context, rec core.InvocationRecorder, cfg core.AgentConfig, cycleID string) (core.AnalystReport, error) {
	lookback := cfg.Int(core.ConfigKeyLookbackDays, 28)

	aggregates, err := a.metrics.ArticleAggregates(ctx)
	if err != nil {
		return core.AnalystReport{}, fmt.Errorf("reading article aggregates: %w", err)
	}
	trend, err := a.metrics.TrendComparison(ctx)
	if err != nil {
		return core.AnalystReport{}, fmt.Errorf("reading trend comparison: %w", err)
	}

	summary, available := a.analytics.Summary(ctx, lookback)
	verdict := assess(summary, available, trend)

	narrative, err := ProduceStructured[analystNarrative](
		ctx, &a.BaseAgent, rec,
		analystSystemPrompt,
		a.buildUserPrompt(aggregates, summary, available, trend),
	)
	if err != nil {
		return core.AnalystReport{}, err
	}

	report := core.NewAnalystReport(cycleID)
	report.RecommendedTier = verdict.tier
	report.RecommendedHook = verdict.hook
	report.RecommendedFormat = verdict.format
	report.Trend = trend.Direction
	if report.Trend == "" {
		report.Trend = core.TrendStable
	}
	report.Degraded = !available
	report.Overrides = verdict.overrides
	report.BestStrategy = narrative.BestStrategy
	report.Insights = mergeInsights(verdict.insights, narrative.Insights, aggregates)

	if err := report.Validate(); err != nil {
		return core.AnalystReport{}, fmt.Errorf("agent %s: %w: %v", a.Name(), core.ErrSchemaValidation, err)
	}
	return report, nil
}

func (a *Analyst) buildUserPrompt(aggregates []core.ArticleAggregate, summary core.AnalyticsSummary, available bool, trend core.TrendComparison) string {
	internal, _ := json.Marshal(aggregates)
	trendJSON, _ := json.Marshal(trend)

	if !available {
		return fmt.Sprintf(
			"External analytics are UNAVAILABLE for this cycle; work from internal metrics only and say so.\n\nInternal article metrics: %s\n\nTrend comparison: %s",
			internal, trendJSON,
		)
	}

	external, _ := json.Marshal(summary)
	return fmt.Sprintf(
		"Internal article metrics: %s\n\nTrend comparison: %s\n\nBehavioral analytics summary (last %d days): %s",
		internal, trendJSON, summary.LookbackDays, external,
	)
}

// verdict is the deterministic half of the report: recommendations, rule
// insights and overrides derived from the metric inputs.
type verdict struct {
	tier      core.ContentTier
	hook      core.HookType
	format    core.FormatType
	insights  []string
	overrides []core.AgentOverride
}

// assess encodes the analysis policy rules:
//   - engagement below 40% biases toward shorter-form content and adds a
//     Humanizer override reducing hype framing
//   - average scroll depth below 50% lowers the Writer word-count ceiling
//   - strong 50% checkpoint with a weak 90% checkpoint is a structural
//     (subheading density) signal, not a reason to shorten
//   - scroll depth strong through 90% emits no overrides at all
func assess(summary core.AnalyticsSummary, available bool, trend core.TrendComparison) verdict {
	v := verdict{tier: core.TierStandard, hook: core.HookStory, format: core.FormatAnalysis}

	if !available {
		v.insights = append(v.insights,
			"External analytics source unavailable; this analysis is degraded to internally stored metrics only.")
		return v
	}

	sessions := summary.Totals.Sessions
	engagement := summary.Engagement.EngagementRate
	avgScroll := summary.ScrollDepth.WeightedAverage
	reach50 := summary.ScrollDepth.ReachRate(50, sessions)
	reach90 := summary.ScrollDepth.ReachRate(90, sessions)

	if engagement < 40 {
		v.tier = core.TierQuick
		v.hook = core.HookQuestion
		v.insights = append(v.insights, fmt.Sprintf(
			"Engagement rate %.1f%% is below the 40%% floor; biasing toward shorter-form content with reduced hype framing.", engagement))
		v.overrides = append(v.overrides, core.AgentOverride{
			Target:        core.AgentClassHumanizer,
			Changes:       map[core.ConfigKey]any{core.ConfigKeyReduceHype: true},
			Justification: fmt.Sprintf("engagement rate %.1f%% below 40%%", engagement),
		})
	}

	switch {
	case avgScroll < 50:
		v.tier = core.TierQuick
		v.format = core.FormatListicle
		v.insights = append(v.insights, fmt.Sprintf(
			"Average scroll depth %.1f%% is below 50%%; lowering the Writer word-count ceiling for this cycle.", avgScroll))
		v.overrides = append(v.overrides, core.AgentOverride{
			Target:        core.AgentClassWriter,
			Changes:       map[core.ConfigKey]any{core.ConfigKeyLowerWordCount: true},
			Justification: fmt.Sprintf("average scroll depth %.1f%% below 50%%", avgScroll),
		})
	case reach50 >= 60 && reach90 < 30:
		// Mid-article drop-off: readers commit, then leave. A structural fix
		// (denser subheadings) beats shortening here, so no Writer override.
		v.format = core.FormatListicle
		v.insights = append(v.insights, fmt.Sprintf(
			"Readers hold through the 50%% checkpoint (%.1f%%) but drop before 90%% (%.1f%%); increase subheading density rather than shortening.", reach50, reach90))
	}

	if reach90 >= 50 && len(v.overrides) == 0 {
		v.insights = append(v.insights, fmt.Sprintf(
			"Scroll depth holds through the 90%% checkpoint (%.1f%%); no changes needed.", reach90))
		if trend.Direction == core.TrendImproving && engagement >= 60 {
			v.tier = core.TierDeep
		}
	}

	if engagement >= 40 {
		for _, c := range summary.Conversions {
			if c.Count > 0 {
				v.hook = core.HookStatistic
				break
			}
		}
	}

	return v
}

// mergeInsights combines the deterministic rule insights with the model's
// narrative ones, deterministic first, clamped to the 3-6 range the report
// schema requires. Padding lines are derived from the data so a degraded or
// terse narrative still yields a valid report.
func mergeInsights(ruled, narrative []string, aggregates []core.ArticleAggregate) []string {
	insights := append([]string{}, ruled...)
	for _, in := range narrative {
		if len(insights) >= 6 {
			break
		}
		if in != "" {
			insights = append(insights, in)
		}
	}
	if len(insights) < 3 {
		insights = append(insights, fmt.Sprintf("Internal metrics window covers %d articles.", len(aggregates)))
	}
	if len(insights) < 3 {
		var conversions int
		for _, a := range aggregates {
			conversions += a.Conversions
		}
		insights = append(insights, fmt.Sprintf("Tracked articles account for %d conversions in the window.", conversions))
	}
	if len(insights) < 3 {
		insights = append(insights, "Insufficient signal this window; recommendations fall back to baselines.")
	}
	return insights
}
