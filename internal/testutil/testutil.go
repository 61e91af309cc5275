// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing analytics summaries, scripting
// pipeline-shaped mock models and capturing progress events. These helpers
// are intentionally minimal and avoid adding third-party dependencies. They
// are not intended for production usage.
package testutil

import (
	"sync"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

// SummaryBuilder provides a fluent helper for constructing analytics
// summaries in tests. Checkpoint reach values are given as percentages of
// sessions; sensible defaults describe a healthy window.
//
// Example:
//
//	sum := NewSummaryBuilder().Sessions(200).Engagement(55).AvgScroll(62).Reach(50, 60).Build()
type SummaryBuilder struct {
	sessions    int
	engagement  float64
	avgScroll   float64
	reach       map[int]float64
	conversions []core.ConversionEvent
}

// NewSummaryBuilder creates a builder describing a healthy analytics window.
func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{
		sessions:   100,
		engagement: 55,
		avgScroll:  60,
		reach:      map[int]float64{25: 85, 50: 60, 75: 45, 90: 30},
	}
}

// Sessions sets the window's session total (chainable).
func (b *SummaryBuilder) Sessions(n int) *SummaryBuilder { b.sessions = n; return b }

// Engagement sets the engagement rate percentage (chainable).
func (b *SummaryBuilder) Engagement(rate float64) *SummaryBuilder { b.engagement = rate; return b }

// AvgScroll sets the weighted average scroll depth percentage (chainable).
func (b *SummaryBuilder) AvgScroll(pct float64) *SummaryBuilder { b.avgScroll = pct; return b }

// Reach sets the percentage of sessions reaching a checkpoint (chainable).
func (b *SummaryBuilder) Reach(checkpoint int, pct float64) *SummaryBuilder {
	b.reach[checkpoint] = pct
	return b
}

// Conversion appends a named conversion event (chainable).
func (b *SummaryBuilder) Conversion(name string, count int) *SummaryBuilder {
	b.conversions = append(b.conversions, core.ConversionEvent{Name: name, Count: count})
	return b
}

// Build assembles the summary.
func (b *SummaryBuilder) Build() core.AnalyticsSummary {
	count := func(cp int) int { return int(float64(b.sessions) * b.reach[cp] / 100) }
	return core.AnalyticsSummary{
		Totals: core.AnalyticsTotals{Sessions: b.sessions, Users: b.sessions, PageViews: b.sessions * 2},
		Engagement: core.EngagementMetrics{
			EngagedSessions:          int(float64(b.sessions) * b.engagement / 100),
			EngagementRate:           b.engagement,
			AvgEngagementTimeSeconds: 48,
			EventCountPerUser:        3.2,
		},
		ScrollDepth: core.ScrollDepthSummary{
			Reached25:       count(25),
			Reached50:       count(50),
			Reached75:       count(75),
			Reached90:       count(90),
			WeightedAverage: b.avgScroll,
		},
		Conversions: b.conversions,
	}
}

// Canned structured outputs matching each stage's schema.
const (
	// NarrativeJSON is a valid Analyst narrative payload.
	NarrativeJSON = `{"insights":["Listicles outperformed analyses this window.","Organic search drove the most engaged sessions."],"bestStrategy":"listicle posts targeting organic search"}`
	// BriefJSON is a valid Strategist brief payload.
	BriefJSON = `{"topic":"test topic","angle":"a fresh angle","tier":"standard","hook":"story","format":"analysis","keywords":["editorial","automation"],"outline":["the setup","the turn","the payoff"],"rationale":"matches the analyst findings"}`
	// DraftJSON is a valid Writer draft payload.
	DraftJSON = `{"title":"A Fresh Angle","description":"Why the fresh angle matters.","body":"## The setup\n\nBody text.\n\n## The turn\n\nMore body text.","wordCount":420}`
	// SEOJSON is a valid SEO finalization payload.
	SEOJSON = `{"title":"A Fresh Angle That Matters","description":"Why the fresh angle matters, explained.","slug":"a-fresh-angle-that-matters","keywords":["editorial","automation"],"body":"## The setup\n\nOptimized body text."}`
	// HumanizedBody is a plain-text Humanizer rewrite.
	HumanizedBody = "## The setup\n\nRewritten, human body text."
)

// ScriptedPipelineModel returns a MockModel preloaded with valid canned
// responses for every stage, matched on stage-specific prompt markers.
func ScriptedPipelineModel() *model.MockModel {
	return model.NewMockModel().
		AddResponse("Trend comparison", NarrativeJSON).
		AddResponse("Assertiveness", BriefJSON).
		AddResponse("Hard ceiling", DraftJSON).
		AddResponse("Tone warmth", HumanizedBody).
		AddResponse("Target keyword density", SEOJSON)
}

// ProgressRecorder captures progress events in emission order.
type ProgressRecorder struct {
	mu     sync.Mutex
	events []core.ProgressEvent
}

// Progress implements core.ProgressSink.
func (r *ProgressRecorder) Progress(event core.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the captured events in order.
func (r *ProgressRecorder) Events() []core.ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.ProgressEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ListRecorder collects invocations without a PipelineRun, for agent-level
// tests.
type ListRecorder struct {
	Invocations []core.AgentInvocation
}

// Record implements core.InvocationRecorder.
func (r *ListRecorder) Record(inv core.AgentInvocation) {
	r.Invocations = append(r.Invocations, inv)
}
