package engine

import (
	"context"
	"testing"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/cycle"
	"github.com/hupe1980/editorialmesh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedReport archives a valid prior-cycle report carrying the given
// overrides, so the next RunCycle consumes them at cycle start.
func seedReport(t *testing.T, cycles *cycle.InMemoryStore, overrides ...core.AgentOverride) {
	t.Helper()

	report := core.NewAnalystReport("prior-cycle")
	report.RecommendedTier = core.TierStandard
	report.RecommendedHook = core.HookStory
	report.RecommendedFormat = core.FormatAnalysis
	report.Trend = core.TrendStable
	report.Insights = []string{
		"Scroll depth fell below half the article on average.",
		"Listicles outperformed analyses this window.",
		"Organic search drove the most engaged sessions.",
	}
	report.BestStrategy = "listicle posts targeting organic search"
	report.Overrides = overrides

	require.NoError(t, cycles.SaveReport(report))
}

func TestRunCycle_AppliesPriorCycleOverrides(t *testing.T) {
	eng, cycles, _, _ := newTestEngine(t, testutil.ScriptedPipelineModel())
	seedReport(t, cycles, core.AgentOverride{
		Target:        core.AgentClassWriter,
		Changes:       map[core.ConfigKey]any{core.ConfigKeyLowerWordCount: true},
		Justification: "average scroll depth below 50%",
	})

	run, err := eng.RunCycle(context.Background(), CycleInput{Topics: []string{"t"}})

	require.NoError(t, err)
	assert.Empty(t, run.RejectedOverrides)

	writerCalls := run.InvocationsFor(core.StageWriter)
	require.Len(t, writerCalls, 1)
	assert.Contains(t, writerCalls[0].UserPrompt, "Hard ceiling: 1080 words")

	// The override touched only its target's snapshot.
	humanizerCalls := run.InvocationsFor(core.StageHumanizer)
	require.Len(t, humanizerCalls, 1)
	assert.NotContains(t, humanizerCalls[0].UserPrompt, "Strip hype")
}

func TestRunCycle_OverridesLiveForOneCycle(t *testing.T) {
	eng, cycles, _, _ := newTestEngine(t, testutil.ScriptedPipelineModel())
	seedReport(t, cycles, core.AgentOverride{
		Target:  core.AgentClassWriter,
		Changes: map[core.ConfigKey]any{core.ConfigKeyLowerWordCount: true},
	})

	first, err := eng.RunCycle(context.Background(), CycleInput{Topics: []string{"t"}})
	require.NoError(t, err)
	assert.Contains(t, first.InvocationsFor(core.StageWriter)[0].UserPrompt, "Hard ceiling: 1080 words")

	// The healthy window's fresh report carries no overrides, so the next
	// cycle is back on the untouched baseline.
	second, err := eng.RunCycle(context.Background(), CycleInput{Topics: []string{"t"}})
	require.NoError(t, err)
	assert.Contains(t, second.InvocationsFor(core.StageWriter)[0].UserPrompt, "Hard ceiling: 1800 words")
}

func TestRunCycle_RejectsUnrecognizedOverrideKey(t *testing.T) {
	eng, cycles, _, _ := newTestEngine(t, testutil.ScriptedPipelineModel())
	seedReport(t, cycles, core.AgentOverride{
		Target: core.AgentClassWriter,
		Changes: map[core.ConfigKey]any{
			core.ConfigKeyLowerWordCount: true,
			core.ConfigKeyToneWarmth:     0.9,
		},
	})

	run, err := eng.RunCycle(context.Background(), CycleInput{Topics: []string{"t"}})

	require.NoError(t, err)

	// Rejection is per key: the recognized change still lands.
	require.Len(t, run.RejectedOverrides, 1)
	assert.Equal(t, core.AgentClassWriter, run.RejectedOverrides[0].Target)
	assert.Equal(t, core.ConfigKeyToneWarmth, run.RejectedOverrides[0].Key)

	writerCalls := run.InvocationsFor(core.StageWriter)
	require.Len(t, writerCalls, 1)
	assert.Contains(t, writerCalls[0].UserPrompt, "Hard ceiling: 1080 words")
}

func TestRunCycle_RejectsUnknownOverrideTarget(t *testing.T) {
	eng, cycles, _, _ := newTestEngine(t, testutil.ScriptedPipelineModel())
	seedReport(t, cycles, core.AgentOverride{
		Target:  core.AgentClass("editor-in-chief"),
		Changes: map[core.ConfigKey]any{core.ConfigKeyReduceHype: true},
	})

	run, err := eng.RunCycle(context.Background(), CycleInput{Topics: []string{"t"}})

	require.NoError(t, err)
	require.Len(t, run.RejectedOverrides, 1)
	assert.Contains(t, run.RejectedOverrides[0].Reason, "unknown target")

	writerCalls := run.InvocationsFor(core.StageWriter)
	require.Len(t, writerCalls, 1)
	assert.Contains(t, writerCalls[0].UserPrompt, "Hard ceiling: 1800 words")
}
