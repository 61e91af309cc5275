package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/internal/testutil"
	"github.com/hupe1980/editorialmesh/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategistPlan_FollowsReportRecommendations(t *testing.T) {
	strategist := NewStrategist(testutil.ScriptedPipelineModel())
	rec := &testutil.ListRecorder{}

	report := core.NewAnalystReport("cycle-1")
	report.RecommendedTier = core.TierQuick
	report.RecommendedHook = core.HookQuestion
	report.RecommendedFormat = core.FormatListicle

	brief, err := strategist.Plan(context.Background(), rec, core.BaselineConfig(core.AgentClassStrategist), &report, "testing in production")

	require.NoError(t, err)
	require.NoError(t, brief.Validate())
	assert.Equal(t, core.TierStandard, brief.Tier)

	require.Len(t, rec.Invocations, 1)
	assert.Contains(t, rec.Invocations[0].UserPrompt, "Analyst findings:")
	assert.Contains(t, rec.Invocations[0].UserPrompt, "Assertiveness")
}

func TestStrategistPlan_NormalizesInventedEnums(t *testing.T) {
	llm := model.NewMockModel().AddResponse("Assertiveness",
		`{"topic":"t","angle":"a","tier":"epic","hook":"clickbait","format":"thread","outline":["one"]}`)
	strategist := NewStrategist(llm)
	rec := &testutil.ListRecorder{}

	report := core.NewAnalystReport("cycle-1")
	report.RecommendedTier = core.TierDeep
	report.RecommendedHook = core.HookContrarian
	report.RecommendedFormat = core.FormatNarrative

	brief, err := strategist.Plan(context.Background(), rec, core.BaselineConfig(core.AgentClassStrategist), &report, "t")

	require.NoError(t, err)
	assert.Equal(t, core.TierDeep, brief.Tier)
	assert.Equal(t, core.HookContrarian, brief.Hook)
	assert.Equal(t, core.FormatNarrative, brief.Format)
}

func TestStrategistPlan_NilReportUsesBaselines(t *testing.T) {
	llm := model.NewMockModel().AddResponse("Assertiveness",
		`{"topic":"t","angle":"a","outline":["one"]}`)
	strategist := NewStrategist(llm)
	rec := &testutil.ListRecorder{}

	brief, err := strategist.Plan(context.Background(), rec, core.BaselineConfig(core.AgentClassStrategist), nil, "t")

	require.NoError(t, err)
	assert.Equal(t, core.TierStandard, brief.Tier)
	assert.Equal(t, core.HookStory, brief.Hook)
	assert.Equal(t, core.FormatAnalysis, brief.Format)
	assert.Contains(t, rec.Invocations[0].UserPrompt, "No analyst report is available")
}

func TestWriterEffectiveCeiling(t *testing.T) {
	writer := NewWriter(model.NewMockModel())

	cfg := core.BaselineConfig(core.AgentClassWriter)
	assert.Equal(t, 1800, writer.EffectiveCeiling(cfg))

	cfg.Set(core.ConfigKeyLowerWordCount, true)
	assert.Equal(t, 1080, writer.EffectiveCeiling(cfg))

	cfg.Set(core.ConfigKeyWordCountCeiling, 1000)
	assert.Equal(t, 600, writer.EffectiveCeiling(cfg))
}

func TestWriterWrite_PromptCarriesCeilingAndOutline(t *testing.T) {
	writer := NewWriter(testutil.ScriptedPipelineModel())
	rec := &testutil.ListRecorder{}

	cfg := core.BaselineConfig(core.AgentClassWriter)
	cfg.Set(core.ConfigKeyLowerWordCount, true)

	brief := Brief{
		Topic:   "t",
		Angle:   "a",
		Tier:    core.TierStandard,
		Hook:    core.HookStory,
		Format:  core.FormatAnalysis,
		Outline: []string{"the setup", "the payoff"},
	}
	draft, err := writer.Write(context.Background(), rec, cfg, brief)

	require.NoError(t, err)
	require.NoError(t, draft.Validate())

	require.Len(t, rec.Invocations, 1)
	prompt := rec.Invocations[0].UserPrompt
	assert.Contains(t, prompt, "Hard ceiling: 1080 words")
	assert.Contains(t, prompt, "1. the setup")
	assert.Contains(t, prompt, "2. the payoff")
}

func TestHumanizerRefine_KeepsTitleRewritesBody(t *testing.T) {
	humanizer := NewHumanizer(testutil.ScriptedPipelineModel())
	rec := &testutil.ListRecorder{}

	in := Draft{Title: "Original", Description: "desc", Body: "## Heading\n\nStiff text.", WordCount: 120}
	out, err := humanizer.Refine(context.Background(), rec, core.BaselineConfig(core.AgentClassHumanizer), in)

	require.NoError(t, err)
	assert.Equal(t, "Original", out.Title)
	assert.Equal(t, "desc", out.Description)
	assert.Equal(t, testutil.HumanizedBody, out.Body)
}

func TestHumanizerRefine_ReduceHypeDirective(t *testing.T) {
	humanizer := NewHumanizer(testutil.ScriptedPipelineModel())
	rec := &testutil.ListRecorder{}

	cfg := core.BaselineConfig(core.AgentClassHumanizer)

	_, err := humanizer.Refine(context.Background(), rec, cfg, Draft{Title: "T", Body: "b"})
	require.NoError(t, err)
	assert.NotContains(t, rec.Invocations[0].UserPrompt, "Strip hype")

	cfg.Set(core.ConfigKeyReduceHype, true)
	_, err = humanizer.Refine(context.Background(), rec, cfg, Draft{Title: "T", Body: "b"})
	require.NoError(t, err)
	assert.Contains(t, rec.Invocations[1].UserPrompt, "Strip hype")
}

func TestHumanizerRefine_EmptyRewriteIsSchemaError(t *testing.T) {
	llm := model.NewMockModel().SetFallback("")
	humanizer := NewHumanizer(llm)
	rec := &testutil.ListRecorder{}

	_, err := humanizer.Refine(context.Background(), rec, core.BaselineConfig(core.AgentClassHumanizer), Draft{Title: "T", Body: "b"})

	assert.ErrorIs(t, err, core.ErrSchemaValidation)
}

func TestSEOOptimize_AssemblesArticle(t *testing.T) {
	seo := NewSEO(testutil.ScriptedPipelineModel())
	rec := &testutil.ListRecorder{}

	brief := Brief{
		Topic:  "t",
		Angle:  "a fresh angle",
		Tier:   core.TierStandard,
		Hook:   core.HookStory,
		Format: core.FormatAnalysis,
	}
	draft := Draft{Title: "A Fresh Angle", Description: "desc", Body: "body"}

	article, err := seo.Optimize(context.Background(), rec, core.BaselineConfig(core.AgentClassSEO), brief, draft)

	require.NoError(t, err)
	assert.NotEmpty(t, article.ID)
	assert.Equal(t, "a-fresh-angle-that-matters", article.Slug)
	assert.Equal(t, core.TierStandard, article.Tier)
	assert.Equal(t, "a fresh angle", article.Metadata["angle"])
	assert.Equal(t, "0.015", article.Metadata["keyword_density_target"])
	assert.False(t, article.CreatedAt.IsZero())

	require.Len(t, rec.Invocations, 1)
	assert.Contains(t, rec.Invocations[0].UserPrompt, "Target keyword density: 0.015")
}

func TestSEOOptimize_SlugFallback(t *testing.T) {
	llm := model.NewMockModel().AddResponse("Target keyword density",
		`{"title":"Hello, World! 2024","description":"d","slug":"","keywords":[],"body":"b"}`)
	seo := NewSEO(llm)
	rec := &testutil.ListRecorder{}

	article, err := seo.Optimize(context.Background(), rec, core.BaselineConfig(core.AgentClassSEO), Brief{Topic: "t", Angle: "a"}, Draft{Title: "T", Body: "b"})

	require.NoError(t, err)
	assert.Equal(t, "hello-world-2024", article.Slug)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"100% Real", "100-real"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestStageMarkersDisjoint(t *testing.T) {
	// Each stage prompt must match exactly its own canned response.
	llm := testutil.ScriptedPipelineModel()
	resp, err := llm.Complete(context.Background(), model.Request{User: "Topic: x\nAssertiveness (0..1): 0.50\n"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Text, "{"))
	assert.Contains(t, resp.Text, `"angle"`)
}
