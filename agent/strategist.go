package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

const strategistSystemPrompt = `You are the content strategist of an editorial team.
Given a topic, the analyst's latest findings and your configuration, design a
content brief the writer can execute. Respond with a single JSON object of
the form {"topic": "...", "angle": "...", "tier": "quick|standard|deep",
"hook": "question|statistic|story|contrarian",
"format": "listicle|how_to|analysis|narrative", "keywords": ["..."],
"outline": ["..."], "rationale": "..."} and nothing else.`

// Brief is the Strategist's structured artifact: the plan the Writer
// executes for one article.
type Brief struct {
	Topic     string           `json:"topic"`
	Angle     string           `json:"angle"`
	Tier      core.ContentTier `json:"tier"`
	Hook      core.HookType    `json:"hook"`
	Format    core.FormatType  `json:"format"`
	Keywords  []string         `json:"keywords"`
	Outline   []string         `json:"outline"`
	Rationale string           `json:"rationale"`
}

// Validate implements Validatable. Enum fields are normalized afterwards, so
// only the load-bearing free-text structure is checked here.
func (b Brief) Validate() error {
	if b.Topic == "" {
		return fmt.Errorf("brief requires a topic")
	}
	if b.Angle == "" {
		return fmt.Errorf("brief requires an angle")
	}
	if len(b.Outline) == 0 {
		return fmt.Errorf("brief requires at least one outline beat")
	}
	return nil
}

// Strategist turns the AnalystReport (or baseline defaults when none exists)
// into a per-article content brief.
type Strategist struct {
	BaseAgent
}

// NewStrategist creates the inner pipeline's first stage agent.
func NewStrategist(llm model.Model, optFns ...func(o *Options)) *Strategist {
	return &Strategist{BaseAgent: NewBaseAgent(core.AgentClassStrategist, llm, optFns...)}
}

// Plan produces the brief for one topic. A nil report is a first-ever cycle
// or a failed analysis phase; baseline behavior is fully defined without it.
func (s *Strategist) Plan(ctx context.Context, rec core.InvocationRecorder, cfg core.AgentConfig, report *core.AnalystReport, topic string) (Brief, error) {
	brief, err := ProduceStructured[Brief](
		ctx, &s.BaseAgent, rec,
		strategistSystemPrompt,
		s.buildUserPrompt(cfg, report, topic),
	)
	if err != nil {
		return Brief{}, err
	}
	return s.normalize(brief, cfg, report, topic), nil
}

func (s *Strategist) buildUserPrompt(cfg core.AgentConfig, report *core.AnalystReport, topic string) string {
	assertiveness := cfg.Float(core.ConfigKeyAssertiveness, 0.5)
	prompt := fmt.Sprintf("Topic: %s\nAssertiveness (0..1): %.2f\n", topic, assertiveness)

	if report == nil {
		tier := cfg.String(core.ConfigKeyPreferredTier, string(core.TierStandard))
		return prompt + fmt.Sprintf("No analyst report is available; plan a %s-tier piece on baseline judgment.", tier)
	}

	findings, _ := json.Marshal(struct {
		Tier         core.ContentTier    `json:"recommendedTier"`
		Hook         core.HookType       `json:"recommendedHook"`
		Format       core.FormatType     `json:"recommendedFormat"`
		Trend        core.TrendDirection `json:"trend"`
		Insights     []string            `json:"insights"`
		BestStrategy string              `json:"bestStrategy"`
	}{
		report.RecommendedTier, report.RecommendedHook, report.RecommendedFormat,
		report.Trend, report.Insights, report.BestStrategy,
	})
	return prompt + fmt.Sprintf("Analyst findings: %s\nFollow the recommendations unless the topic clearly demands otherwise.", findings)
}

// normalize fills or corrects enum fields the model left empty or invented,
// preferring report recommendations, then configured defaults.
func (s *Strategist) normalize(b Brief, cfg core.AgentConfig, report *core.AnalystReport, topic string) Brief {
	if b.Topic == "" {
		b.Topic = topic
	}

	switch b.Tier {
	case core.TierQuick, core.TierStandard, core.TierDeep:
	default:
		if report != nil {
			b.Tier = report.RecommendedTier
		} else {
			b.Tier = core.ContentTier(cfg.String(core.ConfigKeyPreferredTier, string(core.TierStandard)))
		}
	}

	switch b.Hook {
	case core.HookQuestion, core.HookStatistic, core.HookStory, core.HookContrarian:
	default:
		b.Hook = core.HookStory
		if report != nil {
			b.Hook = report.RecommendedHook
		}
	}

	switch b.Format {
	case core.FormatListicle, core.FormatHowTo, core.FormatAnalysis, core.FormatNarrative:
	default:
		b.Format = core.FormatAnalysis
		if report != nil {
			b.Format = report.RecommendedFormat
		}
	}

	return b
}
