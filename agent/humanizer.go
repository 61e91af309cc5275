package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

const humanizerSystemPrompt = `You are the humanizing editor of an editorial
team. Rewrite the article body you are given so it reads like a person wrote
it: vary sentence length, cut filler, keep the substance and the subheading
structure intact. Return only the rewritten Markdown body, no preamble.`

// Humanizer rewrites the draft body for tone and flow. It is the free-form
// stage of the pipeline: its artifact is the revised body text, carried into
// the draft unchanged in title and description.
type Humanizer struct {
	BaseAgent
}

// NewHumanizer creates the tone-editing agent.
func NewHumanizer(llm model.Model, optFns ...func(o *Options)) *Humanizer {
	return &Humanizer{BaseAgent: NewBaseAgent(core.AgentClassHumanizer, llm, optFns...)}
}

// Refine rewrites the draft body under the cycle's config snapshot. With
// reduceHype set (an Analyst override for low engagement) the rewrite also
// strips superlatives and urgency framing.
func (h *Humanizer) Refine(ctx context.Context, rec core.InvocationRecorder, cfg core.AgentConfig, draft Draft) (Draft, error) {
	body, err := h.ProduceText(
		ctx, rec,
		humanizerSystemPrompt,
		h.buildUserPrompt(cfg, draft),
	)
	if err != nil {
		return Draft{}, err
	}
	if body == "" {
		return Draft{}, fmt.Errorf("agent %s: %w: empty rewrite", h.Name(), core.ErrSchemaValidation)
	}

	draft.Body = body
	return draft, nil
}

func (h *Humanizer) buildUserPrompt(cfg core.AgentConfig, draft Draft) string {
	warmth := cfg.Float(core.ConfigKeyToneWarmth, 0.6)
	prompt := fmt.Sprintf("Tone warmth (0..1): %.2f\n", warmth)
	if cfg.Bool(core.ConfigKeyReduceHype, false) {
		prompt += "Strip hype: no superlatives, no urgency framing, no exclamation marks.\n"
	}
	return prompt + "\nArticle body:\n\n" + draft.Body
}
