package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

const writerSystemPrompt = `You are the writer of an editorial team. Execute
the brief you are given exactly: angle, outline order, format and hook type.
Respond with a single JSON object of the form {"title": "...",
"description": "...", "body": "...", "wordCount": 0} and nothing else. The
body is Markdown with subheadings.`

// Draft is the Writer's structured artifact, refined by the Humanizer and
// finalized by the SEO stage.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	WordCount   int    `json:"wordCount"`
}

// Validate implements Validatable.
func (d Draft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("draft requires a title")
	}
	if d.Body == "" {
		return fmt.Errorf("draft requires a body")
	}
	return nil
}

// Writer produces the article draft from the Strategist's brief. Its
// word-count ceiling is the tunable the Analyst most commonly overrides:
// lowerWordCount shrinks the effective ceiling for one cycle.
type Writer struct {
	BaseAgent
}

// NewWriter creates the drafting agent. It carries the largest structured
// output of the pipeline and therefore the largest timeout budget.
func NewWriter(llm model.Model, optFns ...func(o *Options)) *Writer {
	return &Writer{BaseAgent: NewBaseAgent(core.AgentClassWriter, llm, optFns...)}
}

// EffectiveCeiling resolves the word-count ceiling for a cycle config:
// the configured ceiling, reduced to 60% when lowerWordCount is set.
func (w *Writer) EffectiveCeiling(cfg core.AgentConfig) int {
	ceiling := cfg.Int(core.ConfigKeyWordCountCeiling, 1800)
	if cfg.Bool(core.ConfigKeyLowerWordCount, false) {
		ceiling = ceiling * 3 / 5
	}
	return ceiling
}

// Write drafts one article against the brief and the cycle's config snapshot.
func (w *Writer) Write(ctx context.Context, rec core.InvocationRecorder, cfg core.AgentConfig, brief Brief) (Draft, error) {
	return ProduceStructured[Draft](
		ctx, &w.BaseAgent, rec,
		writerSystemPrompt,
		w.buildUserPrompt(cfg, brief),
	)
}

func (w *Writer) buildUserPrompt(cfg core.AgentConfig, brief Brief) string {
	ceiling := w.EffectiveCeiling(cfg)
	interval := cfg.Int(core.ConfigKeySubheadingInterval, 300)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\nAngle: %s\nTier: %s\nHook: %s\nFormat: %s\n", brief.Topic, brief.Angle, brief.Tier, brief.Hook, brief.Format)
	if len(brief.Keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords to work in naturally: %s\n", strings.Join(brief.Keywords, ", "))
	}
	if len(brief.Outline) > 0 {
		fmt.Fprintf(&sb, "Outline:\n")
		for i, beat := range brief.Outline {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, beat)
		}
	}
	fmt.Fprintf(&sb, "Hard ceiling: %d words. Place a subheading roughly every %d words.\n", ceiling, interval)
	return sb.String()
}
