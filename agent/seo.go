package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/hupe1980/editorialmesh/core"
	"github.com/hupe1980/editorialmesh/model"
)

const seoSystemPrompt = `You are the SEO editor of an editorial team. Polish
the article you are given for search without flattening its voice: optimized
title, meta description, URL slug and final keyword placement in the body.
Respond with a single JSON object of the form {"title": "...",
"description": "...", "slug": "...", "keywords": ["..."], "body": "..."} and
nothing else.`

// seoResult is the schema of the SEO stage's structured model output.
type seoResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Keywords    []string `json:"keywords"`
	Body        string   `json:"body"`
}

// Validate implements Validatable.
func (r seoResult) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("seo result requires a title")
	}
	if r.Body == "" {
		return fmt.Errorf("seo result requires a body")
	}
	return nil
}

// SEO finalizes the refined draft into the publishable Article artifact:
// the last inner stage, and the only one that assembles artifact metadata.
type SEO struct {
	BaseAgent
}

// NewSEO creates the finalizing agent.
func NewSEO(llm model.Model, optFns ...func(o *Options)) *SEO {
	return &SEO{BaseAgent: NewBaseAgent(core.AgentClassSEO, llm, optFns...)}
}

// Optimize produces the finalized article from the humanized draft. The
// returned artifact is well-formed only here; earlier stage payloads are
// diagnostics, never publishable.
func (s *SEO) Optimize(ctx context.Context, rec core.InvocationRecorder, cfg core.AgentConfig, brief Brief, draft Draft) (core.Article, error) {
	res, err := ProduceStructured[seoResult](
		ctx, &s.BaseAgent, rec,
		seoSystemPrompt,
		s.buildUserPrompt(cfg, brief, draft),
	)
	if err != nil {
		return core.Article{}, err
	}

	slug := res.Slug
	if slug == "" {
		slug = Slugify(res.Title)
	}
	density := cfg.Float(core.ConfigKeyKeywordDensity, 0.015)

	return core.Article{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       res.Title,
		Description: res.Description,
		Body:        res.Body,
		Tier:        brief.Tier,
		Hook:        brief.Hook,
		Format:      brief.Format,
		Keywords:    res.Keywords,
		Metadata: map[string]string{
			"keyword_density_target": fmt.Sprintf("%.3f", density),
			"angle":                  brief.Angle,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *SEO) buildUserPrompt(cfg core.AgentConfig, brief Brief, draft Draft) string {
	density := cfg.Float(core.ConfigKeyKeywordDensity, 0.015)
	maxTitle := cfg.Int(core.ConfigKeyMaxTitleLength, 60)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target keyword density: %.3f\nMax title length: %d characters\n", density, maxTitle)
	if len(brief.Keywords) > 0 {
		fmt.Fprintf(&sb, "Primary keywords: %s\n", strings.Join(brief.Keywords, ", "))
	}
	fmt.Fprintf(&sb, "\nWorking title: %s\nWorking description: %s\n\nBody:\n\n%s", draft.Title, draft.Description, draft.Body)
	return sb.String()
}

// Slugify lowercases s and collapses non-alphanumeric runs into single
// hyphens, the fallback when the model omits a slug.
func Slugify(s string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			sb.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(sb.String(), "-")
}
