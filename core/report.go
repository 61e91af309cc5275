package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentTier grades the recommended depth of the next cycle's content.
type ContentTier string

const (
	// TierQuick is short-form, scannable content.
	TierQuick ContentTier = "quick"
	// TierStandard is the default mid-length article.
	TierStandard ContentTier = "standard"
	// TierDeep is long-form, research-heavy content.
	TierDeep ContentTier = "deep"
)

// HookType is the recommended opening device for the next articles.
type HookType string

const (
	// HookQuestion opens with a reader-facing question.
	HookQuestion HookType = "question"
	// HookStatistic opens with a striking number.
	HookStatistic HookType = "statistic"
	// HookStory opens with a short narrative.
	HookStory HookType = "story"
	// HookContrarian opens against the conventional take.
	HookContrarian HookType = "contrarian"
)

// FormatType is the recommended structural format.
type FormatType string

const (
	// FormatListicle is an enumerated, scannable structure.
	FormatListicle FormatType = "listicle"
	// FormatHowTo is a step-by-step guide.
	FormatHowTo FormatType = "how_to"
	// FormatAnalysis is an argued long-read.
	FormatAnalysis FormatType = "analysis"
	// FormatNarrative is a story-driven piece.
	FormatNarrative FormatType = "narrative"
)

// TrendDirection summarizes recent performance against the older cohort.
type TrendDirection string

const (
	// TrendImproving means the recent cohort outperforms the older one.
	TrendImproving TrendDirection = "improving"
	// TrendDeclining means the recent cohort underperforms.
	TrendDeclining TrendDirection = "declining"
	// TrendStable means no meaningful movement either way.
	TrendStable TrendDirection = "stable"
)

// AgentOverride targets one downstream agent with a set of tunable changes
// and the reasoning behind them. Keys must be a subset of the target class's
// recognized tunables; the engine rejects (logs, does not apply) unknown
// keys rather than silently storing them.
type AgentOverride struct {
	Target        AgentClass        `json:"target"`
	Changes       map[ConfigKey]any `json:"changes"`
	Justification string            `json:"justification"`
}

// AnalystReport is the structured artifact the Analyst produces once per
// cycle. It is constructed from the Analyst's validated output, sealed into
// the cycle store, consumed exactly once by the engine at the start of the
// next cycle, and never mutated after creation.
type AnalystReport struct {
	ID        string    `json:"id"`
	CycleID   string    `json:"cycle_id"`
	CreatedAt time.Time `json:"created_at"`

	RecommendedTier   ContentTier    `json:"recommended_tier"`
	RecommendedHook   HookType       `json:"recommended_hook"`
	RecommendedFormat FormatType     `json:"recommended_format"`
	Insights          []string       `json:"insights"`
	BestStrategy      string         `json:"best_strategy"`
	Trend             TrendDirection `json:"trend"`
	// Degraded marks a report produced without the external analytics
	// source, from internally stored metrics only.
	Degraded  bool            `json:"degraded,omitempty"`
	Overrides []AgentOverride `json:"overrides,omitempty"`
}

// NewAnalystReport stamps identity and creation time onto a report body.
func NewAnalystReport(cycleID string) AnalystReport {
	return AnalystReport{
		ID:        uuid.NewString(),
		CycleID:   cycleID,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the structural invariants of a report: 3-6 insights,
// known enum values and non-empty strategy summary.
func (r AnalystReport) Validate() error {
	if len(r.Insights) < 3 || len(r.Insights) > 6 {
		return fmt.Errorf("report requires 3-6 insights, got %d", len(r.Insights))
	}
	switch r.RecommendedTier {
	case TierQuick, TierStandard, TierDeep:
	default:
		return fmt.Errorf("unknown content tier %q", r.RecommendedTier)
	}
	switch r.RecommendedHook {
	case HookQuestion, HookStatistic, HookStory, HookContrarian:
	default:
		return fmt.Errorf("unknown hook type %q", r.RecommendedHook)
	}
	switch r.RecommendedFormat {
	case FormatListicle, FormatHowTo, FormatAnalysis, FormatNarrative:
	default:
		return fmt.Errorf("unknown format type %q", r.RecommendedFormat)
	}
	switch r.Trend {
	case TrendImproving, TrendDeclining, TrendStable:
	default:
		return fmt.Errorf("unknown trend direction %q", r.Trend)
	}
	if r.BestStrategy == "" {
		return fmt.Errorf("best-performing-strategy summary is empty")
	}
	return nil
}

// CycleStore persists sealed cycle artifacts. The engine loads the most
// recent sealed AnalystReport at cycle start to derive this cycle's
// overrides, and archives runs and reports as they seal.
type CycleStore interface {
	SaveRun(run *PipelineRun) error
	SaveReport(report AnalystReport) error
	// LatestReport returns the most recent sealed report, or false when no
	// cycle has produced one yet (first-ever cycle).
	LatestReport() (AnalystReport, bool)
}
