package core

import "context"

// ArticleAggregate is one article's internally stored performance record.
type ArticleAggregate struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Views       int     `json:"views"`
	BounceRate  float64 `json:"bounceRate"`
	Conversions int     `json:"conversions"`
}

// TrendComparison compares the recent cohort of articles against the older
// one. Direction is derived by the store; the Analyst reports it as-is.
type TrendComparison struct {
	RecentViews          int            `json:"recentViews"`
	OlderViews           int            `json:"olderViews"`
	RecentEngagementRate float64        `json:"recentEngagementRate"`
	OlderEngagementRate  float64        `json:"olderEngagementRate"`
	Direction            TrendDirection `json:"direction"`
}

// MetricsStore is the internal, read-only performance-metrics collaborator;
// consumed only by the Analyst.
type MetricsStore interface {
	ArticleAggregates(ctx context.Context) ([]ArticleAggregate, error)
	TrendComparison(ctx context.Context) (TrendComparison, error)
}
