package core

import "context"

// AnalyticsTotals are the window-wide traffic totals.
type AnalyticsTotals struct {
	Sessions  int `json:"sessions"`
	Users     int `json:"users"`
	PageViews int `json:"pageViews"`
}

// EngagementMetrics are the window-wide engagement aggregates. Rates are
// percentages (0-100).
type EngagementMetrics struct {
	EngagedSessions          int     `json:"engagedSessions"`
	EngagementRate           float64 `json:"engagementRate"`
	AvgEngagementTimeSeconds float64 `json:"avgEngagementTimeSeconds"`
	EventCountPerUser        float64 `json:"eventCountPerUser"`
}

// ScrollDepthSummary holds session counts that reached each depth checkpoint
// plus the weighted average depth as a percentage.
type ScrollDepthSummary struct {
	Reached25       int     `json:"reached25"`
	Reached50       int     `json:"reached50"`
	Reached75       int     `json:"reached75"`
	Reached90       int     `json:"reached90"`
	WeightedAverage float64 `json:"weightedAverage"`
}

// ReachRate returns the percentage of sessions that reached the given
// checkpoint (25, 50, 75 or 90). Zero sessions yields zero.
func (s ScrollDepthSummary) ReachRate(checkpoint, sessions int) float64 {
	if sessions <= 0 {
		return 0
	}
	var reached int
	switch checkpoint {
	case 25:
		reached = s.Reached25
	case 50:
		reached = s.Reached50
	case 75:
		reached = s.Reached75
	case 90:
		reached = s.Reached90
	}
	return float64(reached) / float64(sessions) * 100
}

// ArticleAnalytics are per-article behavioral metrics from the external
// source. Rates are percentages.
type ArticleAnalytics struct {
	Slug           string  `json:"slug"`
	Title          string  `json:"title"`
	Views          int     `json:"views"`
	UniqueUsers    int     `json:"uniqueUsers"`
	BounceRate     float64 `json:"bounceRate"`
	ExitRate       float64 `json:"exitRate"`
	Conversions    int     `json:"conversions"`
	EngagementRate float64 `json:"engagementRate"`
}

// TrafficSource is one row of the source/medium breakdown.
type TrafficSource struct {
	Source     string  `json:"source"`
	Medium     string  `json:"medium"`
	Campaign   string  `json:"campaign"`
	Sessions   int     `json:"sessions"`
	BounceRate float64 `json:"bounceRate"`
}

// DeviceBreakdown is one row of the device-category breakdown.
type DeviceBreakdown struct {
	Category   string  `json:"category"`
	Sessions   int     `json:"sessions"`
	Percentage float64 `json:"percentage"`
	BounceRate float64 `json:"bounceRate"`
}

// ConversionEvent is one named conversion with its count in the window.
type ConversionEvent struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalyticsSummary is the time-windowed behavioral snapshot the Analyst
// fuses with internal metrics.
type AnalyticsSummary struct {
	LookbackDays   int                `json:"lookbackDays"`
	Totals         AnalyticsTotals    `json:"totals"`
	Engagement     EngagementMetrics  `json:"engagement"`
	ScrollDepth    ScrollDepthSummary `json:"scrollDepth"`
	Articles       []ArticleAnalytics `json:"articles"`
	TrafficSources []TrafficSource    `json:"trafficSources"`
	Devices        []DeviceBreakdown  `json:"devices"`
	Conversions    []ConversionEvent  `json:"conversions"`
}

// AnalyticsSource is the external behavioral-analytics collaborator.
// Unavailability is a value signal, not an error: available=false is
// distinguishable from an available summary whose values happen to be zero,
// which is what lets the Analyst's degraded-mode rule trigger correctly.
type AnalyticsSource interface {
	Summary(ctx context.Context, lookbackDays int) (summary AnalyticsSummary, available bool)
}
