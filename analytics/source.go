// Package analytics provides simple AnalyticsSource implementations: a
// static source serving one fixed summary and an unavailable source for the
// Analyst's degraded mode. The real behavioral-analytics pipeline lives
// outside this module; these stand-ins serve development and tests.
package analytics

import (
	"context"
	"sync"

	"github.com/hupe1980/editorialmesh/core"
)

// StaticSource serves a fixed summary for every window.
type StaticSource struct {
	mu      sync.RWMutex
	summary core.AnalyticsSummary
}

// NewStaticSource creates a source serving the given summary.
func NewStaticSource(summary core.AnalyticsSummary) *StaticSource {
	return &StaticSource{summary: summary}
}

// SetSummary replaces the served summary.
func (s *StaticSource) SetSummary(summary core.AnalyticsSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// Summary implements core.AnalyticsSource. The lookback is stamped onto the
// returned summary; the served data itself is window-independent.
func (s *StaticSource) Summary(_ context.Context, lookbackDays int) (core.AnalyticsSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := s.summary
	summary.LookbackDays = lookbackDays
	return summary, true
}

// UnavailableSource reports unavailability for every window. This is the
// explicit signal, distinct from a summary of zero values, that triggers the
// Analyst's degraded mode.
type UnavailableSource struct{}

// Summary implements core.AnalyticsSource.
func (UnavailableSource) Summary(context.Context, int) (core.AnalyticsSummary, bool) {
	return core.AnalyticsSummary{}, false
}
