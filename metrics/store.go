// Package metrics provides the default in-memory MetricsStore: the internal
// per-article performance aggregates and trend comparison the Analyst fuses
// with external analytics. Production deployments back this with the real
// metrics pipeline; this implementation serves development and tests.
package metrics

import (
	"context"
	"sync"

	"github.com/hupe1980/editorialmesh/core"
)

// InMemoryStore is a thread-safe, process-local MetricsStore.
type InMemoryStore struct {
	mu         sync.RWMutex
	aggregates []core.ArticleAggregate
	trend      core.TrendComparison
}

// NewInMemoryStore creates a store with a stable trend and no articles.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		trend: core.TrendComparison{Direction: core.TrendStable},
	}
}

// SetAggregates replaces the stored per-article aggregates.
func (s *InMemoryStore) SetAggregates(aggregates []core.ArticleAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates = append([]core.ArticleAggregate{}, aggregates...)
}

// SetTrend replaces the stored trend comparison.
func (s *InMemoryStore) SetTrend(trend core.TrendComparison) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trend = trend
}

// ArticleAggregates implements core.MetricsStore.
func (s *InMemoryStore) ArticleAggregates(_ context.Context) ([]core.ArticleAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.ArticleAggregate, len(s.aggregates))
	copy(out, s.aggregates)
	return out, nil
}

// TrendComparison implements core.MetricsStore.
func (s *InMemoryStore) TrendComparison(_ context.Context) (core.TrendComparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trend, nil
}
