package metrics

import (
	"context"
	"testing"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.MetricsStore = (*InMemoryStore)(nil)

func TestInMemoryStore_Defaults(t *testing.T) {
	s := NewInMemoryStore()

	aggregates, err := s.ArticleAggregates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, aggregates)

	trend, err := s.TrendComparison(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.TrendStable, trend.Direction)
}

func TestInMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	s := NewInMemoryStore()

	in := []core.ArticleAggregate{{Slug: "a", Views: 10}}
	s.SetAggregates(in)
	in[0].Views = 999

	out, err := s.ArticleAggregates(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].Views)

	out[0].Views = 888
	again, err := s.ArticleAggregates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, again[0].Views)
}
