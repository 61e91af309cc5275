package analytics

import (
	"context"
	"testing"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ core.AnalyticsSource = (*StaticSource)(nil)
	_ core.AnalyticsSource = UnavailableSource{}
)

func TestStaticSource_StampsLookback(t *testing.T) {
	s := NewStaticSource(core.AnalyticsSummary{
		Totals: core.AnalyticsTotals{Sessions: 42},
	})

	summary, ok := s.Summary(context.Background(), 14)
	require.True(t, ok)
	assert.Equal(t, 14, summary.LookbackDays)
	assert.Equal(t, 42, summary.Totals.Sessions)
}

func TestStaticSource_SetSummary(t *testing.T) {
	s := NewStaticSource(core.AnalyticsSummary{})
	s.SetSummary(core.AnalyticsSummary{Totals: core.AnalyticsTotals{Sessions: 7}})

	summary, ok := s.Summary(context.Background(), 28)
	require.True(t, ok)
	assert.Equal(t, 7, summary.Totals.Sessions)
}

func TestUnavailableSource(t *testing.T) {
	_, ok := UnavailableSource{}.Summary(context.Background(), 28)
	assert.False(t, ok)
}
