package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	types "github.com/jyotishya/jyotishya-backend/internal/domain"
)

func chartFixture(label, provider string, age time.Duration) *types.SavedChart {
	return &types.SavedChart{
		Label:     label,
		Provider:  provider,
		CreatedAt: time.Now().Add(-age),
	}
}

func labels(list []*types.SavedChart) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Label
	}
	return out
}

func TestFilterCharts(t *testing.T) {
	list := []*types.SavedChart{
		chartFixture("My chart", "freeastrology", time.Hour),
		chartFixture("Amma", "mock", 2*time.Hour),
		chartFixture("amma ji", "freeastrology", 3*time.Hour),
	}

	assert.Len(t, FilterCharts(list, "", ""), 3)
	assert.Equal(t, []string{"Amma", "amma ji"}, labels(FilterCharts(list, "amma", "")))
	assert.Equal(t, []string{"My chart", "amma ji"}, labels(FilterCharts(list, "", "freeastrology")))
	assert.Equal(t, []string{"amma ji"}, labels(FilterCharts(list, "amma", "freeastrology")))
	assert.Empty(t, FilterCharts(list, "nobody", ""))
}

func TestSortCharts(t *testing.T) {
	list := []*types.SavedChart{
		chartFixture("b-middle", "mock", 2*time.Hour),
		chartFixture("A-newest", "mock", time.Hour),
		chartFixture("c-oldest", "mock", 3*time.Hour),
	}

	assert.Equal(t, []string{"A-newest", "b-middle", "c-oldest"}, labels(SortCharts(list, ChartSortNewest)))
	assert.Equal(t, []string{"c-oldest", "b-middle", "A-newest"}, labels(SortCharts(list, ChartSortOldest)))
	assert.Equal(t, []string{"A-newest", "b-middle", "c-oldest"}, labels(SortCharts(list, ChartSortLabel)))
	// Unknown key falls back to newest-first.
	assert.Equal(t, []string{"A-newest", "b-middle", "c-oldest"}, labels(SortCharts(list, "bogus")))
}
