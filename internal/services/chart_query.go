package services

import (
	"sort"
	"strings"

	types "github.com/jyotishya/jyotishya-backend/internal/domain"
)

// Chart list query helpers. Lists are small (capped per user), so filtering
// and sorting happen in memory after the single indexed fetch.

const (
	ChartSortNewest = "newest"
	ChartSortOldest = "oldest"
	ChartSortLabel  = "label"
)

// FilterCharts keeps charts whose label contains q (case-insensitive) and,
// when provider is non-empty, whose provider matches exactly.
func FilterCharts(list []*types.SavedChart, q, provider string) []*types.SavedChart {
	q = strings.ToLower(strings.TrimSpace(q))
	provider = strings.TrimSpace(provider)
	if q == "" && provider == "" {
		return list
	}

	out := make([]*types.SavedChart, 0, len(list))
	for _, c := range list {
		if q != "" && !strings.Contains(strings.ToLower(c.Label), q) {
			continue
		}
		if provider != "" && c.Provider != provider {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SortCharts orders the list in place and returns it. Unknown sort keys fall
// back to newest-first.
func SortCharts(list []*types.SavedChart, by string) []*types.SavedChart {
	switch by {
	case ChartSortOldest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	case ChartSortLabel:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Label) < strings.ToLower(list[j].Label)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
	return list
}
