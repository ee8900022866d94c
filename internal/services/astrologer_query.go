package services

import (
	"encoding/json"
	"sort"
	"strings"

	"gorm.io/datatypes"

	types "github.com/jyotishya/jyotishya-backend/internal/domain"
)

// Astrologer catalog query helpers. The catalog is small (seeded from a
// YAML file), so filtering and sorting happen in memory on the active set.

const (
	AstrologerSortRating     = "rating"
	AstrologerSortPrice      = "price"
	AstrologerSortExperience = "experience"
)

// AstrologerFilter narrows the catalog. Zero values match everything.
type AstrologerFilter struct {
	Specialty string
	Language  string
	// MaxRate excludes astrologers whose per-minute rate exceeds it; 0 disables.
	MaxRate float64
}

// FilterAstrologers keeps astrologers matching every set filter field.
// Specialty and language matches are case-insensitive exact matches against
// the stored arrays.
func FilterAstrologers(list []*types.Astrologer, f AstrologerFilter) []*types.Astrologer {
	specialty := strings.ToLower(strings.TrimSpace(f.Specialty))
	language := strings.ToLower(strings.TrimSpace(f.Language))
	if specialty == "" && language == "" && f.MaxRate <= 0 {
		return list
	}

	out := make([]*types.Astrologer, 0, len(list))
	for _, a := range list {
		if specialty != "" && !jsonArrayContains(a.Specialties, specialty) {
			continue
		}
		if language != "" && !jsonArrayContains(a.Languages, language) {
			continue
		}
		if f.MaxRate > 0 && a.RatePerMinute > f.MaxRate {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SortAstrologers orders the list in place and returns it. Rating and
// experience sort descending, price ascending; unknown keys fall back to
// rating.
func SortAstrologers(list []*types.Astrologer, by string) []*types.Astrologer {
	switch by {
	case AstrologerSortPrice:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].RatePerMinute < list[j].RatePerMinute
		})
	case AstrologerSortExperience:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ExperienceYears > list[j].ExperienceYears
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Rating > list[j].Rating
		})
	}
	return list
}

func jsonArrayContains(raw datatypes.JSON, want string) bool {
	if len(raw) == 0 {
		return false
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return false
	}
	for _, v := range values {
		if strings.ToLower(strings.TrimSpace(v)) == want {
			return true
		}
	}
	return false
}
