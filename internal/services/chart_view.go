package services

import (
	"encoding/json"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

// ChartListItem is a saved chart decorated with the display strings the
// listing UI shows alongside the raw payloads.
type ChartListItem struct {
	*types.SavedChart
	BirthDateDisplay string `json:"birth_date_display,omitempty"`
	AscendantDisplay string `json:"ascendant_display,omitempty"`
}

// PresentCharts derives the display fields from each chart's stored birth
// details and ascendant. Unreadable payloads just lose their display
// strings; the raw row still goes out.
func PresentCharts(list []*types.SavedChart) []ChartListItem {
	out := make([]ChartListItem, 0, len(list))
	for _, c := range list {
		item := ChartListItem{SavedChart: c}

		var details astro.BirthDetails
		if err := json.Unmarshal(c.BirthDetails, &details); err == nil && details.Year != 0 {
			born := time.Date(details.Year, time.Month(details.Month), details.Day,
				details.Hour, details.Minute, details.Second, 0, time.UTC)
			item.BirthDateDisplay = vedic.FormatBirthDate(born)
		}

		var chart struct {
			Ascendant float64 `json:"ascendant"`
		}
		if err := json.Unmarshal(c.Chart, &chart); err == nil && chart.Ascendant != 0 {
			item.AscendantDisplay = vedic.FormatLongitude(chart.Ascendant)
		}

		out = append(out, item)
	}
	return out
}
