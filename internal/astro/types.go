package astro

import (
	"encoding/json"
	"time"
)

// ProviderMetadata records where a result came from and keeps the raw
// upstream payload for debugging; the raw blob is never re-parsed.
type ProviderMetadata struct {
	Provider    string          `json:"provider"`
	GeneratedAt time.Time       `json:"generated_at"`
	Timezone    string          `json:"timezone,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// DailyHoroscope is the normalized daily reading for one sun sign.
type DailyHoroscope struct {
	Metadata    ProviderMetadata `json:"metadata"`
	Date        time.Time        `json:"date"`
	SunSign     string           `json:"sun_sign"`
	Guidance    string           `json:"guidance"`
	Mood        string           `json:"mood,omitempty"`
	LuckyNumber string           `json:"lucky_number,omitempty"`
	LuckyColor  string           `json:"lucky_color,omitempty"`
	// Snapshot carries the planetary context the guidance was derived from.
	Snapshot map[string]any `json:"snapshot,omitempty"`
}

// Panchang is the normalized daily almanac summary.
type Panchang struct {
	Metadata  ProviderMetadata `json:"metadata"`
	Date      time.Time        `json:"date"`
	Tithi     string           `json:"tithi"`
	Nakshatra string           `json:"nakshatra"`
	Yoga      string           `json:"yoga"`
	Karana    string           `json:"karana"`
	Sunrise   string           `json:"sunrise"`
	Sunset    string           `json:"sunset"`
}

// PlanetPosition is one row of a birth chart.
type PlanetPosition struct {
	Name          string  `json:"name"`
	FullDegree    float64 `json:"full_degree"`
	NormDegree    float64 `json:"norm_degree"`
	Speed         float64 `json:"speed"`
	Retrograde    bool    `json:"retrograde"`
	Sign          string  `json:"sign"`
	SignLord      string  `json:"sign_lord"`
	Nakshatra     string  `json:"nakshatra"`
	NakshatraLord string  `json:"nakshatra_lord"`
	House         int     `json:"house"`
}

// HousePosition describes one house cusp under whole-sign houses.
type HousePosition struct {
	House  int     `json:"house"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// BirthChart is the normalized kundli for a set of birth details.
type BirthChart struct {
	Metadata  ProviderMetadata `json:"metadata"`
	Ascendant float64          `json:"ascendant"`
	Planets   []PlanetPosition `json:"planets"`
	Houses    []HousePosition  `json:"houses"`
}

// BirthDetails is the provider-facing input: local civil time plus location.
// TZOffsetHours is the UTC offset of the birth place at that moment; the
// upstream API works with numeric offsets, not zone names.
type BirthDetails struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	Day           int     `json:"day"`
	Hour          int     `json:"hour"`
	Minute        int     `json:"minute"`
	Second        int     `json:"second"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	TZOffsetHours float64 `json:"tz_offset_hours"`
	Ayanamsa      string  `json:"ayanamsa,omitempty"` // defaults to lahiri
}

// QueryOptions parameterize date-scoped lookups (horoscope, panchang).
// Zero values fall back to the provider's configured defaults.
type QueryOptions struct {
	Date      *time.Time
	Timezone  string // IANA zone name
	Latitude  float64
	Longitude float64
	Locale    string
}
