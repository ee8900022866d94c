package freeastro

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

// The upstream has shipped at least three envelope shapes over time: a bare
// object, an object wrapped in "data", a "data" array of objects, and a bare
// array. Field names drift between snake_case and camelCase, and some
// almanac fields arrive as objects ({"name": ...}) instead of strings. The
// normalizers below accept all of them and emit the stable DTOs.

func extractEnvelope(raw []byte) map[string]any {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{}
	}
	return envelopeOf(payload)
}

func envelopeOf(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		if data, ok := v["data"]; ok {
			switch d := data.(type) {
			case map[string]any:
				return d
			case []any:
				if len(d) > 0 {
					if first, ok := d[0].(map[string]any); ok {
						return first
					}
				}
			}
		}
		return v
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				return first
			}
		}
	}
	return map[string]any{}
}

// field returns the first present key, unwrapping {"name": ...} objects.
func field(env map[string]any, keys ...string) string {
	for _, k := range keys {
		val, ok := env[k]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if name, ok := v["name"].(string); ok && name != "" {
				return name
			}
		case float64:
			return trimFloat(v)
		}
	}
	return ""
}

func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func numField(env map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := env[k].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		case map[string]any:
			if deg, ok := v["degree"].(float64); ok {
				return deg, true
			}
		}
	}
	return 0, false
}

func boolField(env map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch v := env[k].(type) {
		case bool:
			return v
		case string:
			return strings.EqualFold(strings.TrimSpace(v), "true")
		}
	}
	return false
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(val any) (time.Time, bool) {
	s, ok := val.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func timeField(env map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		if t, ok := parseTime(env[k]); ok {
			return t
		}
	}
	return time.Now().UTC()
}

func normalizeDaily(sign string, raw []byte, timezone string) (*astro.DailyHoroscope, error) {
	canonical, err := vedic.ParseSunSign(sign)
	if err != nil {
		return nil, err
	}
	env := extractEnvelope(raw)

	snapshot := map[string]any{}
	if planets, ok := env["planets"].([]any); ok {
		snapshot["planets"] = planets
	}
	if planets, ok := env["planet_positions"].([]any); ok {
		snapshot["planet_positions"] = planets
	}
	if len(snapshot) == 0 {
		snapshot = nil
	}

	return &astro.DailyHoroscope{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendFreeAstrology,
			GeneratedAt: timeField(env, "generatedAt", "timestamp"),
			Timezone:    timezone,
			Raw:         json.RawMessage(raw),
		},
		Date:        timeField(env, "date", "timestamp"),
		SunSign:     canonical,
		Guidance:    buildGuidance(env, canonical),
		Mood:        field(env, "mood"),
		LuckyNumber: field(env, "lucky_number", "luckyNumber"),
		LuckyColor:  field(env, "lucky_color", "luckyColor"),
		Snapshot:    snapshot,
	}, nil
}

// buildGuidance assembles a readable daily summary from whatever planetary
// context the payload carried.
func buildGuidance(env map[string]any, sign string) string {
	title := strings.ToUpper(sign[:1]) + sign[1:]
	parts := []string{fmt.Sprintf("Planetary snapshot for %s.", title)}

	if moonSign := field(env, "moon_sign", "moonSign"); moonSign != "" {
		parts = append(parts, fmt.Sprintf("Moon transits %s.", moonSign))
	}
	if tithi := field(env, "tithi", "tithi_name"); tithi != "" {
		parts = append(parts, fmt.Sprintf("Tithi: %s.", tithi))
	}
	if yoga := field(env, "yoga", "yoga_name"); yoga != "" {
		parts = append(parts, fmt.Sprintf("Yoga: %s.", yoga))
	}

	planets := planetList(env)
	if len(planets) > 0 {
		first := planets[0]
		name := field(first, "name", "planet")
		signName := field(first, "sign", "rashi")
		if name != "" && signName != "" {
			parts = append(parts, fmt.Sprintf("%s currently resides in %s.", name, signName))
		}
	}

	return strings.Join(parts, " ")
}

func normalizePanchang(raw []byte, timezone string) (*astro.Panchang, error) {
	env := extractEnvelope(raw)

	orUnknown := func(s string) string {
		if s == "" {
			return "Unknown"
		}
		return s
	}

	return &astro.Panchang{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendFreeAstrology,
			GeneratedAt: timeField(env, "generatedAt", "timestamp"),
			Timezone:    timezone,
			Raw:         json.RawMessage(raw),
		},
		Date:      timeField(env, "date", "day"),
		Tithi:     orUnknown(field(env, "tithi", "tithi_name")),
		Nakshatra: orUnknown(field(env, "nakshatra", "nakshatra_name")),
		Yoga:      orUnknown(field(env, "yoga", "yoga_name")),
		Karana:    orUnknown(field(env, "karana", "karana_name")),
		Sunrise:   field(env, "sunrise", "sunrise_time"),
		Sunset:    field(env, "sunset", "sunset_time"),
	}, nil
}

// planetList digs the planet rows out of the envelope. Besides a plain
// "planets" array, older responses ship an "output" array whose first
// element is an object keyed by row index.
func planetList(env map[string]any) []map[string]any {
	candidates := []any{env["planets"], env["planet_positions"], env["output"]}
	for _, cand := range candidates {
		list, ok := cand.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		var out []map[string]any
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if field(m, "name", "planet") != "" {
				out = append(out, m)
				continue
			}
			// Index-keyed row object: {"0": {...}, "1": {...}}.
			for _, v := range m {
				if row, ok := v.(map[string]any); ok && field(row, "name", "planet") != "" {
					out = append(out, row)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func normalizeChart(raw []byte) (*astro.BirthChart, error) {
	env := extractEnvelope(raw)

	rows := planetList(env)
	if len(rows) == 0 {
		return nil, fmt.Errorf("chart response had no planet positions")
	}

	planets := make([]astro.PlanetPosition, 0, len(rows))
	for _, row := range rows {
		full, _ := numField(row, "fullDegree", "full_degree", "longitude")
		norm, hasNorm := numField(row, "normDegree", "norm_degree")
		speed, _ := numField(row, "speed")
		house, _ := numField(row, "house", "house_number")

		sign := vedic.SignFromLongitude(full)
		nak := vedic.NakshatraFromLongitude(full)
		if !hasNorm {
			norm = sign.NormDegree
		}

		p := astro.PlanetPosition{
			Name:          field(row, "name", "planet"),
			FullDegree:    full,
			NormDegree:    norm,
			Speed:         speed,
			Retrograde:    boolField(row, "isRetro", "is_retro", "retro"),
			Sign:          field(row, "sign", "rashi"),
			SignLord:      field(row, "signLord", "sign_lord"),
			Nakshatra:     field(row, "nakshatra"),
			NakshatraLord: field(row, "nakshatraLord", "nakshatra_lord"),
			House:         int(house),
		}
		// Positions alone are enough; missing labels are derived locally.
		if p.Sign == "" {
			p.Sign = sign.Name
		}
		if p.SignLord == "" {
			p.SignLord = sign.Lord
		}
		if p.Nakshatra == "" {
			p.Nakshatra = nak.Name
		}
		if p.NakshatraLord == "" {
			p.NakshatraLord = nak.Lord
		}
		planets = append(planets, p)
	}

	ascendant, _ := numField(env, "ascendant", "asc")

	houses := houseList(env)
	if len(houses) == 0 {
		houses = wholeSignHouses(ascendant)
	}

	return &astro.BirthChart{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendFreeAstrology,
			GeneratedAt: time.Now().UTC(),
			Raw:         json.RawMessage(raw),
		},
		Ascendant: ascendant,
		Planets:   planets,
		Houses:    houses,
	}, nil
}

func houseList(env map[string]any) []astro.HousePosition {
	list, ok := env["houses"].([]any)
	if !ok {
		return nil
	}
	var out []astro.HousePosition
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		num, _ := numField(m, "house", "house_number")
		deg, _ := numField(m, "degree", "start_degree")
		out = append(out, astro.HousePosition{
			House:  int(num),
			Sign:   field(m, "sign", "rashi"),
			Degree: deg,
		})
	}
	return out
}

// wholeSignHouses derives the 12 house cusps from the ascendant: house 1 is
// the full sign containing the ascendant, and the rest follow in order.
func wholeSignHouses(ascendant float64) []astro.HousePosition {
	rising := vedic.SignFromLongitude(ascendant)
	out := make([]astro.HousePosition, 12)
	for i := 0; i < 12; i++ {
		n := (rising.Number + i) % 12
		out[i] = astro.HousePosition{
			House:  i + 1,
			Sign:   vedic.SignName(n),
			Degree: float64(n) * 30,
		}
	}
	return out
}
