// Package mock implements astro.Provider without credentials or network
// access. Results are deterministic for a given date, sign or set of birth
// details, so local development and tests see stable output, and the same
// route handlers work end to end when no upstream API key is configured.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

var tithis = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi",
	"Shukla Panchami", "Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami",
	"Shukla Navami", "Shukla Dashami", "Shukla Ekadashi", "Shukla Dwadashi",
	"Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi",
	"Krishna Panchami", "Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami",
	"Krishna Navami", "Krishna Dashami", "Krishna Ekadashi", "Krishna Dwadashi",
	"Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

var yogas = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha", "Shiva",
	"Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

var karanas = [11]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
	"Shakuni", "Chatushpada", "Naga", "Kimstughna",
}

var moods = []string{
	"reflective", "energetic", "steady", "restless", "optimistic",
	"cautious", "creative", "focused",
}

var colors = []string{
	"saffron", "green", "white", "blue", "crimson", "gold", "silver", "indigo",
}

var planetNames = []string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

type Provider struct {
	log *logger.Logger
	tz  string
}

func NewProvider(defaultTimezone string, log *logger.Logger) *Provider {
	if defaultTimezone == "" {
		defaultTimezone = "Asia/Kolkata"
	}
	if log != nil {
		log = log.With("service", "MockAstroProvider")
	}
	return &Provider{log: log, tz: defaultTimezone}
}

func (p *Provider) Name() string { return astro.BackendMock }

// seed hashes its inputs into a stable uint64; everything the provider emits
// derives from one of these.
func seed(parts ...string) uint64 {
	h := fnv.New64a()
	for _, part := range parts {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func pick[T any](items []T, s uint64, salt uint64) T {
	return items[(s^salt)%uint64(len(items))]
}

func (p *Provider) targetDay(opts astro.QueryOptions) (time.Time, string) {
	tz := opts.Timezone
	if tz == "" {
		tz = p.tz
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	if opts.Date != nil {
		return opts.Date.In(loc), tz
	}
	return time.Now().In(loc), tz
}

func (p *Provider) DailyHoroscope(ctx context.Context, sign string, opts astro.QueryOptions) (*astro.DailyHoroscope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := vedic.ParseSunSign(sign)
	if err != nil {
		return nil, err
	}

	day, tz := p.targetDay(opts)
	dayKey := day.Format("2006-01-02")
	s := seed("daily", canonical, dayKey)

	moonLon := float64(s % 360)
	moonSign := vedic.SignFromLongitude(moonLon)
	tithi := pick(tithis[:], s, 1)
	yoga := pick(yogas[:], s, 2)

	title := strings.ToUpper(canonical[:1]) + canonical[1:]
	guidance := fmt.Sprintf(
		"Planetary snapshot for %s. Moon transits %s. Tithi: %s. Yoga: %s. A good day to act on what %s energy favors.",
		title, moonSign.Name, tithi, yoga, moonSign.Element,
	)

	return &astro.DailyHoroscope{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendMock,
			GeneratedAt: time.Now().UTC(),
			Timezone:    tz,
		},
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		SunSign:     canonical,
		Guidance:    guidance,
		Mood:        pick(moods, s, 3),
		LuckyNumber: fmt.Sprintf("%d", s%9+1),
		LuckyColor:  pick(colors, s, 4),
		Snapshot: map[string]any{
			"moon_sign": moonSign.Name,
			"tithi":     tithi,
			"yoga":      yoga,
		},
	}, nil
}

func (p *Provider) DailyHoroscopeBatch(ctx context.Context, opts astro.QueryOptions) (map[string]*astro.DailyHoroscope, error) {
	out := make(map[string]*astro.DailyHoroscope, 12)
	for _, sign := range vedic.SunSigns() {
		h, err := p.DailyHoroscope(ctx, sign, opts)
		if err != nil {
			return nil, err
		}
		out[sign] = h
	}
	return out, nil
}

func (p *Provider) TodayPanchang(ctx context.Context, opts astro.QueryOptions) (*astro.Panchang, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, tz := p.targetDay(opts)
	dayKey := day.Format("2006-01-02")
	s := seed("panchang", dayKey)

	moon := vedic.NakshatraFromLongitude(float64(s % 360))

	return &astro.Panchang{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendMock,
			GeneratedAt: time.Now().UTC(),
			Timezone:    tz,
		},
		Date:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		Tithi:     pick(tithis[:], s, 1),
		Nakshatra: moon.Name,
		Yoga:      pick(yogas[:], s, 2),
		Karana:    pick(karanas[:], s, 3),
		Sunrise:   fmt.Sprintf("06:%02d", s%30),
		Sunset:    fmt.Sprintf("18:%02d", (s>>8)%30),
	}, nil
}

func (p *Provider) BirthChart(ctx context.Context, details astro.BirthDetails) (*astro.BirthChart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := seed("chart",
		fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", details.Year, details.Month, details.Day, details.Hour, details.Minute, details.Second),
		fmt.Sprintf("%.4f,%.4f,%.2f", details.Latitude, details.Longitude, details.TZOffsetHours),
	)

	ascendant := float64(base % 360)
	rising := vedic.SignFromLongitude(ascendant)

	planets := make([]astro.PlanetPosition, 0, len(planetNames))
	for _, name := range planetNames {
		s := seed("planet", name, fmt.Sprintf("%d", base))
		lon := float64(s % 36000) / 100
		sign := vedic.SignFromLongitude(lon)
		nak := vedic.NakshatraFromLongitude(lon)

		// Whole-sign house: count from the rising sign.
		house := (sign.Number-rising.Number+12)%12 + 1

		planets = append(planets, astro.PlanetPosition{
			Name:          name,
			FullDegree:    lon,
			NormDegree:    sign.NormDegree,
			Speed:         float64(s%200)/100 - 0.5,
			Retrograde:    name != "Sun" && name != "Moon" && s%5 == 0,
			Sign:          sign.Name,
			SignLord:      sign.Lord,
			Nakshatra:     nak.Name,
			NakshatraLord: nak.Lord,
			House:         house,
		})
	}

	houses := make([]astro.HousePosition, 12)
	for i := 0; i < 12; i++ {
		n := (rising.Number + i) % 12
		houses[i] = astro.HousePosition{House: i + 1, Sign: vedic.SignName(n), Degree: float64(n) * 30}
	}

	return &astro.BirthChart{
		Metadata: astro.ProviderMetadata{
			Provider:    astro.BackendMock,
			GeneratedAt: time.Now().UTC(),
		},
		Ascendant: ascendant,
		Planets:   planets,
		Houses:    houses,
	}, nil
}

func (p *Provider) ChartSVG(ctx context.Context, details astro.BirthDetails) (string, error) {
	chart, err := p.BirthChart(ctx, details)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 400">`)
	b.WriteString(`<rect x="10" y="10" width="380" height="380" fill="none" stroke="currentColor"/>`)
	b.WriteString(`<line x1="10" y1="10" x2="390" y2="390" stroke="currentColor"/>`)
	b.WriteString(`<line x1="390" y1="10" x2="10" y2="390" stroke="currentColor"/>`)
	b.WriteString(`<line x1="200" y1="10" x2="10" y2="200" stroke="currentColor"/>`)
	b.WriteString(`<line x1="200" y1="10" x2="390" y2="200" stroke="currentColor"/>`)
	b.WriteString(`<line x1="10" y1="200" x2="200" y2="390" stroke="currentColor"/>`)
	b.WriteString(`<line x1="390" y1="200" x2="200" y2="390" stroke="currentColor"/>`)
	for i, p := range chart.Planets {
		y := 40 + i*36
		fmt.Fprintf(&b, `<text x="200" y="%d" text-anchor="middle" font-size="12">%s %s %d</text>`,
			y, p.Name, p.Sign, p.House)
	}
	b.WriteString(`</svg>`)
	return b.String(), nil
}
