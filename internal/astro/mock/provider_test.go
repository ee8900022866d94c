package mock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
)

func fixedDate() astro.QueryOptions {
	d := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	return astro.QueryOptions{Date: &d, Timezone: "UTC"}
}

func TestDailyHoroscopeDeterministic(t *testing.T) {
	p := NewProvider("", nil)
	ctx := context.Background()

	a, err := p.DailyHoroscope(ctx, "Leo", fixedDate())
	require.NoError(t, err)
	b, err := p.DailyHoroscope(ctx, "leo", fixedDate())
	require.NoError(t, err)

	assert.Equal(t, "leo", a.SunSign)
	assert.Equal(t, a.Guidance, b.Guidance)
	assert.Equal(t, a.Mood, b.Mood)
	assert.Equal(t, a.LuckyNumber, b.LuckyNumber)
	assert.Equal(t, a.LuckyColor, b.LuckyColor)
	assert.Equal(t, astro.BackendMock, a.Metadata.Provider)
	assert.Contains(t, a.Guidance, "Planetary snapshot for Leo.")
}

func TestDailyHoroscopeVariesBySign(t *testing.T) {
	p := NewProvider("", nil)
	ctx := context.Background()

	leo, err := p.DailyHoroscope(ctx, "leo", fixedDate())
	require.NoError(t, err)
	aries, err := p.DailyHoroscope(ctx, "aries", fixedDate())
	require.NoError(t, err)

	assert.NotEqual(t, leo.Guidance, aries.Guidance)
}

func TestDailyHoroscopeUnknownSign(t *testing.T) {
	p := NewProvider("", nil)
	_, err := p.DailyHoroscope(context.Background(), "ophiuchus", fixedDate())
	assert.Error(t, err)
}

func TestDailyHoroscopeBatchAllSigns(t *testing.T) {
	p := NewProvider("", nil)

	batch, err := p.DailyHoroscopeBatch(context.Background(), fixedDate())
	require.NoError(t, err)
	require.Len(t, batch, 12)

	for sign, h := range batch {
		assert.Equal(t, sign, h.SunSign)
		assert.NotEmpty(t, h.Guidance)
	}
}

func TestTodayPanchang(t *testing.T) {
	p := NewProvider("", nil)

	a, err := p.TodayPanchang(context.Background(), fixedDate())
	require.NoError(t, err)
	b, err := p.TodayPanchang(context.Background(), fixedDate())
	require.NoError(t, err)

	assert.Equal(t, a.Tithi, b.Tithi)
	assert.Equal(t, a.Nakshatra, b.Nakshatra)
	assert.NotEmpty(t, a.Tithi)
	assert.NotEmpty(t, a.Yoga)
	assert.NotEmpty(t, a.Karana)
	assert.True(t, strings.HasPrefix(a.Sunrise, "06:"), "sunrise %q", a.Sunrise)
	assert.True(t, strings.HasPrefix(a.Sunset, "18:"), "sunset %q", a.Sunset)
}

func TestBirthChartDeterministicAndConsistent(t *testing.T) {
	p := NewProvider("", nil)
	details := astro.BirthDetails{
		Year: 1994, Month: 11, Day: 3, Hour: 6, Minute: 45,
		Latitude: 28.6139, Longitude: 77.2090, TZOffsetHours: 5.5,
	}

	a, err := p.BirthChart(context.Background(), details)
	require.NoError(t, err)
	b, err := p.BirthChart(context.Background(), details)
	require.NoError(t, err)

	assert.Equal(t, a.Ascendant, b.Ascendant)
	require.Len(t, a.Planets, 9)
	require.Len(t, a.Houses, 12)

	rising := a.Houses[0].Sign
	for _, pl := range a.Planets {
		assert.GreaterOrEqual(t, pl.FullDegree, 0.0)
		assert.Less(t, pl.FullDegree, 360.0)
		assert.NotEmpty(t, pl.Sign)
		assert.NotEmpty(t, pl.Nakshatra)
		assert.GreaterOrEqual(t, pl.House, 1)
		assert.LessOrEqual(t, pl.House, 12)
		if pl.Name == "Sun" || pl.Name == "Moon" {
			assert.False(t, pl.Retrograde, "%s cannot be retrograde", pl.Name)
		}
	}
	assert.NotEmpty(t, rising)

	// Different birth details should not collide.
	details.Minute = 46
	c, err := p.BirthChart(context.Background(), details)
	require.NoError(t, err)
	assert.NotEqual(t, a.Ascendant, c.Ascendant)
}

func TestChartSVG(t *testing.T) {
	p := NewProvider("", nil)
	details := astro.BirthDetails{Year: 1994, Month: 11, Day: 3}

	svg, err := p.ChartSVG(context.Background(), details)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "Sun")
	assert.Contains(t, svg, "Ketu")
}
