package vedic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
)

func TestSignFromLongitude(t *testing.T) {
	tests := []struct {
		longitude  float64
		name       string
		lord       string
		normDegree float64
	}{
		{0, "Aries", "Mars", 0},
		{29.999, "Aries", "Mars", 29.999},
		{30, "Taurus", "Venus", 0},
		{123.5, "Leo", "Sun", 3.5},
		{359.9, "Pisces", "Jupiter", 29.9},
		{360, "Aries", "Mars", 0},   // wraps
		{-10, "Pisces", "Jupiter", 20}, // negative wraps backwards
	}
	for _, tt := range tests {
		s := SignFromLongitude(tt.longitude)
		assert.Equal(t, tt.name, s.Name, "longitude %v", tt.longitude)
		assert.Equal(t, tt.lord, s.Lord, "longitude %v", tt.longitude)
		assert.InDelta(t, tt.normDegree, s.NormDegree, 1e-9, "longitude %v", tt.longitude)
	}
}

func TestSignTablesAreConsistent(t *testing.T) {
	assert.Equal(t, "Aries", SignName(0))
	assert.Equal(t, "Pisces", SignName(11))
	assert.Equal(t, "Aries", SignName(12)) // wraps
	assert.Equal(t, "Saturn", SignLord(10))
	assert.Equal(t, "Water", SignElement(7))
	assert.Equal(t, "Mutable", SignQuality(5))
}

func TestParseSunSign(t *testing.T) {
	got, err := ParseSunSign("  Scorpio ")
	require.NoError(t, err)
	assert.Equal(t, "scorpio", got)

	got, err = ParseSunSign("LEO")
	require.NoError(t, err)
	assert.Equal(t, "leo", got)

	_, err = ParseSunSign("ophiuchus")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}

func TestSunSignsOrderAndCount(t *testing.T) {
	all := SunSigns()
	require.Len(t, all, 12)
	assert.Equal(t, "aries", all[0])
	assert.Equal(t, "pisces", all[11])
}

func TestNakshatraFromLongitude(t *testing.T) {
	// Ashwini covers 0 to 13°20'.
	n := NakshatraFromLongitude(0)
	assert.Equal(t, "Ashwini", n.Name)
	assert.Equal(t, "Ketu", n.Lord)
	assert.Equal(t, 1, n.Pada)

	// 13°20' is the start of Bharani.
	n = NakshatraFromLongitude(360.0 / 27.0)
	assert.Equal(t, "Bharani", n.Name)
	assert.Equal(t, "Venus", n.Lord)

	// Last nakshatra.
	n = NakshatraFromLongitude(359.9)
	assert.Equal(t, "Revati", n.Name)
	assert.Equal(t, "Mercury", n.Lord)
	assert.Equal(t, 4, n.Pada)

	// Pada boundaries: 3°20' into Ashwini starts pada 2.
	n = NakshatraFromLongitude(360.0 / 27.0 / 4.0)
	assert.Equal(t, "Ashwini", n.Name)
	assert.Equal(t, 2, n.Pada)
}

func TestNakshatraLordCycleRepeats(t *testing.T) {
	// The nine-lord cycle repeats exactly three times.
	for i := 0; i < 9; i++ {
		assert.Equal(t, NakshatraLord(i), NakshatraLord(i+9))
		assert.Equal(t, NakshatraLord(i), NakshatraLord(i+18))
	}
}

func TestFormatDegree(t *testing.T) {
	assert.Equal(t, `0°0'0"`, FormatDegree(0))
	assert.Equal(t, `23°30'0"`, FormatDegree(23.5))
	assert.Equal(t, `10°15'36"`, FormatDegree(10.26))
	// Rounding at the second boundary carries into minutes.
	assert.Equal(t, `13°20'0"`, FormatDegree(13.33333333))
}

func TestFormatBirthDate(t *testing.T) {
	bd := time.Date(1990, time.August, 15, 6, 45, 0, 0, time.UTC)
	assert.Equal(t, "15 Aug 1990, 6:45 AM", FormatBirthDate(bd))
}

func TestFormatLongitude(t *testing.T) {
	assert.Equal(t, `Leo 3°30'0"`, FormatLongitude(123.5))
}
