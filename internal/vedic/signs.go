// Package vedic holds the static sidereal-zodiac reference tables and the
// pure helpers the rest of the service uses to name and format positions.
// The astronomy itself (ephemeris, ayanamsa math) stays with the external
// provider; this package only maps longitudes that a provider already
// computed onto signs, nakshatras and display strings.
package vedic

import (
	"fmt"
	"strings"

	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
)

// The 12 rashis in sidereal order.
var signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Mars", "Jupiter", "Saturn", "Saturn", "Jupiter",
}

var signElements = [12]string{
	"Fire", "Earth", "Air", "Water", "Fire", "Earth",
	"Air", "Water", "Fire", "Earth", "Air", "Water",
}

var signQualities = [12]string{
	"Cardinal", "Fixed", "Mutable", "Cardinal", "Fixed", "Mutable",
	"Cardinal", "Fixed", "Mutable", "Cardinal", "Fixed", "Mutable",
}

// Sign describes one rashi.
type Sign struct {
	Number     int    `json:"number"` // 0 = Aries .. 11 = Pisces
	Name       string `json:"name"`
	Lord       string `json:"lord"`
	Element    string `json:"element"`
	Quality    string `json:"quality"`
	NormDegree float64 `json:"norm_degree"` // degrees into the sign, [0,30)
}

func SignName(n int) string    { return signs[norm(n, 12)] }
func SignLord(n int) string    { return signLords[norm(n, 12)] }
func SignElement(n int) string { return signElements[norm(n, 12)] }
func SignQuality(n int) string { return signQualities[norm(n, 12)] }

// SignFromLongitude maps an ecliptic longitude in degrees onto its sign.
func SignFromLongitude(longitude float64) Sign {
	lon := normDeg(longitude)
	n := int(lon/30) % 12
	return Sign{
		Number:     n,
		Name:       signs[n],
		Lord:       signLords[n],
		Element:    signElements[n],
		Quality:    signQualities[n],
		NormDegree: lon - float64(n)*30,
	}
}

// SunSigns returns the canonical lowercase sign names in zodiac order, the
// key set used by daily horoscope batches.
func SunSigns() []string {
	out := make([]string, len(signs))
	for i, s := range signs {
		out[i] = strings.ToLower(s)
	}
	return out
}

// ParseSunSign validates a user-supplied sun sign, case-insensitively, and
// returns its canonical lowercase form.
func ParseSunSign(raw string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range signs {
		if strings.ToLower(s) == needle {
			return needle, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sun sign %q", pkgerrors.ErrInvalidArgument, raw)
}

func norm(n, mod int) int {
	n %= mod
	if n < 0 {
		n += mod
	}
	return n
}

func normDeg(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
