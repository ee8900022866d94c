package vedic

import (
	"fmt"
	"math"
	"time"
)

// FormatDegree renders a longitude-within-sign as D°M'S".
func FormatDegree(deg float64) string {
	deg = math.Abs(deg)
	d := int(deg)
	rem := (deg - float64(d)) * 60
	m := int(rem)
	s := int(math.Round((rem - float64(m)) * 60))
	if s == 60 {
		s = 0
		m++
	}
	if m == 60 {
		m = 0
		d++
	}
	return fmt.Sprintf("%d°%d'%d\"", d, m, s)
}

// FormatBirthDate is the display form used by saved-chart listings,
// e.g. "15 Aug 1990, 6:45 AM".
func FormatBirthDate(t time.Time) string {
	return t.Format("2 Jan 2006, 3:04 PM")
}

// FormatLongitude renders a full ecliptic longitude as sign + degree,
// e.g. "Leo 23°14'6\"".
func FormatLongitude(longitude float64) string {
	s := SignFromLongitude(longitude)
	return s.Name + " " + FormatDegree(s.NormDegree)
}
