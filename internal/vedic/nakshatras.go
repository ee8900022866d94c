package vedic

// 27 nakshatras of 13°20' each.
var nakshatras = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// Lords repeat the nine-planet cycle three times starting at Ketu.
var nakshatraLords = [27]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

var nakshatraDeities = [27]string{
	"Ashwini Kumaras", "Yama", "Agni", "Brahma", "Soma", "Rudra",
	"Aditi", "Brihaspati", "Sarpa", "Pitris", "Bhaga", "Aryaman",
	"Savitar", "Tvashtar", "Vayu", "Indra-Agni", "Mitra", "Indra",
	"Nirriti", "Apas", "Vishve Devas", "Vishnu", "Vasus", "Varuna",
	"Aja Ekapada", "Ahir Budhnya", "Pushan",
}

// Nakshatra describes one lunar mansion position.
type Nakshatra struct {
	Number int     `json:"number"` // 0 = Ashwini .. 26 = Revati
	Name   string  `json:"name"`
	Lord   string  `json:"lord"`
	Deity  string  `json:"deity"`
	Pada   int     `json:"pada"`   // quarter, 1..4
	Degree float64 `json:"degree"` // degrees into the nakshatra
}

func NakshatraName(n int) string  { return nakshatras[norm(n, 27)] }
func NakshatraLord(n int) string  { return nakshatraLords[norm(n, 27)] }
func NakshatraDeity(n int) string { return nakshatraDeities[norm(n, 27)] }

// NakshatraFromLongitude maps an ecliptic longitude onto its nakshatra and
// pada. Each nakshatra spans 360/27 degrees, each pada a quarter of that.
func NakshatraFromLongitude(longitude float64) Nakshatra {
	lon := normDeg(longitude)
	span := 360.0 / 27.0
	n := int(lon/span) % 27
	within := lon - float64(n)*span
	pada := int(within/(span/4)) + 1
	if pada > 4 {
		pada = 4
	}
	return Nakshatra{
		Number: n,
		Name:   nakshatras[n],
		Lord:   nakshatraLords[n],
		Deity:  nakshatraDeities[n],
		Pada:   pada,
		Degree: within,
	}
}
