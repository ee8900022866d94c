// Package astro defines the astrology provider abstraction: the interface
// every backend implements, the normalized result types that cross it, and
// the caching decorator that sits in front of whichever backend is selected.
// Backends live in subpackages (freeastro for the paid API, mock for the
// credential-free fallback); selection happens at wiring time.
package astro

import "context"

// Backend identifiers accepted by the ASTRO_BACKEND env override.
const (
	BackendFreeAstrology = "freeastrology"
	BackendMock          = "mock"
)

// Provider is implemented by every astrology backend. All operations are
// read-only lookups against a point-in-time computation; implementations
// must be safe for concurrent use.
type Provider interface {
	// Name identifies the backend ("freeastrology", "mock") for logs and
	// result metadata.
	Name() string

	// DailyHoroscope returns the reading for one sun sign.
	DailyHoroscope(ctx context.Context, sign string, opts QueryOptions) (*DailyHoroscope, error)

	// DailyHoroscopeBatch returns readings for all 12 signs, keyed by
	// lowercase sign name. Signs that individually fail are absent from the
	// result; the call errors only when no sign could be resolved.
	DailyHoroscopeBatch(ctx context.Context, opts QueryOptions) (map[string]*DailyHoroscope, error)

	// TodayPanchang returns the almanac summary for the date in opts
	// (default: today in the configured zone).
	TodayPanchang(ctx context.Context, opts QueryOptions) (*Panchang, error)

	// BirthChart computes the kundli for the given birth details.
	BirthChart(ctx context.Context, details BirthDetails) (*BirthChart, error)

	// ChartSVG returns the rendered chart as an SVG document.
	ChartSVG(ctx context.Context, details BirthDetails) (string, error)
}
