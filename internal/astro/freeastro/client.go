// Package freeastro implements the astro.Provider interface against
// FreeAstrologyAPI.com. The upstream is a paid JSON-over-POST API whose
// response shapes drifted across versions; everything that comes back goes
// through the normalizer before leaving this package.
package freeastro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/pkg/httpx"
	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

const (
	defaultBaseURL  = "https://json.freeastrologyapi.com"
	defaultTimezone = "Asia/Kolkata"
	// New Delhi, the upstream's own default observation point.
	defaultLatitude  = 28.6139
	defaultLongitude = 77.2090
)

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int

	defaultTZ  string
	defaultLat float64
	defaultLon float64
	locale     string

	// batchConcurrency bounds the fan-out of DailyHoroscopeBatch.
	batchConcurrency int
}

func NewClient(log *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("ASTRO_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing ASTRO_API_KEY")
	}

	baseURL := envutil.GetEnv("ASTRO_API_BASE_URL", defaultBaseURL, log)
	timeoutSec := envutil.GetEnvAsInt("ASTRO_TIMEOUT_SECONDS", 8, log)
	maxRetries := envutil.GetEnvAsInt("ASTRO_MAX_RETRIES", 3, log)

	return &Client{
		log:              log.With("service", "FreeAstroClient"),
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		httpClient:       &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries:       maxRetries,
		defaultTZ:        envutil.GetEnv("ASTRO_DEFAULT_TIMEZONE", defaultTimezone, log),
		defaultLat:       envutil.GetEnvAsFloat("ASTRO_DEFAULT_LATITUDE", defaultLatitude, log),
		defaultLon:       envutil.GetEnvAsFloat("ASTRO_DEFAULT_LONGITUDE", defaultLongitude, log),
		locale:           envutil.GetEnv("ASTRO_DEFAULT_LOCALE", "en", log),
		batchConcurrency: envutil.GetEnvAsInt("ASTRO_BATCH_CONCURRENCY", 4, log),
	}, nil
}

func (c *Client) Name() string { return astro.BackendFreeAstrology }

type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("freeastrologyapi http %d: %s", e.StatusCode, e.Body)
}

func (e *apiError) HTTPStatusCode() int { return e.StatusCode }

func (c *Client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &apiError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// post runs a request with retries: exponential backoff with jitter, capped
// at 10s per sleep, honoring Retry-After, retrying only transient failures.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			return raw, nil
		}
		if !httpx.IsRetryableError(err) {
			return nil, err
		}
		if attempt == c.maxRetries {
			return nil, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("freeastrologyapi request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}

// datePayload builds the flat request body the upstream expects for
// date-scoped endpoints: civil time fields plus a numeric UTC offset.
func (c *Client) datePayload(opts astro.QueryOptions) map[string]any {
	tz := opts.Timezone
	if tz == "" {
		tz = c.defaultTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	var target time.Time
	if opts.Date != nil {
		target = opts.Date.In(loc)
	} else {
		target = time.Now().In(loc)
	}
	_, offsetSec := target.Zone()

	lat := opts.Latitude
	lon := opts.Longitude
	if lat == 0 && lon == 0 {
		lat = c.defaultLat
		lon = c.defaultLon
	}

	locale := opts.Locale
	if locale == "" {
		locale = c.locale
	}

	return map[string]any{
		"year":      target.Year(),
		"month":     int(target.Month()),
		"date":      target.Day(),
		"hours":     target.Hour(),
		"minutes":   target.Minute(),
		"seconds":   target.Second(),
		"latitude":  lat,
		"longitude": lon,
		"timezone":  float64(offsetSec) / 3600,
		"ayanamsa":  "lahiri",
		"language":  locale,
	}
}

func birthPayload(d astro.BirthDetails) map[string]any {
	ayanamsa := d.Ayanamsa
	if ayanamsa == "" {
		ayanamsa = "lahiri"
	}
	return map[string]any{
		"year":      d.Year,
		"month":     d.Month,
		"date":      d.Day,
		"hours":     d.Hour,
		"minutes":   d.Minute,
		"seconds":   d.Second,
		"latitude":  d.Latitude,
		"longitude": d.Longitude,
		"timezone":  d.TZOffsetHours,
		"ayanamsa":  ayanamsa,
	}
}

func (c *Client) DailyHoroscope(ctx context.Context, sign string, opts astro.QueryOptions) (*astro.DailyHoroscope, error) {
	raw, err := c.post(ctx, "/planets", c.datePayload(opts))
	if err != nil {
		return nil, err
	}
	return normalizeDaily(sign, raw, opts.Timezone)
}

func (c *Client) DailyHoroscopeBatch(ctx context.Context, opts astro.QueryOptions) (map[string]*astro.DailyHoroscope, error) {
	signs := vedic.SunSigns()
	results := make([]*astro.DailyHoroscope, len(signs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchConcurrency)
	for i, sign := range signs {
		g.Go(func() error {
			h, err := c.DailyHoroscope(gctx, sign, opts)
			if err != nil {
				// One failed sign degrades the batch instead of killing it.
				c.log.Warn("batch horoscope sign failed", "sign", sign, "error", err)
				return nil
			}
			results[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*astro.DailyHoroscope, len(signs))
	for i, sign := range signs {
		if results[i] != nil {
			out[sign] = results[i]
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("daily horoscope batch: all %d signs failed", len(signs))
	}
	return out, nil
}

func (c *Client) TodayPanchang(ctx context.Context, opts astro.QueryOptions) (*astro.Panchang, error) {
	raw, err := c.post(ctx, "/complete-panchang", c.datePayload(opts))
	if err != nil {
		return nil, err
	}
	return normalizePanchang(raw, opts.Timezone)
}

func (c *Client) BirthChart(ctx context.Context, details astro.BirthDetails) (*astro.BirthChart, error) {
	raw, err := c.post(ctx, "/planets", birthPayload(details))
	if err != nil {
		return nil, err
	}
	return normalizeChart(raw)
}

func (c *Client) ChartSVG(ctx context.Context, details astro.BirthDetails) (string, error) {
	raw, err := c.post(ctx, "/horoscope-chart-svg-code", birthPayload(details))
	if err != nil {
		return "", err
	}

	var resp struct {
		Output     string `json:"output"`
		StatusCode int    `json:"statusCode"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode chart svg response: %w", err)
	}
	if strings.TrimSpace(resp.Output) == "" {
		return "", fmt.Errorf("chart svg response had empty output")
	}
	return resp.Output, nil
}
