package astro

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/cache"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

// CacheConfig tunes the caching decorator. Horoscope and panchang results
// are date-scoped, so they get a stale-while-revalidate window; charts are
// deterministic for a given set of birth details and just get a flat TTL.
type CacheConfig struct {
	HoroscopeFresh time.Duration
	HoroscopeStale time.Duration
	PanchangFresh  time.Duration
	PanchangStale  time.Duration
	ChartTTL       time.Duration

	// DefaultTimezone resolves "today" for requests that do not pin a date.
	DefaultTimezone string
}

func (c *CacheConfig) applyDefaults() {
	if c.HoroscopeFresh <= 0 {
		c.HoroscopeFresh = time.Hour
	}
	if c.HoroscopeStale <= 0 {
		c.HoroscopeStale = 24 * time.Hour
	}
	if c.PanchangFresh <= 0 {
		c.PanchangFresh = time.Hour
	}
	if c.PanchangStale <= 0 {
		c.PanchangStale = 24 * time.Hour
	}
	if c.ChartTTL <= 0 {
		c.ChartTTL = 24 * time.Hour
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = "Asia/Kolkata"
	}
}

// CachedProvider wraps another Provider with a two-level cache: a
// process-local TTL cache with stale-while-revalidate, and an optional
// shared Redis store consulted on local misses. Concurrent lookups of the
// same key are collapsed to one upstream call.
type CachedProvider struct {
	inner Provider
	log   *logger.Logger
	cfg   CacheConfig
	redis *cache.RedisStore

	horoscopes *cache.TTL[*DailyHoroscope]
	batches    *cache.TTL[map[string]*DailyHoroscope]
	panchangs  *cache.TTL[*Panchang]
	charts     *cache.TTL[*BirthChart]
	svgs       *cache.TTL[string]
}

// NewCachedProvider builds the decorator. redis may be nil, in which case
// the cache is memory-only.
func NewCachedProvider(inner Provider, redis *cache.RedisStore, cfg CacheConfig, log *logger.Logger) *CachedProvider {
	cfg.applyDefaults()
	if log != nil {
		log = log.With("service", "CachedProvider", "backend", inner.Name())
	}
	return &CachedProvider{
		inner:      inner,
		log:        log,
		cfg:        cfg,
		redis:      redis,
		horoscopes: cache.NewTTL[*DailyHoroscope](cfg.HoroscopeFresh, cfg.HoroscopeStale, log),
		batches:    cache.NewTTL[map[string]*DailyHoroscope](cfg.HoroscopeFresh, cfg.HoroscopeStale, log),
		panchangs:  cache.NewTTL[*Panchang](cfg.PanchangFresh, cfg.PanchangStale, log),
		charts:     cache.NewTTL[*BirthChart](cfg.ChartTTL, cfg.ChartTTL, log),
		svgs:       cache.NewTTL[string](cfg.ChartTTL, cfg.ChartTTL, log),
	}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) Close() {
	p.horoscopes.Close()
	p.batches.Close()
	p.panchangs.Close()
	p.charts.Close()
	p.svgs.Close()
}

func (p *CachedProvider) DailyHoroscope(ctx context.Context, sign string, opts QueryOptions) (*DailyHoroscope, error) {
	key := fmt.Sprintf("daily:%s:%s", sign, p.scopeKey(opts))
	return p.horoscopes.GetOrLoad(ctx, key, func(ctx context.Context) (*DailyHoroscope, error) {
		var cached DailyHoroscope
		if hit, err := p.redisGet(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
		res, err := p.inner.DailyHoroscope(ctx, sign, opts)
		if err != nil {
			return nil, err
		}
		p.redisSet(ctx, key, res, p.cfg.HoroscopeStale)
		return res, nil
	})
}

func (p *CachedProvider) DailyHoroscopeBatch(ctx context.Context, opts QueryOptions) (map[string]*DailyHoroscope, error) {
	key := "daily-batch:" + p.scopeKey(opts)
	return p.batches.GetOrLoad(ctx, key, func(ctx context.Context) (map[string]*DailyHoroscope, error) {
		var cached map[string]*DailyHoroscope
		if hit, err := p.redisGet(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		res, err := p.inner.DailyHoroscopeBatch(ctx, opts)
		if err != nil {
			return nil, err
		}
		p.redisSet(ctx, key, res, p.cfg.HoroscopeStale)
		return res, nil
	})
}

func (p *CachedProvider) TodayPanchang(ctx context.Context, opts QueryOptions) (*Panchang, error) {
	key := "panchang:" + p.scopeKey(opts)
	return p.panchangs.GetOrLoad(ctx, key, func(ctx context.Context) (*Panchang, error) {
		var cached Panchang
		if hit, err := p.redisGet(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
		res, err := p.inner.TodayPanchang(ctx, opts)
		if err != nil {
			return nil, err
		}
		p.redisSet(ctx, key, res, p.cfg.PanchangStale)
		return res, nil
	})
}

func (p *CachedProvider) BirthChart(ctx context.Context, details BirthDetails) (*BirthChart, error) {
	key := "chart:" + detailsKey(details)
	return p.charts.GetOrLoad(ctx, key, func(ctx context.Context) (*BirthChart, error) {
		var cached BirthChart
		if hit, err := p.redisGet(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
		res, err := p.inner.BirthChart(ctx, details)
		if err != nil {
			return nil, err
		}
		p.redisSet(ctx, key, res, p.cfg.ChartTTL)
		return res, nil
	})
}

func (p *CachedProvider) ChartSVG(ctx context.Context, details BirthDetails) (string, error) {
	key := "svg:" + detailsKey(details)
	return p.svgs.GetOrLoad(ctx, key, func(ctx context.Context) (string, error) {
		var cached string
		if hit, err := p.redisGet(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		res, err := p.inner.ChartSVG(ctx, details)
		if err != nil {
			return "", err
		}
		p.redisSet(ctx, key, res, p.cfg.ChartTTL)
		return res, nil
	})
}

// scopeKey pins a date-scoped lookup to a calendar day, zone and location
// so "today" rolls over at local midnight rather than UTC midnight.
func (p *CachedProvider) scopeKey(opts QueryOptions) string {
	tz := opts.Timezone
	if tz == "" {
		tz = p.cfg.DefaultTimezone
	}
	day := ""
	if opts.Date != nil {
		day = opts.Date.Format("2006-01-02")
	} else {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			loc = time.UTC
		}
		day = time.Now().In(loc).Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%s:%.2f:%.2f:%s", day, tz, opts.Latitude, opts.Longitude, opts.Locale)
}

func detailsKey(d BirthDetails) string {
	raw, _ := json.Marshal(d)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

func (p *CachedProvider) redisGet(ctx context.Context, key string, dest any) (bool, error) {
	if p.redis == nil {
		return false, nil
	}
	hit, err := p.redis.GetJSON(ctx, key, dest)
	if err != nil && p.log != nil {
		p.log.Warn("redis cache read failed", "key", key, "error", err)
	}
	return hit, err
}

func (p *CachedProvider) redisSet(ctx context.Context, key string, val any, ttl time.Duration) {
	if p.redis == nil {
		return
	}
	if err := p.redis.SetJSON(ctx, key, val, ttl); err != nil && p.log != nil {
		p.log.Warn("redis cache write failed", "key", key, "error", err)
	}
}
