package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/astro/freeastro"
	"github.com/jyotishya/jyotishya-backend/internal/astro/mock"
	"github.com/jyotishya/jyotishya-backend/internal/cache"
	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

// NewAstroProvider picks the astrology backend and wraps it in the caching
// decorator. Selection order:
//
//   - ASTRO_BACKEND=freeastrology or =mock forces a backend;
//   - otherwise the paid API is used when ASTRO_API_KEY is set, and the
//     deterministic mock when it is not.
//
// The returned close func flushes cache janitors and the redis connection.
func NewAstroProvider(log *logger.Logger) (astro.Provider, func(), error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("ASTRO_BACKEND")))
	hasKey := strings.TrimSpace(os.Getenv("ASTRO_API_KEY")) != ""

	var inner astro.Provider
	switch backend {
	case astro.BackendFreeAstrology:
		client, err := freeastro.NewClient(log)
		if err != nil {
			return nil, nil, fmt.Errorf("ASTRO_BACKEND=%s: %w", backend, err)
		}
		inner = client
	case astro.BackendMock:
		inner = mock.NewProvider(envutil.GetEnv("ASTRO_DEFAULT_TIMEZONE", "Asia/Kolkata", log), log)
	case "":
		if hasKey {
			client, err := freeastro.NewClient(log)
			if err != nil {
				return nil, nil, err
			}
			inner = client
		} else {
			log.Warn("ASTRO_API_KEY not set, falling back to mock astrology backend")
			inner = mock.NewProvider(envutil.GetEnv("ASTRO_DEFAULT_TIMEZONE", "Asia/Kolkata", log), log)
		}
	default:
		return nil, nil, fmt.Errorf("unknown ASTRO_BACKEND %q", backend)
	}

	// Redis is optional: without REDIS_ADDR the cache is memory-only, and a
	// failed connection downgrades rather than blocking startup.
	var redis *cache.RedisStore
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		store, err := cache.NewRedisStore(log)
		if err != nil {
			log.Warn("redis cache unavailable, using memory-only cache", "error", err)
		} else {
			redis = store
		}
	}

	cfg := astro.CacheConfig{
		HoroscopeFresh:  envutil.GetEnvAsDuration("CACHE_HOROSCOPE_FRESH", time.Hour, log),
		HoroscopeStale:  envutil.GetEnvAsDuration("CACHE_HOROSCOPE_STALE", 24*time.Hour, log),
		PanchangFresh:   envutil.GetEnvAsDuration("CACHE_PANCHANG_FRESH", time.Hour, log),
		PanchangStale:   envutil.GetEnvAsDuration("CACHE_PANCHANG_STALE", 24*time.Hour, log),
		ChartTTL:        envutil.GetEnvAsDuration("CACHE_CHART_TTL", 24*time.Hour, log),
		DefaultTimezone: envutil.GetEnv("ASTRO_DEFAULT_TIMEZONE", "Asia/Kolkata", log),
	}

	cached := astro.NewCachedProvider(inner, redis, cfg, log)
	log.Info("astrology provider ready", "backend", inner.Name(), "redis_cache", redis != nil)

	closeFn := func() {
		cached.Close()
		if redis != nil {
			_ = redis.Close()
		}
	}
	return cached, closeFn, nil
}
