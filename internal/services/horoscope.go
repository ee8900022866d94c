package services

import (
	"context"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/cache"
	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

type HoroscopeService interface {
	GetDaily(ctx context.Context, sign string, opts astro.QueryOptions) (*astro.DailyHoroscope, error)
	GetDailyAll(ctx context.Context, opts astro.QueryOptions) (map[string]*astro.DailyHoroscope, error)
}

type horoscopeService struct {
	log      *logger.Logger
	provider astro.Provider

	// batcher coalesces default-scope single-sign lookups that land close
	// together (a page rendering 12 sign cards fires 12 requests at once)
	// into one upstream batch call.
	batcher *cache.Batcher[string, *astro.DailyHoroscope]
}

func NewHoroscopeService(provider astro.Provider, baseLog *logger.Logger) HoroscopeService {
	serviceLog := baseLog.With("service", "HoroscopeService")

	window := envutil.GetEnvAsDuration("HOROSCOPE_BATCH_WINDOW", 15*time.Millisecond, serviceLog)
	hs := &horoscopeService{
		log:      serviceLog,
		provider: provider,
	}
	hs.batcher = cache.NewBatcher(12, window, func(ctx context.Context, signs []string) (map[string]*astro.DailyHoroscope, error) {
		// One sign alone is cheaper as a single call.
		if len(signs) == 1 {
			h, err := provider.DailyHoroscope(ctx, signs[0], astro.QueryOptions{})
			if err != nil {
				return nil, err
			}
			return map[string]*astro.DailyHoroscope{signs[0]: h}, nil
		}
		return provider.DailyHoroscopeBatch(ctx, astro.QueryOptions{})
	})
	return hs
}

func (hs *horoscopeService) GetDaily(ctx context.Context, sign string, opts astro.QueryOptions) (*astro.DailyHoroscope, error) {
	canonical, err := vedic.ParseSunSign(sign)
	if err != nil {
		return nil, err
	}

	// Non-default scopes bypass the batcher; its keys carry no scope.
	if opts.Date != nil || opts.Timezone != "" || opts.Latitude != 0 || opts.Longitude != 0 || opts.Locale != "" {
		return hs.provider.DailyHoroscope(ctx, canonical, opts)
	}
	return hs.batcher.Load(ctx, canonical)
}

func (hs *horoscopeService) GetDailyAll(ctx context.Context, opts astro.QueryOptions) (map[string]*astro.DailyHoroscope, error) {
	return hs.provider.DailyHoroscopeBatch(ctx, opts)
}
