package services

import (
	"context"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

type PanchangService interface {
	Today(ctx context.Context, opts astro.QueryOptions) (*astro.Panchang, error)
}

type panchangService struct {
	log      *logger.Logger
	provider astro.Provider
}

func NewPanchangService(provider astro.Provider, baseLog *logger.Logger) PanchangService {
	return &panchangService{
		log:      baseLog.With("service", "PanchangService"),
		provider: provider,
	}
}

func (ps *panchangService) Today(ctx context.Context, opts astro.QueryOptions) (*astro.Panchang, error) {
	return ps.provider.TodayPanchang(ctx, opts)
}
