package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/data/db"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

type ChartService interface {
	Compute(ctx context.Context, details astro.BirthDetails) (*astro.BirthChart, error)
	ComputeSVG(ctx context.Context, details astro.BirthDetails) (string, error)
	Save(ctx context.Context, userID uuid.UUID, label string, details astro.BirthDetails, withSVG bool) (*types.SavedChart, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.SavedChart, error)
	Get(ctx context.Context, userID, chartID uuid.UUID) (*types.SavedChart, error)
	Rename(ctx context.Context, userID, chartID uuid.UUID, label string) (*types.SavedChart, error)
	Delete(ctx context.Context, userID, chartID uuid.UUID) error
}

type chartService struct {
	dbs       *db.Service
	log       *logger.Logger
	provider  astro.Provider
	chartRepo repos.SavedChartRepo

	// maxSaved caps charts per user; 0 disables the cap.
	maxSaved int64
}

func NewChartService(
	dbs *db.Service,
	baseLog *logger.Logger,
	provider astro.Provider,
	chartRepo repos.SavedChartRepo,
) ChartService {
	serviceLog := baseLog.With("service", "ChartService")
	return &chartService{
		dbs:       dbs,
		log:       serviceLog,
		provider:  provider,
		chartRepo: chartRepo,
		maxSaved:  int64(envutil.GetEnvAsInt("MAX_SAVED_CHARTS", 20, serviceLog)),
	}
}

func validateBirthDetails(d astro.BirthDetails) error {
	if d.Year < 1800 || d.Year > 2200 {
		return fmt.Errorf("%w: year out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("%w: day out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 || d.Second < 0 || d.Second > 59 {
		return fmt.Errorf("%w: time out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.Latitude < -90 || d.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.Longitude < -180 || d.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", pkgerrors.ErrInvalidArgument)
	}
	if d.TZOffsetHours < -12 || d.TZOffsetHours > 14 {
		return fmt.Errorf("%w: timezone offset out of range", pkgerrors.ErrInvalidArgument)
	}
	return nil
}

func (cs *chartService) Compute(ctx context.Context, details astro.BirthDetails) (*astro.BirthChart, error) {
	if err := validateBirthDetails(details); err != nil {
		return nil, err
	}
	return cs.provider.BirthChart(ctx, details)
}

func (cs *chartService) ComputeSVG(ctx context.Context, details astro.BirthDetails) (string, error) {
	if err := validateBirthDetails(details); err != nil {
		return "", err
	}
	return cs.provider.ChartSVG(ctx, details)
}

func (cs *chartService) Save(ctx context.Context, userID uuid.UUID, label string, details astro.BirthDetails, withSVG bool) (*types.SavedChart, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: label required", pkgerrors.ErrInvalidArgument)
	}
	if err := validateBirthDetails(details); err != nil {
		return nil, err
	}

	// Provider calls happen outside the transaction; they can be slow and
	// must not hold row locks.
	chart, err := cs.provider.BirthChart(ctx, details)
	if err != nil {
		return nil, err
	}
	svg := ""
	if withSVG {
		svg, err = cs.provider.ChartSVG(ctx, details)
		if err != nil {
			// The chart itself succeeded; the drawing is best-effort.
			cs.log.Warn("chart svg render failed, saving without it", "error", err)
			svg = ""
		}
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	chartJSON, err := json.Marshal(chart)
	if err != nil {
		return nil, err
	}

	saved := &types.SavedChart{
		ID:           uuid.New(),
		UserID:       userID,
		Label:        label,
		Provider:     cs.provider.Name(),
		BirthDetails: datatypes.JSON(detailsJSON),
		Chart:        datatypes.JSON(chartJSON),
		SVG:          svg,
	}

	err = cs.dbs.RunInTxRetry(ctx, func(tx *gorm.DB) error {
		if cs.maxSaved > 0 {
			count, err := cs.chartRepo.CountByUser(ctx, tx, userID)
			if err != nil {
				return err
			}
			if count >= cs.maxSaved {
				return fmt.Errorf("%w: saved chart limit (%d) reached", pkgerrors.ErrConflict, cs.maxSaved)
			}
		}
		_, err := cs.chartRepo.Create(ctx, tx, saved)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (cs *chartService) List(ctx context.Context, userID uuid.UUID) ([]*types.SavedChart, error) {
	return cs.chartRepo.ListByUser(ctx, nil, userID)
}

// Get enforces ownership: a chart belonging to someone else reads as not
// found rather than forbidden, so IDs cannot be probed.
func (cs *chartService) Get(ctx context.Context, userID, chartID uuid.UUID) (*types.SavedChart, error) {
	chart, err := cs.chartRepo.GetByID(ctx, nil, chartID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	if chart.UserID != userID {
		return nil, pkgerrors.ErrNotFound
	}
	return chart, nil
}

func (cs *chartService) Rename(ctx context.Context, userID, chartID uuid.UUID, label string) (*types.SavedChart, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: label required", pkgerrors.ErrInvalidArgument)
	}
	if _, err := cs.Get(ctx, userID, chartID); err != nil {
		return nil, err
	}
	if err := cs.chartRepo.UpdateLabel(ctx, nil, chartID, label); err != nil {
		return nil, err
	}
	return cs.Get(ctx, userID, chartID)
}

func (cs *chartService) Delete(ctx context.Context, userID, chartID uuid.UUID) error {
	if _, err := cs.Get(ctx, userID, chartID); err != nil {
		return err
	}
	return cs.chartRepo.Delete(ctx, nil, chartID)
}
