package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/jyotishya/jyotishya-backend/internal/data/db"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

type AstrologerService interface {
	// SeedFromFile loads the YAML catalog and upserts it by slug. A missing
	// file is not an error; the catalog is optional.
	SeedFromFile(ctx context.Context, path string) (int, error)
	List(ctx context.Context) ([]*types.Astrologer, error)
	Get(ctx context.Context, astrologerID uuid.UUID) (*types.Astrologer, error)
}

type astrologerService struct {
	log            *logger.Logger
	astrologerRepo repos.AstrologerRepo
}

func NewAstrologerService(baseLog *logger.Logger, astrologerRepo repos.AstrologerRepo) AstrologerService {
	return &astrologerService{
		log:            baseLog.With("service", "AstrologerService"),
		astrologerRepo: astrologerRepo,
	}
}

// seedEntry mirrors one catalog record in config/astrologers.yaml.
type seedEntry struct {
	Slug            string   `yaml:"slug"`
	Name            string   `yaml:"name"`
	Bio             string   `yaml:"bio"`
	ExperienceYears int      `yaml:"experience_years"`
	RatePerMinute   float64  `yaml:"rate_per_minute"`
	Rating          float64  `yaml:"rating"`
	Specialties     []string `yaml:"specialties"`
	Languages       []string `yaml:"languages"`
	Active          *bool    `yaml:"active"`
}

type seedFile struct {
	Astrologers []seedEntry `yaml:"astrologers"`
}

func (as *astrologerService) SeedFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			as.log.Info("astrologer catalog not found, skipping seed", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("read astrologer catalog: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse astrologer catalog: %w", err)
	}

	rows := make([]*types.Astrologer, 0, len(file.Astrologers))
	for _, e := range file.Astrologers {
		if e.Slug == "" || e.Name == "" {
			return 0, fmt.Errorf("astrologer catalog entry missing slug or name: %+v", e)
		}
		specialties, _ := json.Marshal(e.Specialties)
		languages, _ := json.Marshal(e.Languages)
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		rows = append(rows, &types.Astrologer{
			ID:              uuid.New(),
			Slug:            e.Slug,
			Name:            e.Name,
			Bio:             e.Bio,
			ExperienceYears: e.ExperienceYears,
			RatePerMinute:   e.RatePerMinute,
			Rating:          e.Rating,
			Specialties:     datatypes.JSON(specialties),
			Languages:       datatypes.JSON(languages),
			Active:          active,
		})
	}

	if err := as.astrologerRepo.UpsertBySlug(ctx, nil, rows); err != nil {
		return 0, fmt.Errorf("seed astrologers: %w", err)
	}
	as.log.Info("astrologer catalog seeded", "count", len(rows), "path", path)
	return len(rows), nil
}

func (as *astrologerService) List(ctx context.Context) ([]*types.Astrologer, error) {
	return as.astrologerRepo.ListActive(ctx, nil)
}

func (as *astrologerService) Get(ctx context.Context, astrologerID uuid.UUID) (*types.Astrologer, error) {
	a, err := as.astrologerRepo.GetByID(ctx, nil, astrologerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	if !a.Active {
		return nil, pkgerrors.ErrNotFound
	}
	return a, nil
}
