package booking

import (
	"context"

	"github.com/google/uuid"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AstrologerRepo interface {
	UpsertBySlug(ctx context.Context, tx *gorm.DB, astrologers []*types.Astrologer) error
	GetByID(ctx context.Context, tx *gorm.DB, astrologerID uuid.UUID) (*types.Astrologer, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Astrologer, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Astrologer, error)
}

type astrologerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAstrologerRepo(db *gorm.DB, baseLog *logger.Logger) AstrologerRepo {
	repoLog := baseLog.With("repo", "AstrologerRepo")
	return &astrologerRepo{db: db, log: repoLog}
}

// UpsertBySlug loads the seed catalog: new slugs are inserted, known slugs
// have their profile fields refreshed.
func (ar *astrologerRepo) UpsertBySlug(ctx context.Context, tx *gorm.DB, astrologers []*types.Astrologer) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(astrologers) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "bio", "experience_years", "rate_per_minute",
				"rating", "specialties", "languages", "active", "updated_at",
			}),
		}).
		Create(&astrologers).Error
}

func (ar *astrologerRepo) GetByID(ctx context.Context, tx *gorm.DB, astrologerID uuid.UUID) (*types.Astrologer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Astrologer
	if err := transaction.WithContext(ctx).
		Where("id = ?", astrologerID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *astrologerRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Astrologer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Astrologer
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *astrologerRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Astrologer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Astrologer
	if err := transaction.WithContext(ctx).
		Where("active = ?", true).
		Order("rating DESC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
