package charts

import (
	"context"

	"github.com/google/uuid"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type SavedChartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, chart *types.SavedChart) (*types.SavedChart, error)
	GetByID(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) (*types.SavedChart, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SavedChart, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	UpdateLabel(ctx context.Context, tx *gorm.DB, chartID uuid.UUID, label string) error
	Delete(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) error
}

type savedChartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSavedChartRepo(db *gorm.DB, baseLog *logger.Logger) SavedChartRepo {
	repoLog := baseLog.With("repo", "SavedChartRepo")
	return &savedChartRepo{db: db, log: repoLog}
}

func (cr *savedChartRepo) Create(ctx context.Context, tx *gorm.DB, chart *types.SavedChart) (*types.SavedChart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(chart).Error; err != nil {
		return nil, err
	}
	return chart, nil
}

func (cr *savedChartRepo) GetByID(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) (*types.SavedChart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.SavedChart
	if err := transaction.WithContext(ctx).
		Where("id = ?", chartID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *savedChartRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SavedChart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.SavedChart
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *savedChartRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.SavedChart{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *savedChartRepo) UpdateLabel(ctx context.Context, tx *gorm.DB, chartID uuid.UUID, label string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.SavedChart{}).
		Where("id = ?", chartID).
		Update("label", label).Error
}

func (cr *savedChartRepo) Delete(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", chartID).
		Delete(&types.SavedChart{}).Error
}
