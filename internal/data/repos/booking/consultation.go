package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ConsultationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, c *types.Consultation) (*types.Consultation, error)
	GetByID(ctx context.Context, tx *gorm.DB, consultationID uuid.UUID) (*types.Consultation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Consultation, error)
	ListBookedInWindow(ctx context.Context, tx *gorm.DB, astrologerID uuid.UUID, from, to time.Time) ([]*types.Consultation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, consultationID uuid.UUID, status string) error
}

type consultationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	repoLog := baseLog.With("repo", "ConsultationRepo")
	return &consultationRepo{db: db, log: repoLog}
}

func (cr *consultationRepo) Create(ctx context.Context, tx *gorm.DB, c *types.Consultation) (*types.Consultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *consultationRepo) GetByID(ctx context.Context, tx *gorm.DB, consultationID uuid.UUID) (*types.Consultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Consultation
	if err := transaction.WithContext(ctx).
		Where("id = ?", consultationID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *consultationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Consultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Consultation
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListBookedInWindow returns the astrologer's still-booked slots that start
// before `to` and could still be running after `from`. Callers do the exact
// overlap math; this just narrows the candidate set in SQL.
func (cr *consultationRepo) ListBookedInWindow(ctx context.Context, tx *gorm.DB, astrologerID uuid.UUID, from, to time.Time) ([]*types.Consultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Consultation
	if err := transaction.WithContext(ctx).
		Where("astrologer_id = ? AND status = ? AND scheduled_at < ? AND scheduled_at > ?",
			astrologerID, types.ConsultationBooked, to, from.Add(-24*time.Hour)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *consultationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, consultationID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Consultation{}).
		Where("id = ?", consultationID).
		Update("status", status).Error
}
