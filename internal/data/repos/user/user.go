package user

import (
	"context"

	"github.com/google/uuid"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, u *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	// UpdateProfile writes only the columns present in updates so partial
	// edits never blank the fields the caller omitted.
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]any) error
	UpdatePreferences(ctx context.Context, tx *gorm.DB, userID uuid.UUID, prefs datatypes.JSON) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// Upsert inserts the row on first sight of a subject and refreshes the email
// on conflict; profile fields set by the user are left alone.
func (ur *userRepo) Upsert(ctx context.Context, tx *gorm.DB, u *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
		}).
		Create(u).Error; err != nil {
		return nil, err
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", u.ID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (ur *userRepo) UpdatePreferences(ctx context.Context, tx *gorm.DB, userID uuid.UUID, prefs datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("preferences", prefs).Error
}
