package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jyotishya/jyotishya-backend/internal/data/db"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/vedic"
)

// ProfileUpdate carries a partial profile edit. Nil fields are left
// untouched; a present-but-empty string clears the field.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name"`
	SunSign     *string `json:"sun_sign"`
	Timezone    *string `json:"timezone"`
	Locale      *string `json:"locale"`
}

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs datatypes.JSON) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	u, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error) {
	updates := map[string]any{}

	if update.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*update.DisplayName)
	}
	if update.SunSign != nil {
		sunSign := strings.TrimSpace(*update.SunSign)
		if sunSign != "" {
			canonical, err := vedic.ParseSunSign(sunSign)
			if err != nil {
				return nil, err
			}
			sunSign = canonical
		}
		updates["sun_sign"] = sunSign
	}
	if update.Timezone != nil {
		timezone := strings.TrimSpace(*update.Timezone)
		if timezone != "" {
			if _, err := time.LoadLocation(timezone); err != nil {
				return nil, fmt.Errorf("%w: unknown timezone %q", pkgerrors.ErrInvalidArgument, timezone)
			}
		}
		updates["timezone"] = timezone
	}
	if update.Locale != nil {
		updates["preferred_locale"] = strings.TrimSpace(*update.Locale)
	}

	if len(updates) == 0 {
		return us.Me(ctx, userID)
	}
	if err := us.userRepo.UpdateProfile(ctx, nil, userID, updates); err != nil {
		return nil, err
	}
	return us.Me(ctx, userID)
}

func (us *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs datatypes.JSON) (*types.User, error) {
	if len(prefs) == 0 {
		prefs = datatypes.JSON([]byte("{}"))
	}
	if err := us.userRepo.UpdatePreferences(ctx, nil, userID, prefs); err != nil {
		return nil, err
	}
	return us.Me(ctx, userID)
}
