package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jyotishya/jyotishya-backend/internal/data/db"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

const (
	minConsultationMinutes = 15
	maxConsultationMinutes = 120
)

type ConsultationService interface {
	Book(ctx context.Context, userID, astrologerID uuid.UUID, at time.Time, durationMinutes int, notes string) (*types.Consultation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Consultation, error)
	Cancel(ctx context.Context, userID, consultationID uuid.UUID) (*types.Consultation, error)
}

type consultationService struct {
	dbs              *db.Service
	log              *logger.Logger
	astrologerRepo   repos.AstrologerRepo
	consultationRepo repos.ConsultationRepo
}

func NewConsultationService(
	dbs *db.Service,
	baseLog *logger.Logger,
	astrologerRepo repos.AstrologerRepo,
	consultationRepo repos.ConsultationRepo,
) ConsultationService {
	return &consultationService{
		dbs:              dbs,
		log:              baseLog.With("service", "ConsultationService"),
		astrologerRepo:   astrologerRepo,
		consultationRepo: consultationRepo,
	}
}

// Book creates a consultation if the slot is free. The conflict check and
// insert run in one retried transaction so two users racing for the same
// slot cannot both win under serializable isolation.
func (cs *consultationService) Book(ctx context.Context, userID, astrologerID uuid.UUID, at time.Time, durationMinutes int, notes string) (*types.Consultation, error) {
	if durationMinutes < minConsultationMinutes || durationMinutes > maxConsultationMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			pkgerrors.ErrInvalidArgument, minConsultationMinutes, maxConsultationMinutes)
	}
	if at.Before(time.Now()) {
		return nil, fmt.Errorf("%w: slot is in the past", pkgerrors.ErrInvalidArgument)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	booking := &types.Consultation{
		ID:              uuid.New(),
		UserID:          userID,
		AstrologerID:    astrologerID,
		ScheduledAt:     at.UTC(),
		DurationMinutes: durationMinutes,
		Status:          types.ConsultationBooked,
		Notes:           notes,
	}

	err := cs.dbs.RunInTxRetry(ctx, func(tx *gorm.DB) error {
		astrologer, err := cs.astrologerRepo.GetByID(ctx, tx, astrologerID)
		if err != nil {
			if db.IsNotFound(err) {
				return fmt.Errorf("%w: astrologer", pkgerrors.ErrNotFound)
			}
			return err
		}
		if !astrologer.Active {
			return fmt.Errorf("%w: astrologer", pkgerrors.ErrNotFound)
		}

		existing, err := cs.consultationRepo.ListBookedInWindow(ctx, tx, astrologerID, at.Add(-duration), at.Add(duration))
		if err != nil {
			return err
		}
		for _, slot := range existing {
			if slot.Overlaps(at, duration) {
				return fmt.Errorf("%w: slot already booked", pkgerrors.ErrConflict)
			}
		}

		_, err = cs.consultationRepo.Create(ctx, tx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("consultation booked",
		"consultation_id", booking.ID.String(),
		"user_id", userID.String(),
		"astrologer_id", astrologerID.String(),
	)
	return booking, nil
}

func (cs *consultationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Consultation, error) {
	return cs.consultationRepo.ListByUser(ctx, nil, userID)
}

func (cs *consultationService) Cancel(ctx context.Context, userID, consultationID uuid.UUID) (*types.Consultation, error) {
	var cancelled *types.Consultation
	err := cs.dbs.RunInTxRetry(ctx, func(tx *gorm.DB) error {
		booking, err := cs.consultationRepo.GetByID(ctx, tx, consultationID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.ErrNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return pkgerrors.ErrNotFound
		}
		if booking.Status != types.ConsultationBooked {
			return fmt.Errorf("%w: consultation is %s", pkgerrors.ErrConflict, booking.Status)
		}
		if err := cs.consultationRepo.UpdateStatus(ctx, tx, consultationID, types.ConsultationCancelled); err != nil {
			return err
		}
		booking.Status = types.ConsultationCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
