package db

import (
	"fmt"

	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.SavedChart{},
		&types.Astrologer{},
		&types.Consultation{},
	)
}

// EnsureBookingIndexes adds the indexes AutoMigrate cannot express.
func EnsureBookingIndexes(db *gorm.DB) error {
	// Slot lookups during booking conflict checks.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_consultation_astrologer_slot
		ON consultation (astrologer_id, scheduled_at)
		WHERE deleted_at IS NULL AND status = 'booked';
	`).Error; err != nil {
		return fmt.Errorf("create idx_consultation_astrologer_slot: %w", err)
	}
	// Per-user chart listing.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_saved_chart_user_created
		ON saved_chart (user_id, created_at DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_saved_chart_user_created: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("auto migration failed", "error", err)
		return err
	}
	if s.driver == "postgres" {
		if err := EnsureBookingIndexes(s.db); err != nil {
			s.log.Error("index migration failed", "error", err)
			return err
		}
	}
	return nil
}
