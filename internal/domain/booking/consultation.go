package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConsultationBooked    = "booked"
	ConsultationCancelled = "cancelled"
	ConsultationCompleted = "completed"
)

// Consultation is one booked slot with an astrologer. A slot is considered
// taken while its status is "booked"; cancelled and completed rows do not
// block rebooking.
type Consultation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	AstrologerID uuid.UUID `gorm:"type:uuid;not null;index;column:astrologer_id" json:"astrologer_id"`

	ScheduledAt     time.Time `gorm:"not null;index;column:scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;column:duration_minutes" json:"duration_minutes"`

	Status string `gorm:"not null;default:'booked';column:status" json:"status"`
	Notes  string `gorm:"type:text;column:notes" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Consultation) TableName() string { return "consultation" }

// IDs are generated app-side so the schema works on sqlite too.
func (c *Consultation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Ends returns the end of the slot.
func (c *Consultation) Ends() time.Time {
	return c.ScheduledAt.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// Overlaps reports whether two slots intersect in time.
func (c *Consultation) Overlaps(start time.Time, duration time.Duration) bool {
	end := start.Add(duration)
	return c.ScheduledAt.Before(end) && start.Before(c.Ends())
}
