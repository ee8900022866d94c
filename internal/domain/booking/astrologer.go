package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Astrologer is a consultant users can book. Rows come from the seed catalog
// at startup plus whatever operations adds by hand.
type Astrologer struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Name string    `gorm:"not null;column:name" json:"name"`
	Bio  string    `gorm:"type:text;column:bio" json:"bio"`

	ExperienceYears int     `gorm:"column:experience_years" json:"experience_years"`
	RatePerMinute   float64 `gorm:"column:rate_per_minute" json:"rate_per_minute"`
	Rating          float64 `gorm:"column:rating" json:"rating"`

	// Specialties and Languages are string arrays ("vedic", "hi", "en").
	Specialties datatypes.JSON `gorm:"type:jsonb;column:specialties" json:"specialties"`
	Languages   datatypes.JSON `gorm:"type:jsonb;column:languages" json:"languages"`

	Active bool `gorm:"not null;default:true;column:active" json:"active"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Astrologer) TableName() string { return "astrologer" }

// IDs are generated app-side so the schema works on sqlite too.
func (a *Astrologer) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
