package charts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedChart is a kundli a user chose to keep: the birth details it was
// computed from, the normalized chart, and optionally the rendered SVG.
// BirthDetails and Chart are stored as JSON blobs so provider-side schema
// drift never forces a table migration.
type SavedChart struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`

	// Label is the user-facing name ("Amma", "My chart").
	Label string `gorm:"not null;column:label" json:"label"`

	Provider     string         `gorm:"not null;column:provider" json:"provider"`
	BirthDetails datatypes.JSON `gorm:"type:jsonb;not null;column:birth_details" json:"birth_details"`
	Chart        datatypes.JSON `gorm:"type:jsonb;not null;column:chart" json:"chart"`
	SVG          string         `gorm:"type:text;column:svg" json:"svg,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SavedChart) TableName() string { return "saved_chart" }

// IDs are generated app-side so the schema works on sqlite too.
func (c *SavedChart) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
