package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User mirrors a Supabase auth identity. The ID is the Supabase subject, so
// rows are created on first authenticated request rather than via signup.
// There is no password column; credentials never touch this service.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`

	// SunSign is the user's self-declared rashi, lowercase ("leo").
	SunSign string `gorm:"column:sun_sign" json:"sun_sign"`

	Timezone        string `gorm:"column:timezone" json:"timezone"`
	PreferredLocale string `gorm:"column:preferred_locale" json:"preferred_locale"`

	// Preferences holds free-form UI settings the frontend round-trips.
	Preferences datatypes.JSON `gorm:"type:jsonb;column:preferences" json:"preferences"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "app_user" }
