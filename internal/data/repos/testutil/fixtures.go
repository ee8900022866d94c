package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: "Test User",
		SunSign:     "leo",
		Timezone:    "Asia/Kolkata",
		Preferences: datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSavedChart(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, label string) *types.SavedChart {
	tb.Helper()
	c := &types.SavedChart{
		ID:           uuid.New(),
		UserID:       userID,
		Label:        label,
		Provider:     "mock",
		BirthDetails: datatypes.JSON([]byte(`{"year":1994,"month":11,"day":3}`)),
		Chart:        datatypes.JSON([]byte(`{"ascendant":15}`)),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed saved chart: %v", err)
	}
	return c
}

func SeedAstrologer(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Astrologer {
	tb.Helper()
	a := &types.Astrologer{
		ID:              uuid.New(),
		Slug:            slug,
		Name:            "Pt. Test Shastri",
		ExperienceYears: 12,
		RatePerMinute:   25,
		Rating:          4.6,
		Specialties:     datatypes.JSON([]byte(`["vedic","kundli"]`)),
		Languages:       datatypes.JSON([]byte(`["hi","en"]`)),
		Active:          true,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed astrologer: %v", err)
	}
	return a
}

func SeedConsultation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, astrologerID uuid.UUID, at time.Time) *types.Consultation {
	tb.Helper()
	c := &types.Consultation{
		ID:              uuid.New(),
		UserID:          userID,
		AstrologerID:    astrologerID,
		ScheduledAt:     at,
		DurationMinutes: 30,
		Status:          types.ConsultationBooked,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed consultation: %v", err)
	}
	return c
}

func PtrTime(v time.Time) *time.Time { return &v }
