package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos/testutil"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"gorm.io/datatypes"
)

func TestAstrologerRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAstrologerRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seed := []*types.Astrologer{
		{
			ID:          uuid.New(),
			Slug:        "pt-ramesh",
			Name:        "Pt. Ramesh",
			Rating:      4.8,
			Specialties: datatypes.JSON([]byte(`["vedic"]`)),
			Languages:   datatypes.JSON([]byte(`["hi"]`)),
			Active:      true,
		},
		{
			ID:          uuid.New(),
			Slug:        "dr-meera",
			Name:        "Dr. Meera",
			Rating:      4.9,
			Specialties: datatypes.JSON([]byte(`["nadi"]`)),
			Languages:   datatypes.JSON([]byte(`["en"]`)),
			Active:      false,
		},
	}
	if err := repo.UpsertBySlug(ctx, tx, seed); err != nil {
		t.Fatalf("UpsertBySlug: %v", err)
	}

	// Re-seeding with changed fields updates in place.
	seed[0].Rating = 4.5
	if err := repo.UpsertBySlug(ctx, tx, []*types.Astrologer{seed[0]}); err != nil {
		t.Fatalf("UpsertBySlug (again): %v", err)
	}

	got, err := repo.GetBySlug(ctx, tx, "pt-ramesh")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Rating != 4.5 {
		t.Fatalf("GetBySlug: rating not refreshed: %+v", got)
	}

	byID, err := repo.GetByID(ctx, tx, got.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Slug != "pt-ramesh" {
		t.Fatalf("GetByID: unexpected astrologer: %+v", byID)
	}

	active, err := repo.ListActive(ctx, tx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, a := range active {
		if !a.Active {
			t.Fatalf("ListActive: returned inactive astrologer %s", a.Slug)
		}
		if a.Slug == "dr-meera" {
			t.Fatalf("ListActive: inactive astrologer listed")
		}
	}
}

func TestConsultationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewConsultationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "consultrepo@example.com")
	a := testutil.SeedAstrologer(t, ctx, tx, "consultrepo-astro")

	slot := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	created, err := repo.Create(ctx, tx, &types.Consultation{
		ID:              uuid.New(),
		UserID:          u.ID,
		AstrologerID:    a.ID,
		ScheduledAt:     slot,
		DurationMinutes: 30,
		Status:          types.ConsultationBooked,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.ConsultationBooked {
		t.Fatalf("GetByID: unexpected status: %+v", got)
	}

	list, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListByUser: expected 1 consultation, got %d", len(list))
	}

	window, err := repo.ListBookedInWindow(ctx, tx, a.ID, slot.Add(-time.Hour), slot.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBookedInWindow: %v", err)
	}
	if len(window) != 1 {
		t.Fatalf("ListBookedInWindow: expected 1 slot, got %d", len(window))
	}

	if err := repo.UpdateStatus(ctx, tx, created.ID, types.ConsultationCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	window, err = repo.ListBookedInWindow(ctx, tx, a.ID, slot.Add(-time.Hour), slot.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBookedInWindow (cancelled): %v", err)
	}
	if len(window) != 0 {
		t.Fatalf("ListBookedInWindow (cancelled): cancelled slot still listed")
	}
}
