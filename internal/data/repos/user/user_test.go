package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos/testutil"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	"gorm.io/datatypes"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	id := uuid.New()
	created, err := repo.Upsert(ctx, tx, &types.User{
		ID:    id,
		Email: "userrepo@example.com",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.ID != id {
		t.Fatalf("Upsert: expected id %s, got %s", id, created.ID)
	}

	// Same subject again with a changed email refreshes the email only.
	if err := repo.UpdateProfile(ctx, tx, id, map[string]any{
		"display_name":     "Asha",
		"sun_sign":         "leo",
		"timezone":         "Asia/Kolkata",
		"preferred_locale": "hi",
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	again, err := repo.Upsert(ctx, tx, &types.User{
		ID:    id,
		Email: "renamed@example.com",
	})
	if err != nil {
		t.Fatalf("Upsert (again): %v", err)
	}
	if again.Email != "renamed@example.com" {
		t.Fatalf("Upsert (again): email not refreshed: %+v", again)
	}
	if again.DisplayName != "Asha" || again.SunSign != "leo" {
		t.Fatalf("Upsert (again): profile fields clobbered: %+v", again)
	}

	got, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Timezone != "Asia/Kolkata" || got.PreferredLocale != "hi" {
		t.Fatalf("GetByID: unexpected profile: %+v", got)
	}

	// A single-column update must not touch the other profile columns.
	if err := repo.UpdateProfile(ctx, tx, id, map[string]any{"timezone": "Asia/Dubai"}); err != nil {
		t.Fatalf("UpdateProfile (partial): %v", err)
	}
	partial, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID (partial): %v", err)
	}
	if partial.Timezone != "Asia/Dubai" {
		t.Fatalf("UpdateProfile (partial): timezone not updated: %+v", partial)
	}
	if partial.DisplayName != "Asha" || partial.SunSign != "leo" || partial.PreferredLocale != "hi" {
		t.Fatalf("UpdateProfile (partial): untouched columns changed: %+v", partial)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, "renamed@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != id {
		t.Fatalf("GetByEmail: unexpected user: %+v", byEmail)
	}

	if err := repo.UpdatePreferences(ctx, tx, id, datatypes.JSON([]byte(`{"theme":"dark"}`))); err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("GetByID (prefs): %v", err)
	}
	if string(got.Preferences) == "" {
		t.Fatalf("GetByID (prefs): preferences not persisted")
	}
}
