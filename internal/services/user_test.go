package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
)

func strp(s string) *string { return &s }

func TestUserServiceUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testLogger(t), repo)
	ctx := context.Background()

	id := uuid.New()
	repo.users[id] = &types.User{ID: id, Email: "asha@example.com"}

	u, err := svc.UpdateProfile(ctx, id, ProfileUpdate{
		DisplayName: strp("  Asha "),
		SunSign:     strp("LEO"),
		Timezone:    strp("Asia/Kolkata"),
		Locale:      strp("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.DisplayName)
	assert.Equal(t, "leo", u.SunSign)
	assert.Equal(t, "Asia/Kolkata", u.Timezone)

	_, err = svc.UpdateProfile(ctx, id, ProfileUpdate{SunSign: strp("ophiuchus")})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)

	_, err = svc.UpdateProfile(ctx, id, ProfileUpdate{Timezone: strp("Mars/Olympus")})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}

// A partial edit must leave the omitted fields alone.
func TestUserServiceUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testLogger(t), repo)
	ctx := context.Background()

	id := uuid.New()
	repo.users[id] = &types.User{
		ID:              id,
		Email:           "asha@example.com",
		DisplayName:     "Asha",
		SunSign:         "leo",
		PreferredLocale: "hi",
	}

	u, err := svc.UpdateProfile(ctx, id, ProfileUpdate{Timezone: strp("Asia/Kolkata")})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", u.Timezone)
	assert.Equal(t, "Asha", u.DisplayName)
	assert.Equal(t, "leo", u.SunSign)
	assert.Equal(t, "hi", u.PreferredLocale)

	// An explicit empty string clears the field, nil leaves it.
	u, err = svc.UpdateProfile(ctx, id, ProfileUpdate{DisplayName: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "", u.DisplayName)
	assert.Equal(t, "leo", u.SunSign)

	// No fields at all is a no-op read.
	u, err = svc.UpdateProfile(ctx, id, ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "leo", u.SunSign)
}

func TestUserServiceMeNotFound(t *testing.T) {
	svc := NewUserService(testLogger(t), newFakeUserRepo())

	_, err := svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestUserServiceUpdatePreferences(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testLogger(t), repo)
	ctx := context.Background()

	id := uuid.New()
	repo.users[id] = &types.User{ID: id, Email: "asha@example.com"}

	u, err := svc.UpdatePreferences(ctx, id, datatypes.JSON([]byte(`{"theme":"dark"}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(u.Preferences))

	// Empty input resets to an empty object rather than null.
	u, err = svc.UpdatePreferences(ctx, id, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(u.Preferences))
}
