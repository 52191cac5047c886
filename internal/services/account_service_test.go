package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/test/helpers"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts)

	t.Run("artist starts pending", func(t *testing.T) {
		account, err := svc.Register(ctx, &dto.RegisterRequest{
			Name: "Asha", Email: " Asha@Test.com ", Password: "s3cret-pass", Role: models.RoleArtist,
		})
		require.NoError(t, err)
		assert.Equal(t, "asha@test.com", account.Email)
		assert.Equal(t, models.StatusPending, account.CurrentStatus())
		assert.True(t, auth.CheckPasswordHash("s3cret-pass", account.PasswordHash))
	})

	t.Run("recruiter has no status", func(t *testing.T) {
		account, err := svc.Register(ctx, &dto.RegisterRequest{
			Name: "Ravi", Email: "ravi@test.com", Password: "s3cret-pass", Role: models.RoleRecruiter,
		})
		require.NoError(t, err)
		assert.Nil(t, account.Status)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Name: "Eve", Email: "eve@test.com", Password: "s3cret-pass", Role: models.RoleAdmin,
		})
		assertCode(t, err, apperrors.CodeValidationFailed)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Name: "Asha", Email: "asha@test.com", Password: "s3cret-pass", Role: models.RoleArtist,
		})
		assertCode(t, err, apperrors.CodeConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts)

	account, err := svc.Authenticate(ctx, "RITA@test.com", helpers.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, env.recruiter.ID, account.ID)

	_, err = svc.Authenticate(ctx, "rita@test.com", "wrong-password")
	assertCode(t, err, apperrors.CodeUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@test.com", helpers.TestPassword)
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts)
	artist := env.artist(t, "Asha", "asha@test.com")

	profile, err := svc.GetProfile(context.Background(), helpers.IdentityOf(artist))
	require.NoError(t, err)
	assert.Equal(t, artist.ID, profile["id"])
	assert.Equal(t, "asha@test.com", profile["email"])
	assert.Equal(t, models.StatusPending, profile["status"])

	_, err = svc.GetProfile(context.Background(), auth.Identity{AccountID: models.NewID(), Role: models.RoleArtist})
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts)

	require.NoError(t, svc.EnsureAdmin(ctx, "", "Boss@Test.com", "admin-pass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "", "boss@test.com", "other-pass"))

	admin, err := env.accounts.FindByEmail(ctx, "boss@test.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPasswordHash("admin-pass", admin.PasswordHash))

	assert.NoError(t, svc.EnsureAdmin(ctx, "x", "", ""))
}
