package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/test/helpers"
)

func TestApplications(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewApplicationService(env.accounts, env.applications, env.locker)
	artist := env.artist(t, "Asha", "asha@test.com", models.StatusApproved)
	other := env.artist(t, "Pia", "pia@test.com")
	me := helpers.IdentityOf(artist)

	t.Run("apply copies the artist status", func(t *testing.T) {
		app, err := svc.Apply(ctx, me, &dto.ApplyRequest{
			Title:   "Lead role",
			Details: json.RawMessage(`{"project":"Monsoon"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, app.Status)
		assert.Equal(t, artist.ID, app.AccountID)
		assert.JSONEq(t, `{"project":"Monsoon"}`, string(app.Details))
	})

	t.Run("recruiters cannot apply", func(t *testing.T) {
		_, err := svc.Apply(ctx, helpers.IdentityOf(env.recruiter), &dto.ApplyRequest{Title: "x"})
		assertCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("list mine", func(t *testing.T) {
		apps, err := svc.ListMine(ctx, me)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("list for account", func(t *testing.T) {
		apps, err := svc.ListForAccount(ctx, env.admin, artist.ID)
		require.NoError(t, err)
		assert.Len(t, apps, 1)

		_, err = svc.ListForAccount(ctx, helpers.IdentityOf(other), artist.ID)
		assertCode(t, err, apperrors.CodeForbidden)

		_, err = svc.ListForAccount(ctx, env.admin, models.NewID())
		assertCode(t, err, apperrors.CodeNotFound)
	})
}
