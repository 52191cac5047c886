package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/models"
)

func TestListArtists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewVisibilityService(env.accounts)

	pending := env.artist(t, "Pia", "pia@test.com")
	approved := env.artist(t, "Ana", "ana@test.com", models.StatusApproved)
	rejected := env.artist(t, "Ria", "ria@test.com", models.StatusRejected)

	ids := func(accounts []models.Account) []string {
		out := make([]string, 0, len(accounts))
		for _, a := range accounts {
			assert.Equal(t, models.RoleArtist, a.Role)
			out = append(out, a.ID)
		}
		return out
	}

	t.Run("admin sees every status", func(t *testing.T) {
		artists, err := svc.ListArtists(ctx, models.RoleAdmin)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{pending.ID, approved.ID, rejected.ID}, ids(artists))
	})

	for _, role := range []models.AccountRole{models.RoleRecruiter, models.RoleArtist} {
		t.Run(string(role)+" sees approved only", func(t *testing.T) {
			artists, err := svc.ListArtists(ctx, role)
			require.NoError(t, err)
			assert.Equal(t, []string{approved.ID}, ids(artists))
		})
	}
}

func TestFieldsVisibleTo(t *testing.T) {
	roles := []models.AccountRole{models.RoleArtist, models.RoleRecruiter, models.RoleAdmin}

	t.Run("admin sees at least what a recruiter sees", func(t *testing.T) {
		for _, target := range roles {
			adminSet := FieldsVisibleTo(models.RoleAdmin, target)
			for _, f := range FieldsVisibleTo(models.RoleRecruiter, target) {
				assert.True(t, adminSet.Has(f), "admin viewing %s misses %s", target, f)
			}
		}
	})

	t.Run("recruiter view of an artist hides role and identity", func(t *testing.T) {
		set := FieldsVisibleTo(models.RoleRecruiter, models.RoleArtist)
		assert.False(t, set.Has(FieldRole))
		assert.False(t, set.Has(FieldIdentity))
		assert.True(t, set.Has(FieldCity))
	})

	t.Run("pairs without an entry see nothing", func(t *testing.T) {
		assert.Empty(t, FieldsVisibleTo(models.RoleArtist, models.RoleAdmin))
		assert.Empty(t, FieldsVisibleTo(models.RoleRecruiter, models.RoleAdmin))
		assert.Empty(t, FieldsVisibleTo("guest", models.RoleArtist))
	})

	t.Run("role is never editable", func(t *testing.T) {
		for _, role := range roles {
			assert.False(t, EditableFields(role).Has(FieldRole), string(role))
		}
		assert.Equal(t, contactFields, EditableFields(models.RoleRecruiter))
	})
}

func TestProjectAccount(t *testing.T) {
	artist := &models.Account{
		BaseModel: models.BaseModel{ID: models.NewID()},
		Name:      "Asha",
		Role:      models.RoleArtist,
		Status:    models.StatusPtr(models.StatusApproved),
		Identity:  "AAD-1",
		City:      "Pune",
	}

	view := ProjectAccount(artist, models.RoleRecruiter)
	assert.Equal(t, "Pune", view["city"])
	assert.Equal(t, models.StatusApproved, view["status"])
	assert.Equal(t, []string{}, view["photos"])
	assert.NotContains(t, view, "identity")
	assert.NotContains(t, view, "role")
	assert.NotContains(t, view, "profilePic")

	assert.Equal(t, "AAD-1", ProjectAccount(artist, models.RoleAdmin)["identity"])
}

func TestSortByRecency(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := models.Account{BaseModel: models.BaseModel{ID: "a", CreatedAt: base}}
	newer := models.Account{BaseModel: models.BaseModel{ID: "b", CreatedAt: base.Add(time.Hour)}}
	tieLow := models.Account{BaseModel: models.BaseModel{ID: "c", CreatedAt: base}}

	accounts := []models.Account{older, newer, tieLow}
	SortByRecency(accounts)
	assert.Equal(t, []string{"b", "c", "a"}, []string{accounts[0].ID, accounts[1].ID, accounts[2].ID})

	t.Run("missing creation time falls back to the id", func(t *testing.T) {
		first := models.Account{BaseModel: models.BaseModel{ID: models.NewID()}}
		time.Sleep(2 * time.Millisecond)
		second := models.Account{BaseModel: models.BaseModel{ID: models.NewID()}}

		list := []models.Account{first, second}
		SortByRecency(list)
		assert.Equal(t, second.ID, list[0].ID)
	})
}
