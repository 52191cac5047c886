package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

type VisibilityService interface {
	// ListArtists returns artist accounts: every status for admins, approved only for anyone else.
	ListArtists(ctx context.Context, requesterRole models.AccountRole) ([]models.Account, error)
	FieldsVisibleTo(viewerRole, accountRole models.AccountRole) FieldSet
}

type visibilityService struct {
	accounts repositories.AccountRepository
}

func NewVisibilityService(accounts repositories.AccountRepository) VisibilityService {
	return &visibilityService{accounts: accounts}
}

func (s *visibilityService) ListArtists(ctx context.Context, requesterRole models.AccountRole) ([]models.Account, error) {
	filter := repositories.ArtistFilter{}
	if !auth.HasPermission(requesterRole, auth.PermListAllArtists) {
		filter.Status = models.StatusPtr(models.StatusApproved)
	}

	artists, err := s.accounts.FindArtists(ctx, filter)
	if err != nil {
		return nil, apperrors.StoreError(err, "artist")
	}
	return artists, nil
}

func (s *visibilityService) FieldsVisibleTo(viewerRole, accountRole models.AccountRole) FieldSet {
	return FieldsVisibleTo(viewerRole, accountRole)
}

// SortByRecency orders newest first. A missing creation time falls back to the time in the UUIDv7 id.
// Ties are broken by id.
func SortByRecency(accounts []models.Account) {
	keys := make(map[string]time.Time, len(accounts))
	for i := range accounts {
		keys[accounts[i].ID] = recencyKey(&accounts[i])
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		ki, kj := keys[accounts[i].ID], keys[accounts[j].ID]
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return accounts[i].ID > accounts[j].ID
	})
}

func recencyKey(a *models.Account) time.Time {
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt
	}
	if id, err := uuid.Parse(a.ID); err == nil && id.Version() == 7 {
		sec, nsec := id.Time().UnixTime()
		return time.Unix(sec, nsec)
	}
	return time.Time{}
}
