package services

import (
	"context"
	"errors"
	"strings"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/logger"
	"github.com/chaitali929/coremodeling/internal/metrics"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/internal/storage"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

const maxIdentityLength = 100

// ProfileUpdate is one merge request: field patch, media batch and an optional new profile picture.
type ProfileUpdate struct {
	Patch      *dto.ProfilePatch
	Media      []dto.MediaFile
	ProfilePic *dto.MediaFile
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, requester auth.Identity, accountID string, update ProfileUpdate) (*models.Account, error)
}

type profileService struct {
	accounts repositories.AccountRepository
	uploader *mediaUploader
	locker   locker.Locker
}

func NewProfileService(accounts repositories.AccountRepository, store storage.Storage, lk locker.Locker) ProfileService {
	return &profileService{
		accounts: accounts,
		uploader: newMediaUploader(store),
		locker:   lk,
	}
}

func (s *profileService) UpdateProfile(ctx context.Context, requester auth.Identity, accountID string, update ProfileUpdate) (*models.Account, error) {
	if !requester.Owns(accountID) {
		return nil, apperrors.NewForbiddenError("You can only edit your own profile")
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, accountLookupError(err)
	}

	fields, err := s.editableChanges(ctx, account, update.Patch)
	if err != nil {
		return nil, err
	}

	if email, ok := fields[FieldEmail.Column()].(string); ok {
		if err := s.ensureEmailFree(ctx, accountID, email); err != nil {
			return nil, err
		}
	}

	kinds := make([]models.MediaKind, len(update.Media))
	for i, file := range update.Media {
		kind, ok := MediaKindOf(file)
		if !ok {
			return nil, apperrors.NewValidationError("profile", "Unsupported media file").
				WithDetails(map[string]string{"file": file.Filename})
		}
		kinds[i] = kind
	}

	changes := repositories.ProfileChanges{Fields: fields}
	var stored []string

	// every upload must succeed before anything is written
	for i, file := range update.Media {
		obj, err := s.uploader.upload(ctx, accountID, kinds[i].Folder(), file)
		if err != nil {
			metrics.MediaUpload(string(kinds[i]), metrics.ResultError)
			s.uploader.discard(ctx, stored...)
			logger.CtxWithError(ctx, "profile media upload failed", err, "account_id", accountID)
			return nil, apperrors.NewUploadError(err)
		}
		stored = append(stored, obj.key)
		if kinds[i] == models.MediaVideo {
			changes.Videos = append(changes.Videos, obj.url)
		} else {
			changes.Photos = append(changes.Photos, obj.url)
		}
	}

	if update.ProfilePic != nil {
		obj, err := s.uploader.upload(ctx, accountID, "profile", *update.ProfilePic)
		if err != nil {
			s.uploader.discard(ctx, stored...)
			logger.CtxWithError(ctx, "profile picture upload failed", err, "account_id", accountID)
			return nil, apperrors.NewUploadError(err)
		}
		stored = append(stored, obj.key)
		changes.ProfilePic = &obj.url
	}

	if changes.IsEmpty() {
		return account, nil
	}

	unlock, err := s.locker.Lock(ctx, locker.GalleryKey(accountID))
	if err != nil {
		s.uploader.discard(ctx, stored...)
		return nil, lockError(err)
	}
	defer unlock()

	updated, err := s.accounts.ApplyProfileChanges(ctx, accountID, changes)
	if err != nil {
		s.uploader.discard(ctx, stored...)
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.NewConflictError("account", "Email already in use")
		}
		return nil, accountLookupError(err)
	}

	for _, kind := range kinds {
		metrics.MediaUpload(string(kind), metrics.ResultOK)
	}
	logger.CtxInfo(ctx, "profile updated",
		"account_id", accountID,
		"fields", len(fields),
		"photos", len(changes.Photos),
		"videos", len(changes.Videos),
	)
	return updated, nil
}

// editableChanges keeps the patch fields the owner's role may edit. Others are dropped silently.
func (s *profileService) editableChanges(ctx context.Context, account *models.Account, patch *dto.ProfilePatch) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if patch == nil {
		return fields, nil
	}

	editable := EditableFields(account.Role)
	for name, value := range patch.Values() {
		f := Field(name)
		if !editable.Has(f) {
			logger.CtxDebug(ctx, "ignoring non-editable profile field", "field", name, "role", account.Role)
			continue
		}
		if f == FieldIdentity && len(value) > maxIdentityLength {
			return nil, apperrors.NewValidationError("profile", "Identity is too long").
				WithDetails(map[string]string{"identity": "Must be at most 100 characters"})
		}
		if f == FieldEmail {
			value = strings.ToLower(strings.TrimSpace(value))
			if value == account.Email {
				continue
			}
		}
		fields[f.Column()] = value
	}
	return fields, nil
}

func (s *profileService) ensureEmailFree(ctx context.Context, accountID, email string) error {
	other, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return nil
	case err != nil:
		return apperrors.StoreError(err, "account")
	case other.ID != accountID:
		return apperrors.NewConflictError("account", "Email already in use")
	}
	return nil
}
