package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
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

type GalleryService interface {
	AddMedia(ctx context.Context, requester auth.Identity, ownerID string, kind models.MediaKind, file dto.MediaFile) (*dto.GalleryResponse, error)
	ListGallery(ctx context.Context, requester auth.Identity, ownerID string) (*dto.GalleryResponse, error)
}

type galleryService struct {
	accounts repositories.AccountRepository
	uploader *mediaUploader
	locker   locker.Locker
}

func NewGalleryService(accounts repositories.AccountRepository, store storage.Storage, lk locker.Locker) GalleryService {
	return &galleryService{
		accounts: accounts,
		uploader: newMediaUploader(store),
		locker:   lk,
	}
}

func (s *galleryService) AddMedia(ctx context.Context, requester auth.Identity, ownerID string, kind models.MediaKind, file dto.MediaFile) (*dto.GalleryResponse, error) {
	if !kind.IsValid() {
		return nil, apperrors.NewValidationError("gallery", "type must be photo or video").
			WithDetails(map[string]string{"type": string(kind)})
	}
	if !requester.Owns(ownerID) {
		return nil, apperrors.NewForbiddenError("You can only upload to your own gallery")
	}

	if _, err := s.accounts.FindByID(ctx, ownerID); err != nil {
		return nil, accountLookupError(err)
	}

	obj, err := s.uploader.upload(ctx, ownerID, kind.Folder(), file)
	if err != nil {
		metrics.MediaUpload(string(kind), metrics.ResultError)
		logger.CtxWithError(ctx, "media upload failed", err, "owner_id", ownerID, "kind", kind)
		return nil, apperrors.NewUploadError(err)
	}

	unlock, err := s.locker.Lock(ctx, locker.GalleryKey(ownerID))
	if err != nil {
		s.uploader.discard(ctx, obj.key)
		return nil, lockError(err)
	}
	defer unlock()

	account, err := s.accounts.AppendMedia(ctx, ownerID, kind, obj.url)
	if err != nil {
		s.uploader.discard(ctx, obj.key)
		metrics.MediaUpload(string(kind), metrics.ResultError)
		return nil, accountLookupError(err)
	}

	metrics.MediaUpload(string(kind), metrics.ResultOK)
	logger.CtxInfo(ctx, "media added", "owner_id", ownerID, "kind", kind, "url", obj.url)
	return dto.NewGalleryResponse(account, false), nil
}

func (s *galleryService) ListGallery(ctx context.Context, requester auth.Identity, ownerID string) (*dto.GalleryResponse, error) {
	if !requester.Owns(ownerID) && !requester.Can(auth.PermReadAnyGallery) {
		return nil, apperrors.NewForbiddenError("Access to this gallery denied")
	}

	account, err := s.accounts.FindByID(ctx, ownerID)
	if err != nil {
		return nil, accountLookupError(err)
	}
	return dto.NewGalleryResponse(account, true), nil
}

// =========================================================================
// Object store access shared by gallery and profile updates
// =========================================================================

type storedObject struct {
	key string
	url string
}

type mediaUploader struct {
	store storage.Storage
}

func newMediaUploader(store storage.Storage) *mediaUploader {
	return &mediaUploader{store: store}
}

// upload writes the file under users/<owner>/<folder>/ and returns its durable URL.
func (u *mediaUploader) upload(ctx context.Context, ownerID, folder string, file dto.MediaFile) (*storedObject, error) {
	if file.Open == nil {
		return nil, errors.New("file has no content")
	}
	r, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer r.Close()

	contentType := contentTypeOf(file)
	key := fmt.Sprintf("users/%s/%s/%s%s", ownerID, folder, models.NewID(), extensionOf(file.Filename, contentType))

	if err := u.store.Save(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	url, err := u.store.GetURL(ctx, key)
	if err != nil {
		u.discard(ctx, key)
		return nil, err
	}
	return &storedObject{key: key, url: url}, nil
}

// discard removes objects that will never be referenced. Failures only leave orphans.
func (u *mediaUploader) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := u.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.CtxWarn(ctx, "failed to remove orphaned object", "key", key, "error", err)
		}
	}
}

func contentTypeOf(file dto.MediaFile) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func extensionOf(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 10 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// MediaKindOf classifies a file of a profile batch by content type, then by extension.
func MediaKindOf(file dto.MediaFile) (models.MediaKind, bool) {
	byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	for _, ct := range []string{file.ContentType, byExt} {
		switch {
		case strings.HasPrefix(ct, "image/"):
			return models.MediaPhoto, true
		case strings.HasPrefix(ct, "video/"):
			return models.MediaVideo, true
		}
	}
	return "", false
}

// =========================================================================
// Error mapping shared by the services
// =========================================================================

func accountLookupError(err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.NewNotFoundError("account", "Account not found")
	}
	return apperrors.StoreError(err, "account")
}

func lockError(err error) error {
	return apperrors.Wrap(err, apperrors.CodeInternalError, "system", "Resource is busy, try again", http.StatusServiceUnavailable).AsRetryable()
}
