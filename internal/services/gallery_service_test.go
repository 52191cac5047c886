package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/internal/storage"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/test/helpers"
)

func jpeg(name string) dto.MediaFile {
	return helpers.MediaFileOf(name, "image/jpeg", []byte("jpeg-bytes-"+name))
}

func TestAddMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("appends in upload order", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")
		me := helpers.IdentityOf(artist)

		first, err := svc.AddMedia(ctx, me, artist.ID, models.MediaPhoto, jpeg("one.jpg"))
		require.NoError(t, err)
		require.Len(t, first.Photos, 1)

		second, err := svc.AddMedia(ctx, me, artist.ID, models.MediaPhoto, jpeg("two.jpg"))
		require.NoError(t, err)
		require.Len(t, second.Photos, 2)
		assert.Equal(t, first.Photos[0], second.Photos[0])
		assert.NotEqual(t, second.Photos[0], second.Photos[1])
		assert.Empty(t, second.Videos)
		assert.Equal(t, "Asha", second.Name)

		prefix := fmt.Sprintf("https://cdn.test/users/%s/photos/", artist.ID)
		for _, url := range second.Photos {
			assert.True(t, strings.HasPrefix(url, prefix), url)
			assert.True(t, strings.HasSuffix(url, ".jpg"), url)
		}
		assert.Len(t, env.store.Keys(), 2)
	})

	t.Run("videos go to the video sequence", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")

		resp, err := svc.AddMedia(ctx, helpers.IdentityOf(artist), artist.ID, models.MediaVideo,
			helpers.MediaFileOf("reel.mp4", "video/mp4", []byte("mp4")))
		require.NoError(t, err)
		assert.Empty(t, resp.Photos)
		require.Len(t, resp.Videos, 1)
		assert.Contains(t, resp.Videos[0], "/videos/")
	})

	t.Run("rejects bad kind and foreign galleries", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")

		_, err := svc.AddMedia(ctx, helpers.IdentityOf(artist), artist.ID, "audio", jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeValidationFailed)

		_, err = svc.AddMedia(ctx, env.admin, artist.ID, models.MediaPhoto, jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeForbidden)

		assert.Empty(t, env.store.Keys())
	})

	t.Run("unknown owner", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		ghost := models.NewID()

		_, err := svc.AddMedia(ctx, helpers.IdentityOf(&models.Account{BaseModel: models.BaseModel{ID: ghost}, Role: models.RoleArtist}),
			ghost, models.MediaPhoto, jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("upload failure leaves the gallery unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.SaveErr = errors.New("bucket unavailable")
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")

		_, err := svc.AddMedia(ctx, helpers.IdentityOf(artist), artist.ID, models.MediaPhoto, jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeUploadFailed)
		assert.Empty(t, env.db.Account(artist.ID).Photos)
	})

	t.Run("upload timeout", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.SaveDelay = time.Second
		slow := storage.WithTimeout(env.store, 20*time.Millisecond)
		svc := NewGalleryService(env.accounts, slow, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")

		_, err := svc.AddMedia(ctx, helpers.IdentityOf(artist), artist.ID, models.MediaPhoto, jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeUploadFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Empty(t, env.db.Account(artist.ID).Photos)
	})

	t.Run("failed append discards the stored object", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")
		env.db.FailAppend = errors.New("deadlock detected")

		_, err := svc.AddMedia(ctx, helpers.IdentityOf(artist), artist.ID, models.MediaPhoto, jpeg("a.jpg"))
		assertCode(t, err, apperrors.CodeDatabaseError)
		assert.Empty(t, env.store.Keys())
		assert.Len(t, env.store.Deleted(), 1)
	})

	t.Run("concurrent uploads are all kept", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewGalleryService(env.accounts, env.store, env.locker)
		artist := env.artist(t, "Asha", "asha@test.com")
		me := helpers.IdentityOf(artist)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.AddMedia(ctx, me, artist.ID, models.MediaPhoto, jpeg(fmt.Sprintf("p%d.jpg", i)))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.Len(t, env.db.Account(artist.ID).Photos, 10)
		assert.Equal(t, 0, env.locker.Size())
	})
}

func TestListGallery(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewGalleryService(env.accounts, env.store, env.locker)
	artist := env.artist(t, "Asha", "asha@test.com")
	me := helpers.IdentityOf(artist)

	_, err := svc.AddMedia(ctx, me, artist.ID, models.MediaVideo, helpers.MediaFileOf("r.mp4", "video/mp4", []byte("v")))
	require.NoError(t, err)
	_, err = svc.AddMedia(ctx, me, artist.ID, models.MediaPhoto, jpeg("a.jpg"))
	require.NoError(t, err)

	t.Run("owner sees photos before videos", func(t *testing.T) {
		resp, err := svc.ListGallery(ctx, me, artist.ID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "image", resp.Items[0].Kind)
		assert.Equal(t, 0, resp.Items[0].Position)
		assert.Equal(t, "video", resp.Items[1].Kind)
		assert.Equal(t, 1, resp.Items[1].Position)
	})

	t.Run("admin may read any gallery", func(t *testing.T) {
		resp, err := svc.ListGallery(ctx, env.admin, artist.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Photos, 1)
	})

	t.Run("recruiter may not", func(t *testing.T) {
		_, err := svc.ListGallery(ctx, helpers.IdentityOf(env.recruiter), artist.ID)
		assertCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.ListGallery(ctx, env.admin, models.NewID())
		assertCode(t, err, apperrors.CodeNotFound)
	})
}

func TestMediaKindOf(t *testing.T) {
	tests := []struct {
		name     string
		file     dto.MediaFile
		expected models.MediaKind
		ok       bool
	}{
		{"jpeg content type", dto.MediaFile{Filename: "x", ContentType: "image/jpeg"}, models.MediaPhoto, true},
		{"video content type", dto.MediaFile{Filename: "x.bin", ContentType: "video/quicktime"}, models.MediaVideo, true},
		{"png by extension", dto.MediaFile{Filename: "x.png"}, models.MediaPhoto, true},
		{"octet stream falls back to extension", dto.MediaFile{Filename: "x.gif", ContentType: "application/octet-stream"}, models.MediaPhoto, true},
		{"unknown", dto.MediaFile{Filename: "notes.txt", ContentType: "text/plain"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := MediaKindOf(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}
