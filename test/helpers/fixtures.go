package helpers

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/services/dto"
)

const TestPassword = "password123"

// CreateAccount stores an account with a hashed TestPassword. Artists start pending unless status is given.
func CreateAccount(t *testing.T, repo repositories.AccountRepository, name, email string, role models.AccountRole, status ...models.AccountStatus) *models.Account {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	require.NoError(t, err)

	account := &models.Account{Name: name, Email: email, PasswordHash: hash, Role: role}
	if role == models.RoleArtist {
		account.Status = models.StatusPtr(models.StatusPending)
	}
	if len(status) > 0 {
		account.Status = models.StatusPtr(status[0])
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

// CreateApplication stores an application carrying the account's current status.
func CreateApplication(t *testing.T, repo repositories.ApplicationRepository, account *models.Account, title string) *models.Application {
	t.Helper()
	app := &models.Application{AccountID: account.ID, Status: account.CurrentStatus(), Title: title}
	require.NoError(t, repo.Create(context.Background(), app))
	return app
}

// IdentityOf is the identity a token for account would carry.
func IdentityOf(account *models.Account) auth.Identity {
	return auth.Identity{AccountID: account.ID, Role: account.Role}
}

// MediaFileOf builds an in-memory upload.
func MediaFileOf(filename, contentType string, content []byte) dto.MediaFile {
	return dto.MediaFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}
