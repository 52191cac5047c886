package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/test/helpers"
)

type testEnv struct {
	db           *helpers.MemoryDB
	store        *helpers.MemoryStorage
	accounts     repositories.AccountRepository
	applications repositories.ApplicationRepository
	divergences  repositories.DivergenceRepository
	locker       *locker.LocalLocker
	notifier     *recordingNotifier

	admin     auth.Identity
	recruiter *models.Account
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := helpers.NewMemoryDB()
	accounts, applications, divergences := db.Repositories()
	env := &testEnv{
		db:           db,
		store:        helpers.NewMemoryStorage(),
		accounts:     accounts,
		applications: applications,
		divergences:  divergences,
		locker:       locker.NewLocalLocker(),
		notifier:     &recordingNotifier{},
	}
	admin := helpers.CreateAccount(t, accounts, "Root", "admin@test.com", models.RoleAdmin)
	env.admin = helpers.IdentityOf(admin)
	env.recruiter = helpers.CreateAccount(t, accounts, "Rita", "rita@test.com", models.RoleRecruiter)
	return env
}

func (e *testEnv) statusService() StatusService {
	return NewStatusService(e.accounts, e.applications, e.divergences, e.locker, e.notifier)
}

func (e *testEnv) artist(t *testing.T, name, email string, status ...models.AccountStatus) *models.Account {
	return helpers.CreateAccount(t, e.accounts, name, email, models.RoleArtist, status...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.AccountStatus
	done chan struct{}
}

func (n *recordingNotifier) NotifyStatusChanged(ctx context.Context, account *models.Account) error {
	n.mu.Lock()
	n.sent = append(n.sent, account.CurrentStatus())
	done := n.done
	n.mu.Unlock()
	if done != nil {
		done <- struct{}{}
	}
	return nil
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	if assert.True(t, ok, "expected AppError, got %v", err) {
		assert.Equal(t, code, appErr.Code)
	}
}

func repositoriesChanges(fields map[string]interface{}) repositories.ProfileChanges {
	return repositories.ProfileChanges{Fields: fields}
}
