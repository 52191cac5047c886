package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chaitali929/coremodeling/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

var accountColumns = []string{"id", "name", "email", "role", "status", "photos", "videos", "created_at"}

func TestAccountRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow("acc-1", "Asha", "asha@example.com", "artist", "pending", "{p1.jpg,p2.jpg}", "{}", time.Now()))

	account, err := repo.FindByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", account.Name)
	assert.Equal(t, models.StatusPending, account.CurrentStatus())
	assert.Equal(t, []string{"p1.jpg", "p2.jpg"}, []string(account.Photos))
	assert.Empty(t, account.Videos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindArtists(t *testing.T) {
	approved := models.StatusApproved

	tests := []struct {
		name   string
		filter ArtistFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "approved only",
			filter: ArtistFilter{Status: &approved},
			query:  `SELECT \* FROM "accounts" WHERE role = \$1 AND status = \$2 ORDER BY created_at DESC,id DESC`,
			args:   []driver.Value{"artist", "approved"},
		},
		{
			name:   "every status",
			filter: ArtistFilter{},
			query:  `SELECT \* FROM "accounts" WHERE role = \$1 ORDER BY created_at DESC,id DESC`,
			args:   []driver.Value{"artist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAccountRepository(db)

			mock.ExpectQuery(tt.query).WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(accountColumns).
					AddRow("acc-1", "Asha", "asha@example.com", "artist", "approved", "{}", "{}", time.Now()))

			artists, err := repo.FindArtists(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, artists, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_AppendMedia(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "videos"=array_append\(COALESCE\(videos, '\{\}'\), \$1\)`).
		WithArgs("https://cdn/v.mp4", sqlmock.AnyArg(), "acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow("acc-1", "Asha", "asha@example.com", "artist", "approved", "{}", "{https://cdn/v.mp4}", time.Now()))

	account, err := repo.AppendMedia(context.Background(), "acc-1", models.MediaVideo, "https://cdn/v.mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/v.mp4"}, []string(account.Videos))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_AppendMediaUnknownAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "photos"=array_append`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.AppendMedia(context.Background(), "ghost", models.MediaPhoto, "u")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_SyncStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET "status"=\$1,"updated_at"=\$2 WHERE account_id = \$3`).
		WithArgs("rejected", sqlmock.AnyArg(), "acc-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.SyncStatus(context.Background(), "acc-1", models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_SyncStatusFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.SyncStatus(context.Background(), "acc-1", models.StatusApproved)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivergenceRepository_MarkResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDivergenceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cascade_divergences" SET "resolved_at"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "div-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkResolved(context.Background(), "div-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDivergenceRepository_FindOpen(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDivergenceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "cascade_divergences" WHERE resolved_at IS NULL ORDER BY created_at ASC LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status", "attempts"}).
			AddRow("div-1", "acc-1", "approved", 2))

	open, err := repo.FindOpen(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "acc-1", open[0].AccountID)
	assert.Equal(t, 2, open[0].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
