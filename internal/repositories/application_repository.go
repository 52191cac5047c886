package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/chaitali929/coremodeling/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByAccount(ctx context.Context, accountID string) ([]models.Application, error)
	// SyncStatus sets status on every application of the account and returns the number touched.
	SyncStatus(ctx context.Context, accountID string, status models.AccountStatus) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByAccount(ctx context.Context, accountID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) SyncStatus(ctx context.Context, accountID string, status models.AccountStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("account_id = ?", accountID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
