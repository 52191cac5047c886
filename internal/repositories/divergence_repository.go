package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chaitali929/coremodeling/internal/models"
)

// DivergenceRepository stores cascades that failed after the account write.
type DivergenceRepository interface {
	Record(ctx context.Context, divergence *models.CascadeDivergence) error
	FindOpen(ctx context.Context, limit int) ([]models.CascadeDivergence, error)
	MarkResolved(ctx context.Context, id string) error
	RecordAttempt(ctx context.Context, id string, lastError string) error
}

type DivergenceRepositoryImpl struct {
	db *gorm.DB
}

func NewDivergenceRepository(db *gorm.DB) DivergenceRepository {
	return &DivergenceRepositoryImpl{db: db}
}

func (r *DivergenceRepositoryImpl) Record(ctx context.Context, divergence *models.CascadeDivergence) error {
	return r.db.WithContext(ctx).Create(divergence).Error
}

func (r *DivergenceRepositoryImpl) FindOpen(ctx context.Context, limit int) ([]models.CascadeDivergence, error) {
	var open []models.CascadeDivergence
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&open).Error
	return open, err
}

func (r *DivergenceRepositoryImpl) MarkResolved(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.CascadeDivergence{}).
		Where("id = ?", id).
		Update("resolved_at", time.Now()).Error
}

func (r *DivergenceRepositoryImpl) RecordAttempt(ctx context.Context, id string, lastError string) error {
	return r.db.WithContext(ctx).Model(&models.CascadeDivergence{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
}
