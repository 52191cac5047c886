package repositories

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chaitali929/coremodeling/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already in use")
)

// ArtistFilter narrows FindArtists. A nil Status returns artists in every status.
type ArtistFilter struct {
	Status *models.AccountStatus
}

// ProfileChanges is applied in a single transaction. Fields are keyed by column name.
type ProfileChanges struct {
	Fields     map[string]interface{}
	Photos     []string
	Videos     []string
	ProfilePic *string
}

func (c ProfileChanges) IsEmpty() bool {
	return len(c.Fields) == 0 && len(c.Photos) == 0 && len(c.Videos) == 0 && c.ProfilePic == nil
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindArtists(ctx context.Context, filter ArtistFilter) ([]models.Account, error)
	UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.Account, error)
	AppendMedia(ctx context.Context, id string, kind models.MediaKind, url string) (*models.Account, error)
	ApplyProfileChanges(ctx context.Context, id string, changes ProfileChanges) (*models.Account, error)
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *models.Account) error {
	var existing models.Account
	if err := r.db.WithContext(ctx).Select("id").Where("email = ?", account.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return findAccount(r.db.WithContext(ctx), "id = ?", id)
}

func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return findAccount(r.db.WithContext(ctx), "email = ?", email)
}

func findAccount(db *gorm.DB, query string, arg interface{}) (*models.Account, error) {
	var account models.Account
	if err := db.Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindArtists(ctx context.Context, filter ArtistFilter) ([]models.Account, error) {
	var accounts []models.Account
	query := r.db.WithContext(ctx).Where("role = ?", models.RoleArtist)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&accounts).Error
	return accounts, err
}

// UpdateStatus locks the row for the duration of the write.
func (r *AccountRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.Account, error) {
	var account *models.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := findAccount(tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Model(locked).Update("status", status).Error; err != nil {
			return err
		}
		locked.Status = models.StatusPtr(status)
		account = locked
		return nil
	})
	return account, err
}

// AppendMedia appends url with array_append, so concurrent appends never lose entries.
func (r *AccountRepositoryImpl) AppendMedia(ctx context.Context, id string, kind models.MediaKind, url string) (*models.Account, error) {
	column := kind.Column()
	res := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).
		Update(column, gorm.Expr("array_append(COALESCE("+column+", '{}'), ?)", url))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAccountNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *AccountRepositoryImpl) ApplyProfileChanges(ctx context.Context, id string, changes ProfileChanges) (*models.Account, error) {
	var account *models.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findAccount(tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id); err != nil {
			return err
		}

		updates := make(map[string]interface{}, len(changes.Fields)+3)
		for column, value := range changes.Fields {
			updates[column] = value
		}
		if len(changes.Photos) > 0 {
			updates["photos"] = gorm.Expr("array_cat(COALESCE(photos, '{}'), ?)", pq.StringArray(changes.Photos))
		}
		if len(changes.Videos) > 0 {
			updates["videos"] = gorm.Expr("array_cat(COALESCE(videos, '{}'), ?)", pq.StringArray(changes.Videos))
		}
		if changes.ProfilePic != nil {
			updates["profile_pic"] = *changes.ProfilePic
		}

		if len(updates) > 0 {
			err := tx.Model(&models.Account{}).Where("id = ?", id).Updates(updates).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			if err != nil {
				return err
			}
		}

		updated, err := findAccount(tx, "id = ?", id)
		account = updated
		return err
	})
	return account, err
}
