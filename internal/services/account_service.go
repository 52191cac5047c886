package services

import (
	"context"
	"errors"
	"strings"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/logger"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, error)
	// Authenticate checks email and password. Both failures look the same to the caller.
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	// GetProfile returns the caller's own account projected through the field table.
	GetProfile(ctx context.Context, requester auth.Identity) (map[string]interface{}, error)
	// EnsureAdmin creates the first admin when no account uses the email yet.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type accountService struct {
	accounts repositories.AccountRepository
}

func NewAccountService(accounts repositories.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Account, error) {
	if req.Role != models.RoleArtist && req.Role != models.RoleRecruiter {
		return nil, apperrors.NewValidationError("account", "Role must be artist or recruiter")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("account", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		Contact:      req.Contact,
		Gender:       req.Gender,
		City:         req.City,
	}
	if account.IsArtist() {
		account.Status = models.StatusPtr(models.StatusPending)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.NewConflictError("account", "Email already in use")
		}
		return nil, apperrors.StoreError(err, "account")
	}

	logger.CtxInfo(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return account, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.StoreError(err, "account")
	}
	if !auth.CheckPasswordHash(password, account.PasswordHash) {
		logger.CtxWarn(ctx, "failed login attempt", "account_id", account.ID)
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	return account, nil
}

func (s *accountService) GetProfile(ctx context.Context, requester auth.Identity) (map[string]interface{}, error) {
	account, err := s.accounts.FindByID(ctx, requester.AccountID)
	if err != nil {
		return nil, accountLookupError(err)
	}
	return ProjectAccount(account, account.Role), nil
}

func (s *accountService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrAccountNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Administrator"
	}
	admin := &models.Account{Name: name, Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	if err := s.accounts.Create(ctx, admin); err != nil && !errors.Is(err, repositories.ErrEmailTaken) {
		return err
	}
	logger.CtxInfo(ctx, "first admin seeded", "email", email)
	return nil
}
