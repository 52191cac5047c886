package services

import (
	"context"

	"gorm.io/datatypes"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

type ApplicationService interface {
	// Apply creates an application that starts with the artist's current status.
	Apply(ctx context.Context, requester auth.Identity, req *dto.ApplyRequest) (*models.Application, error)
	ListMine(ctx context.Context, requester auth.Identity) ([]models.Application, error)
	ListForAccount(ctx context.Context, requester auth.Identity, accountID string) ([]models.Application, error)
}

type applicationService struct {
	accounts     repositories.AccountRepository
	applications repositories.ApplicationRepository
	locker       locker.Locker
}

func NewApplicationService(accounts repositories.AccountRepository, applications repositories.ApplicationRepository, lk locker.Locker) ApplicationService {
	return &applicationService{accounts: accounts, applications: applications, locker: lk}
}

func (s *applicationService) Apply(ctx context.Context, requester auth.Identity, req *dto.ApplyRequest) (*models.Application, error) {
	if !requester.Can(auth.PermApply) {
		return nil, apperrors.NewForbiddenError("Only artists can apply")
	}

	// same lock as status changes, so a new application cannot miss a running cascade
	unlock, err := s.locker.Lock(ctx, locker.AccountKey(requester.AccountID))
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	account, err := s.accounts.FindByID(ctx, requester.AccountID)
	if err != nil {
		return nil, accountLookupError(err)
	}

	application := &models.Application{
		AccountID: account.ID,
		Status:    account.CurrentStatus(),
		Title:     req.Title,
	}
	if len(req.Details) > 0 {
		application.Details = datatypes.JSON(req.Details)
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, apperrors.StoreError(err, "application")
	}
	return application, nil
}

func (s *applicationService) ListMine(ctx context.Context, requester auth.Identity) ([]models.Application, error) {
	apps, err := s.applications.FindByAccount(ctx, requester.AccountID)
	if err != nil {
		return nil, apperrors.StoreError(err, "application")
	}
	return apps, nil
}

func (s *applicationService) ListForAccount(ctx context.Context, requester auth.Identity, accountID string) ([]models.Application, error) {
	if !requester.Owns(accountID) && !requester.Can(auth.PermReadApplications) {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, accountLookupError(err)
	}
	apps, err := s.applications.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.StoreError(err, "application")
	}
	return apps, nil
}
