package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/logger"
	"github.com/chaitali929/coremodeling/internal/metrics"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

// StatusNotifier is told about every committed status decision.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, account *models.Account) error
}

type StatusService interface {
	// SetStatus records an admin decision and cascades it to the artist's applications.
	// When the cascade fails the account keeps the new status and a PARTIAL_UPDATE error is returned.
	SetStatus(ctx context.Context, requester auth.Identity, accountID string, status models.AccountStatus) (*models.Account, error)
	// RepairDivergences re-runs failed cascades using each account's current status.
	RepairDivergences(ctx context.Context, limit int) (repaired, failed int, err error)
}

type statusService struct {
	accounts     repositories.AccountRepository
	applications repositories.ApplicationRepository
	divergences  repositories.DivergenceRepository
	locker       locker.Locker
	notifier     StatusNotifier
}

func NewStatusService(
	accounts repositories.AccountRepository,
	applications repositories.ApplicationRepository,
	divergences repositories.DivergenceRepository,
	lk locker.Locker,
	notifier StatusNotifier,
) StatusService {
	return &statusService{
		accounts:     accounts,
		applications: applications,
		divergences:  divergences,
		locker:       lk,
		notifier:     notifier,
	}
}

func (s *statusService) SetStatus(ctx context.Context, requester auth.Identity, accountID string, status models.AccountStatus) (*models.Account, error) {
	if !requester.Can(auth.PermSetArtistStatus) {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}
	if !status.IsDecision() {
		return nil, apperrors.NewValidationError("artist", "Invalid status").
			WithDetails(map[string]string{"status": "must be approved or rejected"})
	}

	unlock, err := s.locker.Lock(ctx, locker.AccountKey(accountID))
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	current, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, artistLookupError(err)
	}
	if !current.IsArtist() {
		return nil, apperrors.NewNotFoundError("artist", "Artist not found")
	}

	updated, err := s.accounts.UpdateStatus(ctx, accountID, status)
	if err != nil {
		metrics.StatusTransition(string(status), metrics.ResultError)
		return nil, artistLookupError(err)
	}

	log := logger.FromContext(ctx).With("account_id", accountID, "from", current.CurrentStatus(), "to", status)

	touched, err := s.applications.SyncStatus(ctx, accountID, status)
	if err != nil {
		metrics.StatusTransition(string(status), metrics.ResultPartial)
		metrics.CascadeDivergence()
		log.Error("status cascade failed, account already updated", "error", err)
		s.recordDivergence(ctx, accountID, status, err)

		return updated, apperrors.NewPartialUpdateError(err, "artist",
			fmt.Sprintf("Artist %s but applications were not updated", status)).
			WithDetails(map[string]string{"accountId": accountID, "status": string(status)})
	}

	metrics.StatusTransition(string(status), metrics.ResultOK)
	log.Info("artist status updated", "applications", touched)

	s.notify(ctx, updated)
	return updated, nil
}

func (s *statusService) recordDivergence(ctx context.Context, accountID string, status models.AccountStatus, cause error) {
	d := &models.CascadeDivergence{
		AccountID: accountID,
		Status:    status,
		LastError: cause.Error(),
	}
	if err := s.divergences.Record(context.WithoutCancel(ctx), d); err != nil {
		logger.CtxWithError(ctx, "failed to record cascade divergence", err, "account_id", accountID)
	}
}

func (s *statusService) notify(ctx context.Context, account *models.Account) {
	if s.notifier == nil {
		return
	}
	bg := context.WithoutCancel(ctx)
	snapshot := *account
	go func() {
		if err := s.notifier.NotifyStatusChanged(bg, &snapshot); err != nil {
			logger.CtxWarn(bg, "status notification failed", "account_id", snapshot.ID, "error", err)
		}
	}()
}

func (s *statusService) RepairDivergences(ctx context.Context, limit int) (int, int, error) {
	open, err := s.divergences.FindOpen(ctx, limit)
	if err != nil {
		return 0, 0, err
	}

	var repaired, failed int
	for _, d := range open {
		if err := s.repair(ctx, d); err != nil {
			failed++
			metrics.CascadeRepair(metrics.ResultError)
			if recErr := s.divergences.RecordAttempt(ctx, d.ID, err.Error()); recErr != nil {
				logger.CtxWithError(ctx, "failed to record repair attempt", recErr, "divergence_id", d.ID)
			}
			continue
		}
		repaired++
		metrics.CascadeRepair(metrics.ResultOK)
	}
	return repaired, failed, nil
}

// repair syncs applications to the account's status now, which may differ from the diverged one.
func (s *statusService) repair(ctx context.Context, d models.CascadeDivergence) error {
	unlock, err := s.locker.Lock(ctx, locker.AccountKey(d.AccountID))
	if err != nil {
		return err
	}
	defer unlock()

	account, err := s.accounts.FindByID(ctx, d.AccountID)
	if err != nil {
		return err
	}
	if account.Status != nil {
		if _, err := s.applications.SyncStatus(ctx, d.AccountID, *account.Status); err != nil {
			return err
		}
	}
	return s.divergences.MarkResolved(ctx, d.ID)
}

func artistLookupError(err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.NewNotFoundError("artist", "Artist not found")
	}
	return apperrors.StoreError(err, "artist")
}
