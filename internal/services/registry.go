package services

import (
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/internal/storage"
)

// Repositories groups the stores the services depend on.
type Repositories struct {
	Accounts     repositories.AccountRepository
	Applications repositories.ApplicationRepository
	Divergences  repositories.DivergenceRepository
}

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AccountService     AccountService
	VisibilityService  VisibilityService
	StatusService      StatusService
	GalleryService     GalleryService
	ProfileService     ProfileService
	ApplicationService ApplicationService
	ExportService      ExportService
}

func NewServiceContainer(repos Repositories, store storage.Storage, lk locker.Locker, notifier StatusNotifier) *ServiceContainer {
	return &ServiceContainer{
		AccountService:     NewAccountService(repos.Accounts),
		VisibilityService:  NewVisibilityService(repos.Accounts),
		StatusService:      NewStatusService(repos.Accounts, repos.Applications, repos.Divergences, lk, notifier),
		GalleryService:     NewGalleryService(repos.Accounts, store, lk),
		ProfileService:     NewProfileService(repos.Accounts, store, lk),
		ApplicationService: NewApplicationService(repos.Accounts, repos.Applications, lk),
		ExportService:      NewExportService(repos.Accounts),
	}
}
