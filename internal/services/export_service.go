package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/repositories"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

const artistSheet = "Artists"

var artistExportHeader = []interface{}{
	"ID", "Name", "Email", "Status", "Contact", "City", "State", "Country", "Photos", "Videos", "Registered",
}

// ExportService builds spreadsheets for admins.
type ExportService interface {
	ExportArtists(ctx context.Context, requester auth.Identity) (*bytes.Buffer, error)
}

type exportService struct {
	accounts repositories.AccountRepository
}

func NewExportService(accounts repositories.AccountRepository) ExportService {
	return &exportService{accounts: accounts}
}

func (s *exportService) ExportArtists(ctx context.Context, requester auth.Identity) (*bytes.Buffer, error) {
	if !requester.Can(auth.PermExportArtists) {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}

	artists, err := s.accounts.FindArtists(ctx, repositories.ArtistFilter{})
	if err != nil {
		return nil, apperrors.StoreError(err, "artist")
	}
	SortByRecency(artists)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", artistSheet); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := f.SetSheetRow(artistSheet, "A1", &artistExportHeader); err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range artists {
		a := &artists[i]
		row := []interface{}{
			a.ID, a.Name, a.Email, string(a.CurrentStatus()), a.Contact, a.City, a.State, a.Country,
			len(a.Photos), len(a.Videos), a.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(artistSheet, cell, &row); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buf, nil
}
