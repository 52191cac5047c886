package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/test/helpers"
)

func TestExportArtists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewExportService(env.accounts)
	env.artist(t, "Pia", "pia@test.com")
	env.artist(t, "Ana", "ana@test.com", models.StatusApproved)

	buf, err := svc.ExportArtists(ctx, env.admin)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(artistSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "approved", rows[1][3])
	assert.Equal(t, "Pia", rows[2][1])

	_, err = svc.ExportArtists(ctx, helpers.IdentityOf(env.recruiter))
	assertCode(t, err, apperrors.CodeForbidden)
}
