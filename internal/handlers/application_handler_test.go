package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/test/testserver"
)

func TestApplications(t *testing.T) {
	ts := testserver.New(t)
	token, artist := ts.CreateAndLogin(t, "Asha", "asha@test.com", models.RoleArtist, models.StatusApproved)
	recruiterToken, _ := ts.CreateAndLogin(t, "Rita", "rita@test.com", models.RoleRecruiter)

	t.Run("artist applies with current status", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", token, map[string]interface{}{
			"title": "Stage show", "details": map[string]string{"slot": "evening"},
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)

		var app map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &app))
		assert.Equal(t, "approved", app["status"])
		assert.Equal(t, "Stage show", app["title"])
		assert.Len(t, ts.DB.Applications(artist.ID), 1)
	})

	t.Run("recruiter cannot apply", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", recruiterToken, map[string]string{"title": "Stage show"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Equal(t, "FORBIDDEN", testserver.ErrorCode(t, body))
	})

	t.Run("title is required", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/applications", token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("list mine", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/applications", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var apps []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &apps))
		assert.Len(t, apps, 1)
	})
}
