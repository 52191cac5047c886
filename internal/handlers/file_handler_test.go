package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/handlers"
	"github.com/chaitali929/coremodeling/internal/storage"
	"github.com/chaitali929/coremodeling/internal/validator"
)

func TestServeLocalFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/files"})
	require.NoError(t, err)
	require.NoError(t, local.Save(context.Background(), "users/u1/photos/a.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg"))

	r := gin.New()
	handlers.NewFileHandler(handlers.NewBaseHandler(validator.New()), local).RegisterRoutes(r)

	url, err := local.GetURL(context.Background(), "users/u1/photos/a.jpg")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/users/u1/photos/missing.jpg", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
