// Package testserver runs the full router over in-memory stores.
package testserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chaitali929/coremodeling/internal/app"
	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/config"
	"github.com/chaitali929/coremodeling/internal/locker"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/test/helpers"
)

const testSecret = "test-secret"

type TestServer struct {
	Server   *httptest.Server
	DB       *helpers.MemoryDB
	Storage  *helpers.MemoryStorage
	Services *services.ServiceContainer
	Tokens   *auth.TokenManager
	Config   *config.Config
	repos    services.Repositories
}

// Option adjusts the configuration before the router is built.
type Option func(cfg *config.Config)

func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = testSecret
	cfg.JWT.TTL = 60
	cfg.Upload.MaxSize = 1 << 20
	for _, opt := range opts {
		opt(cfg)
	}

	db := helpers.NewMemoryDB()
	accounts, applications, divergences := db.Repositories()
	repos := services.Repositories{Accounts: accounts, Applications: applications, Divergences: divergences}
	store := helpers.NewMemoryStorage()
	container := services.NewServiceContainer(repos, store, locker.NewLocalLocker(), nil)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())

	server := httptest.NewServer(app.NewRouter(cfg, container, tokens, nil))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Storage:  store,
		Services: container,
		Tokens:   tokens,
		Config:   cfg,
		repos:    repos,
	}
}

// CreateAndLogin stores an account and returns a bearer token for it.
func (ts *TestServer) CreateAndLogin(t *testing.T, name, email string, role models.AccountRole, status ...models.AccountStatus) (string, *models.Account) {
	t.Helper()
	account := helpers.CreateAccount(t, ts.repos.Accounts, name, email, role, status...)
	token, err := ts.Tokens.GenerateToken(helpers.IdentityOf(account))
	require.NoError(t, err)
	return token, account
}

func (ts *TestServer) CreateApplication(t *testing.T, account *models.Account, title string) *models.Application {
	t.Helper()
	return helpers.CreateApplication(t, ts.repos.Applications, account, title)
}

// SendRequest sends a JSON request and returns the response and its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// FilePart is one file of a multipart request.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// SendMultipart sends a multipart form with text fields and files.
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, files ...FilePart) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="` + f.Field + `"; filename="` + f.Filename + `"`}
		header["Content-Type"] = []string{f.ContentType}
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}

// ErrorCode extracts error.code from an error body.
func ErrorCode(t *testing.T, body string) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope), body)
	return envelope.Error.Code
}
