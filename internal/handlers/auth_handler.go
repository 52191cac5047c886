package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	accounts services.AccountService
	profiles services.ProfileService
	tokens   *auth.TokenManager
}

func NewAuthHandler(base *BaseHandler, container *services.ServiceContainer, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		accounts:    container.AccountService,
		profiles:    container.ProfileService,
		tokens:      tokens,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/profile", guards.Auth, h.GetProfile)
		authGroup.PUT("/profile", guards.Auth, guards.RateLimit, h.UpdateProfile)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, account)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, account)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, account *models.Account) {
	token, err := h.tokens.GenerateToken(auth.Identity{AccountID: account.ID, Role: account.Role})
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(status, dto.AuthResponse{Token: token, Account: dto.NewAccountResponse(account)})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	profile, err := h.accounts.GetProfile(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merges text fields and appends the "files" parts to the gallery in one step.
// A "profilePic" part replaces the profile picture. The answer uses the same projection as GetProfile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	var patch dto.ProfilePatch
	if !h.BindAndValidate_JSON(c, &patch) {
		return
	}

	update := services.ProfileUpdate{Patch: &patch}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
			return
		}
		update.Media = mediaFiles(form.File["files"])
		if pics := form.File["profilePic"]; len(pics) > 0 {
			pic := dto.NewMediaFile(pics[0])
			update.ProfilePic = &pic
		}
	}

	account, err := h.profiles.UpdateProfile(c.Request.Context(), identity, identity.AccountID, update)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ProjectAccount(account, account.Role))
}

func mediaFiles(headers []*multipart.FileHeader) []dto.MediaFile {
	files := make([]dto.MediaFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, dto.NewMediaFile(fh))
	}
	return files
}
