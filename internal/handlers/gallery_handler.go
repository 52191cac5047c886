package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/internal/services/dto"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

// ============================================
// GALLERY HANDLER
// ============================================

type GalleryHandler struct {
	*BaseHandler
	gallery       services.GalleryService
	maxUploadSize int64
}

func NewGalleryHandler(base *BaseHandler, gallery services.GalleryService, maxUploadSize int64) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler:   base,
		gallery:       gallery,
		maxUploadSize: maxUploadSize,
	}
}

func (h *GalleryHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	users := r.Group("/users")
	users.Use(guards.Auth)
	{
		users.POST("/upload", guards.RateLimit, h.UploadMedia)
		users.GET("/gallery", h.GetMyGallery)
	}
}

// UploadMedia appends one file to the caller's gallery. type defaults to photo.
func (h *GalleryHandler) UploadMedia(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNoFile)
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		apperrors.HandleError(c, apperrors.NewValidationError("gallery",
			fmt.Sprintf("File exceeds the %d byte limit", h.maxUploadSize)))
		return
	}

	var req dto.UploadMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}
	if req.Type == "" {
		req.Type = models.MediaPhoto
	}

	gallery, err := h.gallery.AddMedia(c.Request.Context(), identity, identity.AccountID, req.Type, dto.NewMediaFile(fileHeader))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}

func (h *GalleryHandler) GetMyGallery(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	gallery, err := h.gallery.ListGallery(c.Request.Context(), identity, identity.AccountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}
