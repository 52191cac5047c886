package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/internal/middleware"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/internal/services/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ArtistHandler struct {
	*BaseHandler
	visibility   services.VisibilityService
	status       services.StatusService
	gallery      services.GalleryService
	applications services.ApplicationService
	export       services.ExportService
}

func NewArtistHandler(base *BaseHandler, container *services.ServiceContainer) *ArtistHandler {
	return &ArtistHandler{
		BaseHandler:  base,
		visibility:   container.VisibilityService,
		status:       container.StatusService,
		gallery:      container.GalleryService,
		applications: container.ApplicationService,
		export:       container.ExportService,
	}
}

func (h *ArtistHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	artists := r.Group("/artists")
	artists.Use(guards.Auth)
	{
		artists.GET("", h.ListArtists)
		artists.PUT("/:id/status", h.SetStatus)
		artists.GET("/:id/gallery", h.GetGallery)
		artists.GET("/:id/applications", h.GetApplications)
	}

	admin := r.Group("/admin")
	admin.Use(guards.Auth, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/artists/export", h.ExportArtists)
	}
}

// ListArtists returns artists the caller may see, newest first, with fields filtered by role.
func (h *ArtistHandler) ListArtists(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	artists, err := h.visibility.ListArtists(c.Request.Context(), identity.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	services.SortByRecency(artists)

	out := make([]map[string]interface{}, 0, len(artists))
	for i := range artists {
		out = append(out, services.ProjectAccount(&artists[i], identity.Role))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ArtistHandler) SetStatus(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	artist, err := h.status.SetStatus(c.Request.Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SetStatusResponse{
		Message: fmt.Sprintf("Artist %s successfully", artist.CurrentStatus()),
		Artist:  dto.NewAccountResponse(artist),
	})
}

func (h *ArtistHandler) GetGallery(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	gallery, err := h.gallery.ListGallery(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}

func (h *ArtistHandler) GetApplications(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	apps, err := h.applications.ListForAccount(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationResponses(apps))
}

func (h *ArtistHandler) ExportArtists(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	buf, err := h.export.ExportArtists(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("artists-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
