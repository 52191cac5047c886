package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/internal/services"
	"github.com/chaitali929/coremodeling/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applications services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applications services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:  base,
		applications: applications,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, guards RouteGuards) {
	apps := r.Group("/applications")
	apps.Use(guards.Auth)
	{
		apps.POST("", h.Apply)
		apps.GET("", h.ListMine)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	identity, ok := h.GetAndAuthorizeIdentity(c)
	if !ok {
		return
	}

	apps, err := h.applications.ListMine(c.Request.Context(), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationResponses(apps))
}
