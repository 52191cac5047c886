package handlers

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/pkg/apperrors"
)

// FileResolver maps an object key to a path on disk.
type FileResolver interface {
	Path(key string) (string, error)
}

// FileHandler serves objects of the local storage backend.
type FileHandler struct {
	*BaseHandler
	files FileResolver
}

func NewFileHandler(base *BaseHandler, files FileResolver) *FileHandler {
	return &FileHandler{BaseHandler: base, files: files}
}

func (h *FileHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/files/*key", h.ServeFile)
	r.HEAD("/files/*key", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	path, err := h.files.Path(key)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Disposition", "inline")
	c.File(path)
}
