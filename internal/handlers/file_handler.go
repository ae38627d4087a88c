package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/services"
)

// FileHandler serves stored blobs back over HTTP. Paths are relative to
// the storage root, e.g. /files/profile/<user>/<uuid>.png.
type FileHandler struct {
	*BaseHandler
	uploadService *services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService *services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
		return
	}

	reader, size, err := h.uploadService.Open(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Length", strconv.FormatInt(size, 10))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
