package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/services"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
	uploadService  *services.UploadService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService, uploadService *services.UploadService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		uploadService:  uploadService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("/me", h.Me)
		profile.POST("/picture", h.UploadPicture)
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.Get(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'picture' form file"})
		return
	}

	url, err := h.uploadService.SaveProfilePicture(c.Request.Context(), h.GetDB(c), userID, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"picture_url": url})
}
