package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/middleware"
	"planr_backend/internal/models"
	"planr_backend/internal/services"
	"planr_backend/internal/services/dto"
)

type FeedbackHandler struct {
	*BaseHandler
	feedbackService *services.FeedbackService
	uploadService   *services.UploadService
}

func NewFeedbackHandler(base *BaseHandler, feedbackService *services.FeedbackService, uploadService *services.UploadService) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:     base,
		feedbackService: feedbackService,
		uploadService:   uploadService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(rg *gin.RouterGroup) {
	feedback := rg.Group("/feedback")
	{
		feedback.POST("", h.Submit)
		feedback.GET("", h.ListOwn)
		feedback.GET("/:id", h.Get)
		feedback.POST("/:id/attachments", h.Attach)

		staff := feedback.Group("", middleware.StaffMiddleware())
		{
			staff.GET("/all", h.ListAll)
			staff.POST("/:id/status", h.UpdateStatus)
			staff.POST("/:id/response", h.Respond)
		}
	}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ticket, err := h.feedbackService.Submit(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *FeedbackHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tickets, err := h.feedbackService.ListOwn(c.Request.Context(), h.GetDB(c), userID, c.Query("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ticket, err := h.feedbackService.Get(c.Request.Context(), h.GetDB(c), userID, middleware.IsStaff(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Attach uploads a screenshot or transcript for the caller's own ticket.
// The form field name doubles as the attachment kind.
func (h *FeedbackHandler) Attach(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	feedbackID := c.Param("id")
	usage := c.PostForm("kind")
	if usage != "screenshot" && usage != "transcript" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'kind' must be 'screenshot' or 'transcript'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form file"})
		return
	}

	db := h.GetDB(c)

	// Ownership check before anything hits the blob store.
	if _, err := h.feedbackService.Get(c.Request.Context(), db, userID, false, feedbackID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	path, err := h.uploadService.SaveFeedbackAttachment(c.Request.Context(), db, userID, feedbackID, usage, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.feedbackService.AttachFile(db, userID, feedbackID, usage, path); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

func (h *FeedbackHandler) ListAll(c *gin.Context) {
	tickets, err := h.feedbackService.ListAll(c.Request.Context(), h.GetDB(c), c.Query("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateFeedbackStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.feedbackService.UpdateStatus(h.GetDB(c), c.Param("id"), models.FeedbackStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *FeedbackHandler) Respond(c *gin.Context) {
	var req dto.RespondFeedbackRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.feedbackService.Respond(h.GetDB(c), c.Param("id"), req.Response); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response saved"})
}
