package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/services"
	"planr_backend/internal/services/dto"
)

type AssistantHandler struct {
	*BaseHandler
	assistantService *services.AssistantService
}

func NewAssistantHandler(base *BaseHandler, assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		BaseHandler:      base,
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/chat", h.Chat)
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ChatRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.assistantService.Chat(c.Request.Context(), req.Query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
