package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/services"
	"planr_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.POST("/purchase", h.Purchase)
		subs.POST("/purchase-for-member", h.PurchaseOnBehalf)
		subs.GET("/status", h.Status)
		subs.GET("/history", h.History)
	}
}

func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	receipt, err := h.subscriptionService.Purchase(h.GetDB(c), userID, req.Payment, Today())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *SubscriptionHandler) PurchaseOnBehalf(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseOnBehalfRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	receipt, err := h.subscriptionService.PurchaseOnBehalf(h.GetDB(c), adminID, req.UserID, req.Payment, Today())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.subscriptionService.Status(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *SubscriptionHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	records, err := h.subscriptionService.History(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": records})
}
