package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/services"
	"planr_backend/internal/services/dto"
)

type OrganisationHandler struct {
	*BaseHandler
	organisationService *services.OrganisationService
}

func NewOrganisationHandler(base *BaseHandler, organisationService *services.OrganisationService) *OrganisationHandler {
	return &OrganisationHandler{
		BaseHandler:         base,
		organisationService: organisationService,
	}
}

func (h *OrganisationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orgs := rg.Group("/organisations")
	{
		orgs.POST("", h.Create)
		orgs.POST("/join", h.Join)
		orgs.GET("/dashboard", h.Dashboard)
		orgs.POST("/remove-member", h.RemoveMember)
	}
}

func (h *OrganisationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrganisationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	org, err := h.organisationService.Create(h.GetDB(c), userID, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (h *OrganisationHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JoinOrganisationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	org, err := h.organisationService.Join(h.GetDB(c), userID, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganisationHandler) Dashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.organisationService.Dashboard(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *OrganisationHandler) RemoveMember(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RemoveMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.organisationService.RemoveMember(h.GetDB(c), adminID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
