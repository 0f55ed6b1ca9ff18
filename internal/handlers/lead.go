// internal/handlers/lead.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sisvmarcas/crm-backend/internal/i18n"
	"github.com/sisvmarcas/crm-backend/internal/models"
	"github.com/sisvmarcas/crm-backend/internal/services"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type LeadHandler struct {
	leadService  *services.LeadService
	pitchService *services.PitchService
}

func NewLeadHandler(leadService *services.LeadService, pitchService *services.PitchService) *LeadHandler {
	return &LeadHandler{
		leadService:  leadService,
		pitchService: pitchService,
	}
}

func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return services.Actor{}, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Actor{}, false
	}

	role, _ := utils.GetRoleFromContext(c)
	return services.Actor{ID: userID, Role: models.Role(role)}, true
}

// GET /v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	leads, err := h.leadService.List(c.Request.Context(), actor)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"leads": leads,
	})
}

// POST /v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := actorFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), &req)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyLeadCreateFailed, err.Error()))
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLeadCreated),
		"lead":    lead,
	})
}

// PUT /v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	var req services.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lead, err := h.leadService.ApplyEdit(c.Request.Context(), actor, leadID, &req)
	if err != nil {
		h.writeLeadError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLeadUpdated),
		"lead":    lead,
	})
}

// PATCH /v1/leads/:id/status
//
// Board drag-and-drop. Dropping onto the current column is a no-op.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	var req struct {
		Status models.LeadStatus `json:"status" validate:"required,lead_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lead, err := h.leadService.DragStatus(c.Request.Context(), actor, leadID, req.Status)
	if err != nil {
		h.writeLeadError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lead": lead,
	})
}

// POST /v1/leads/:id/pitch
func (h *LeadHandler) GeneratePitch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), actor, leadID)
	if err != nil {
		h.writeLeadError(c, lang, err)
		return
	}

	pitch := h.pitchService.GeneratePitch(c.Request.Context(), lead)
	utils.SuccessResponse(c, pitch)
}

func (h *LeadHandler) writeLeadError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrLeadNotFound):
		utils.NotFoundResponse(c, "lead")
	case errors.Is(err, services.ErrPermissionDenied):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyLeadAccessDenied))
	default:
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyLeadUpdateFailed, err.Error()))
	}
}
