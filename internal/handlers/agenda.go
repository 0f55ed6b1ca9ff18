// internal/handlers/agenda.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sisvmarcas/crm-backend/internal/i18n"
	"github.com/sisvmarcas/crm-backend/internal/services"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type AgendaHandler struct {
	agendaService *services.AgendaService
}

func NewAgendaHandler(agendaService *services.AgendaService) *AgendaHandler {
	return &AgendaHandler{
		agendaService: agendaService,
	}
}

// GET /v1/agenda?date=YYYY-MM-DD
//
// Returns the Monday-start week containing date, today when absent.
func (h *AgendaHandler) GetWeek(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "date"), nil)
			return
		}
		date = parsed
	}

	week, err := h.agendaService.WeekFor(c.Request.Context(), actor, date)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, week)
}
