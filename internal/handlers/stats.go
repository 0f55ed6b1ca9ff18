// internal/handlers/stats.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sisvmarcas/crm-backend/internal/services"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GET /v1/stats?search=&vendedor=
//
// Applies the same text/role/owner gates as the lead list before counting.
func (h *StatsHandler) GetStats(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	filter := services.LeadFilter{
		Search:   c.Query("search"),
		Dropdown: c.DefaultQuery("vendedor", services.DropdownAll),
	}

	stats, err := h.statsService.ComputeStats(c.Request.Context(), actor, filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}
