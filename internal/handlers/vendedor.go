// internal/handlers/vendedor.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sisvmarcas/crm-backend/internal/services"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type VendedorHandler struct {
	authService *services.AuthService
}

func NewVendedorHandler(authService *services.AuthService) *VendedorHandler {
	return &VendedorHandler{
		authService: authService,
	}
}

// GET /v1/vendedores
//
// Flat profile set for the owner dropdown and card display.
func (h *VendedorHandler) List(c *gin.Context) {
	vendedores, err := h.authService.ListVendedores()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"vendedores": vendedores,
	})
}
