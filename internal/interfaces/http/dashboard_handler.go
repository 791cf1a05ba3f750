package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/usecase"
)

// DashboardHandler maneja el resumen del panel.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los contadores del panel y el total general del año.
// GET /api/dashboard?year=2025
//
// Respuesta: DashboardSummaryDTO (locations, master_items, censuses, open_censuses,
// stale_censuses, pending_locations, grand_total, available_years).
// Sin year se usa el año en curso.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	year, ok := queryYear(c)
	if !ok {
		return badRequest(c, "VALIDATION", "year inválido")
	}
	summary, err := h.uc.GetSummary(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
