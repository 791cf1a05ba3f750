package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/application/workflow"
)

// WorkflowHandler aplica acciones de navegación del panel.
type WorkflowHandler struct {
	ctrl *workflow.Controller
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(ctrl *workflow.Controller) *WorkflowHandler {
	return &WorkflowHandler{ctrl: ctrl}
}

// Navigate godoc
// @Summary      Navegar entre vistas del panel
// @Description  Aplica la acción al estado recibido y devuelve el nuevo estado con los datos recién leídos.
// @Tags         workflow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NavigateRequest  true  "Estado actual y acción"
// @Success      200   {object}  dto.NavigateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workflow/navigate [post]
func (h *WorkflowHandler) Navigate(c *fiber.Ctx) error {
	var in dto.NavigateRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.ctrl.Navigate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
