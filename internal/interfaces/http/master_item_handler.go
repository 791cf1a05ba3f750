package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/application/usecase"
)

// MasterItemHandler maneja el catálogo maestro de ítems.
type MasterItemHandler struct {
	uc *usecase.MasterItemUseCase
}

// NewMasterItemHandler construye el handler.
func NewMasterItemHandler(uc *usecase.MasterItemUseCase) *MasterItemHandler {
	return &MasterItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem del catálogo
// @Tags         master-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMasterItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.MasterItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/master-items [post]
func (h *MasterItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMasterItemRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem del catálogo
// @Tags         master-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MasterItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/master-items/{id} [get]
func (h *MasterItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem del catálogo
// @Tags         master-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del ítem"
// @Param        body  body  dto.UpdateMasterItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MasterItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/master-items/{id} [put]
func (h *MasterItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMasterItemRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems del catálogo
// @Tags         master-items
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación actual"
// @Success      200  {object}  dto.ListResponse[dto.MasterItemResponse]
// @Router       /api/master-items [get]
func (h *MasterItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Delete godoc
// @Summary      Eliminar ítem del catálogo
// @Tags         master-items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/master-items/{id} [delete]
func (h *MasterItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
