package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/census"
	"github.com/ekspresi/itm-sub002/internal/application/dto"
)

// LineItemHandler maneja las líneas de un censo. Cada escritura devuelve el total recalculado.
type LineItemHandler struct {
	uc *census.LineItemUseCase
}

// NewLineItemHandler construye el handler.
func NewLineItemHandler(uc *census.LineItemUseCase) *LineItemHandler {
	return &LineItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar líneas del censo
// @Tags         census-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.LineItemListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/items [get]
func (h *LineItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar línea al censo
// @Tags         census-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del censo"
// @Param        body  body  dto.SaveLineItemRequest  true  "Datos de la línea"
// @Success      201   {object}  dto.SaveLineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/items [post]
func (h *LineItemHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveLineItemRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), c.Params("id"), "", in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar línea del censo
// @Tags         census-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                   true  "ID del censo"
// @Param        itemId  path  string                   true  "ID de la línea"
// @Param        body    body  dto.SaveLineItemRequest  true  "Datos de la línea"
// @Success      200     {object}  dto.SaveLineItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/items/{itemId} [put]
func (h *LineItemHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveLineItemRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	itemID := c.Params("itemId")
	if itemID == "" {
		return badRequest(c, "MISSING_ID", "itemId es requerido")
	}
	out, err := h.uc.Save(c.UserContext(), c.Params("id"), itemID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar línea del censo
// @Tags         census-items
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del censo"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.DeleteLineItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/items/{itemId} [delete]
func (h *LineItemHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suggestions godoc
// @Summary      Ítems del catálogo aún no contados
// @Tags         census-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.ListResponse[dto.SuggestionResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/suggestions [get]
func (h *LineItemHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.uc.Suggestions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AddSuggested godoc
// @Summary      Agregar línea desde el catálogo
// @Tags         census-items
// @Security     Bearer
// @Produce      json
// @Param        id            path  string  true  "ID del censo"
// @Param        masterItemId  path  string  true  "ID del ítem del catálogo"
// @Success      201  {object}  dto.SaveLineItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/suggestions/{masterItemId} [post]
func (h *LineItemHandler) AddSuggested(c *fiber.Ctx) error {
	out, err := h.uc.AddSuggested(c.UserContext(), c.Params("id"), c.Params("masterItemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
