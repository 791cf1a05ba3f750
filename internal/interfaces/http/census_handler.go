package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/census"
	"github.com/ekspresi/itm-sub002/internal/application/dto"
)

// CensusHandler maneja el registro de censos y el recálculo manual de totales.
type CensusHandler struct {
	registry   *census.RegistryUseCase
	aggregator *census.Aggregator
}

// NewCensusHandler construye el handler.
func NewCensusHandler(registry *census.RegistryUseCase, aggregator *census.Aggregator) *CensusHandler {
	return &CensusHandler{registry: registry, aggregator: aggregator}
}

// queryYear lee ?year=; por defecto el año en curso.
func queryYear(c *fiber.Ctx) (int, bool) {
	year := c.QueryInt("year", time.Now().Year())
	return year, year > 0
}

// List godoc
// @Summary      Listar censos de un año
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto el actual)"
// @Success      200   {object}  dto.CensusListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/censuses [get]
func (h *CensusHandler) List(c *fiber.Ctx) error {
	year, ok := queryYear(c)
	if !ok {
		return badRequest(c, "VALIDATION", "year inválido")
	}
	out, err := h.registry.ListForYear(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Years godoc
// @Summary      Años con censos
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.YearsResponse
// @Router       /api/censuses/years [get]
func (h *CensusHandler) Years(c *fiber.Ctx) error {
	out, err := h.registry.Years(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AvailableLocations godoc
// @Summary      Ubicaciones sin censo en el año
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto el actual)"
// @Success      200   {object}  dto.ListResponse[dto.LocationResponse]
// @Router       /api/censuses/available-locations [get]
func (h *CensusHandler) AvailableLocations(c *fiber.Ctx) error {
	year, ok := queryYear(c)
	if !ok {
		return badRequest(c, "VALIDATION", "year inválido")
	}
	out, err := h.registry.AvailableLocations(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Crear censo
// @Tags         censuses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCensusRequest  true  "Año, ubicación y comisión"
// @Success      201   {object}  dto.CensusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/censuses [post]
func (h *CensusHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCensusRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.registry.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener censo
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.CensusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id} [get]
func (h *CensusHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.registry.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar censo
// @Description  Solo se aplican los campos presentes en el cuerpo.
// @Tags         censuses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del censo"
// @Param        body  body  dto.UpdateCensusRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CensusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/censuses/{id} [patch]
func (h *CensusHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCensusRequest
	if err := parseBody(c, &in); err != nil {
		return bodyError(c, err)
	}
	out, err := h.registry.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar censo
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.CensusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/close [post]
func (h *CensusHandler) Close(c *fiber.Ctx) error {
	out, err := h.registry.Close(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar censo y sus líneas (solo admin)
// @Tags         censuses
// @Security     Bearer
// @Param        id   path  string  true  "ID del censo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id} [delete]
func (h *CensusHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recompute godoc
// @Summary      Recalcular el total del censo
// @Description  Reintento manual cuando el total quedó marcado como desactualizado.
// @Tags         censuses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.RecomputeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/recompute [post]
func (h *CensusHandler) Recompute(c *fiber.Ctx) error {
	id := c.Params("id")
	total, err := h.aggregator.Recompute(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecomputeResponse{CensusID: id, TotalValue: total})
}
