package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/report"
)

// ReportHandler expone los reportes en JSON y su versión imprimible en PDF.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Census godoc
// @Summary      Reporte de un censo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {object}  dto.CensusReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/report [get]
func (h *ReportHandler) Census(c *fiber.Ctx) error {
	out, err := h.uc.CensusReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CensusPDF godoc
// @Summary      Imprimir reporte de un censo
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del censo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/censuses/{id}/report/pdf [get]
func (h *ReportHandler) CensusPDF(c *fiber.Ctx) error {
	p, err := h.uc.PrintCensusReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, p)
}

// Yearly godoc
// @Summary      Resumen anual de censos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  path  int  true  "Año"
// @Success      200   {object}  dto.YearlySummaryResponse
// @Failure      404   {object}  dto.ErrorResponse  "NO_DATA si no hay censos ese año"
// @Router       /api/reports/yearly/{year} [get]
func (h *ReportHandler) Yearly(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year <= 0 {
		return badRequest(c, "VALIDATION", "year inválido")
	}
	out, err := h.uc.YearlySummary(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// YearlyPDF godoc
// @Summary      Imprimir resumen anual
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  path  int  true  "Año"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reports/yearly/{year}/pdf [get]
func (h *ReportHandler) YearlyPDF(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year <= 0 {
		return badRequest(c, "VALIDATION", "year inválido")
	}
	p, err := h.uc.PrintYearlySummary(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, p)
}

func sendPDF(c *fiber.Ctx, p *report.Printout) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", p.Filename))
	return c.Send(p.Body)
}
