package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/report"
)

// CensusReportRow fila numerada del reporte de censo.
type CensusReportRow struct {
	Index     int             `json:"index"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	RowTotal  decimal.Decimal `json:"row_total"`
	Notes     string          `json:"notes,omitempty"`
}

// CensusReportResponse reporte imprimible de un censo en JSON.
type CensusReportResponse struct {
	Title             string            `json:"title"`
	CensusID          string            `json:"census_id"`
	Year              int               `json:"year"`
	LocationName      string            `json:"location_name"`
	ResponsiblePerson string            `json:"responsible_person"`
	Committee         []string          `json:"committee"`
	StartDate         *time.Time        `json:"start_date,omitempty"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	Status            string            `json:"status"`
	Rows              []CensusReportRow `json:"rows"`
	TotalQuantity     int64             `json:"total_quantity"`
	GrandTotal        decimal.Decimal   `json:"grand_total"`
	CachedTotal       decimal.Decimal   `json:"cached_total"`
	Consistent        bool              `json:"consistent"`
	ComposedAt        time.Time         `json:"composed_at"`
}

// YearlySummaryRow fila del resumen anual.
type YearlySummaryRow struct {
	Index             int             `json:"index"`
	CensusID          string          `json:"census_id"`
	LocationName      string          `json:"location_name"`
	ResponsiblePerson string          `json:"responsible_person"`
	Status            string          `json:"status"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// YearlySummaryResponse resumen anual en JSON.
type YearlySummaryResponse struct {
	Title      string             `json:"title"`
	Year       int                `json:"year"`
	Rows       []YearlySummaryRow `json:"rows"`
	GrandTotal decimal.Decimal    `json:"grand_total"`
	ComposedAt time.Time          `json:"composed_at"`
}

// ToCensusReportResponse convierte el reporte compuesto.
func ToCensusReportResponse(r *report.CensusReport) CensusReportResponse {
	rows := make([]CensusReportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, CensusReportRow{
			Index:     row.Index,
			Name:      row.Name,
			Unit:      row.Unit,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			RowTotal:  row.RowTotal,
			Notes:     row.Notes,
		})
	}
	committee := r.Meta.Committee
	if committee == nil {
		committee = []string{}
	}
	return CensusReportResponse{
		Title:             r.Title,
		CensusID:          r.Meta.CensusID,
		Year:              r.Meta.Year,
		LocationName:      r.Meta.LocationName,
		ResponsiblePerson: r.Meta.ResponsiblePerson,
		Committee:         committee,
		StartDate:         r.Meta.StartDate,
		EndDate:           r.Meta.EndDate,
		Status:            r.Meta.Status,
		Rows:              rows,
		TotalQuantity:     r.TotalQty,
		GrandTotal:        r.GrandTotal,
		CachedTotal:       r.CachedTotal,
		Consistent:        r.Consistent,
		ComposedAt:        r.ComposedAt,
	}
}

// ToYearlySummaryResponse convierte el resumen compuesto.
func ToYearlySummaryResponse(s *report.YearlySummary) YearlySummaryResponse {
	rows := make([]YearlySummaryRow, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, YearlySummaryRow{
			Index:             row.Index,
			CensusID:          row.CensusID,
			LocationName:      row.LocationName,
			ResponsiblePerson: row.ResponsiblePerson,
			Status:            row.Status,
			TotalValue:        row.TotalValue,
		})
	}
	return YearlySummaryResponse{
		Title:      s.Title,
		Year:       s.Year,
		Rows:       rows,
		GrandTotal: s.GrandTotal,
		ComposedAt: s.ComposedAt,
	}
}
