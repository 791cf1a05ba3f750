// Package report compone la estructura imprimible de los reportes de censo.
// La composición es síncrona y completa antes de entregarse al renderizador;
// no depende del formato de salida (PDF, JSON).
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CensusMeta metadatos del encabezado del reporte de un censo.
type CensusMeta struct {
	CensusID          string
	Year              int
	LocationName      string
	ResponsiblePerson string
	Committee         []string
	StartDate         *time.Time
	EndDate           *time.Time
	Status            string
}

// CensusRow una fila numerada del reporte de censo.
type CensusRow struct {
	Index     int
	Name      string
	Unit      string
	Quantity  int64
	UnitPrice decimal.Decimal
	RowTotal  decimal.Decimal
	Notes     string
}

// CensusReport reporte de un censo: filas, total recalculado y total cacheado.
// Consistent es true cuando GrandTotal coincide con el total cacheado del censo.
type CensusReport struct {
	Title       string
	Meta        CensusMeta
	Rows        []CensusRow
	TotalQty    int64
	GrandTotal  decimal.Decimal
	CachedTotal decimal.Decimal
	Consistent  bool
	ComposedAt  time.Time
}

// SummaryRow una fila del resumen anual: un censo por ubicación.
type SummaryRow struct {
	Index             int
	CensusID          string
	LocationName      string
	ResponsiblePerson string
	Status            string
	TotalValue        decimal.Decimal
}

// YearlySummary resumen de todos los censos de un año.
type YearlySummary struct {
	Title      string
	Year       int
	Rows       []SummaryRow
	GrandTotal decimal.Decimal
	ComposedAt time.Time
}

func (r *CensusReport) composed() bool  { return r != nil }
func (s *YearlySummary) composed() bool { return s != nil && len(s.Rows) > 0 }
