package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// unknownLocation nombre usado cuando el censo apunta a una ubicación borrada.
const unknownLocation = "(ubicación desconocida)"

// ComposeCensusReport arma el reporte de un censo. El total general se recalcula
// desde las líneas, independiente del total cacheado, y ambos se exponen.
// location puede ser nil (referencia blanda).
func ComposeCensusReport(c *entity.Census, location *entity.Location, items []*entity.CensusLineItem, now time.Time) (*CensusReport, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: censo requerido", domain.ErrInvalidInput)
	}
	meta := CensusMeta{
		CensusID:     c.ID,
		Year:         c.Year,
		LocationName: unknownLocation,
		Committee:    append([]string(nil), c.Committee...),
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       c.Status,
	}
	if location != nil {
		meta.LocationName = location.Name
		meta.ResponsiblePerson = location.ResponsiblePerson
	}

	rows := make([]CensusRow, 0, len(items))
	var qty int64
	for _, it := range items {
		if it == nil {
			continue
		}
		rows = append(rows, CensusRow{
			Index:     len(rows) + 1,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.QuantityFound,
			UnitPrice: it.PricePerUnit,
			RowTotal:  it.LineTotal(),
			Notes:     it.Notes,
		})
		qty += it.QuantityFound
	}

	grand := census.Total(items)
	return &CensusReport{
		Title:       fmt.Sprintf("Censo de inventario %d: %s", c.Year, meta.LocationName),
		Meta:        meta,
		Rows:        rows,
		TotalQty:    qty,
		GrandTotal:  grand,
		CachedTotal: c.TotalValue,
		Consistent:  grand.Equal(c.TotalValue) && !c.TotalStale,
		ComposedAt:  now,
	}, nil
}

// ComposeYearlySummary arma el resumen anual con una fila por censo del año.
// Verifica ANTES de componer que haya al menos un censo; si no, devuelve domain.ErrNoCensusesForYear.
// locations indexa ubicaciones por ID.
func ComposeYearlySummary(year int, censuses []*entity.Census, locations map[string]*entity.Location, now time.Time) (*YearlySummary, error) {
	filtered := census.FilterByYear(censuses, year)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrNoCensusesForYear, year)
	}

	rows := make([]SummaryRow, 0, len(filtered))
	for _, c := range filtered {
		row := SummaryRow{
			CensusID:     c.ID,
			LocationName: unknownLocation,
			Status:       c.Status,
			TotalValue:   c.TotalValue,
		}
		if loc, ok := locations[c.LocationID]; ok && loc != nil {
			row.LocationName = loc.Name
			row.ResponsiblePerson = loc.ResponsiblePerson
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].LocationName) < strings.ToLower(rows[j].LocationName)
	})
	for i := range rows {
		rows[i].Index = i + 1
	}

	return &YearlySummary{
		Title:      fmt.Sprintf("Resumen de censos %d", year),
		Year:       year,
		Rows:       rows,
		GrandTotal: census.SumTotals(filtered),
		ComposedAt: now,
	}, nil
}
