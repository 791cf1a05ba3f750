// Package census contiene las reglas puras del flujo de censos de inventario:
// cálculo de totales, disponibilidad de ubicaciones por año, validación y sugerencias.
package census

import (
	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// Total calcula el valor de un censo: Σ (QuantityFound × PricePerUnit) sobre sus líneas.
// No redondea; el redondeo a 2 decimales es responsabilidad de quien presenta el valor.
func Total(items []*entity.CensusLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it == nil {
			continue
		}
		total = total.Add(it.LineTotal())
	}
	return total
}

// SumTotals suma los totales cacheados de los censos dados.
func SumTotals(censuses []*entity.Census) decimal.Decimal {
	total := decimal.Zero
	for _, c := range censuses {
		if c == nil {
			continue
		}
		total = total.Add(c.TotalValue)
	}
	return total
}
