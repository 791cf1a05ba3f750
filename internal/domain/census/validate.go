package census

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// ValidateCensus verifica los campos obligatorios de un censo antes de tocar el almacenamiento.
func ValidateCensus(c *entity.Census) error {
	if c.Year <= 0 {
		return fmt.Errorf("%w: year es requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(c.LocationID) == "" {
		return fmt.Errorf("%w: location_id es requerido", domain.ErrInvalidInput)
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return fmt.Errorf("%w: end_date no puede ser anterior a start_date", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateLineItem verifica una línea de censo: nombre obligatorio, cantidad y precio no negativos.
func ValidateLineItem(it *entity.CensusLineItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if it.QuantityFound < 0 {
		return fmt.Errorf("%w: quantity_found no puede ser negativa", domain.ErrInvalidInput)
	}
	if it.PricePerUnit.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price_per_unit no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// NormalizeCommittee recorta espacios y descarta nombres vacíos conservando el orden.
func NormalizeCommittee(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
