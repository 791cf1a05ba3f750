package census

import "github.com/ekspresi/itm-sub002/internal/domain/entity"

// SuggestedQuantity cantidad con la que se prellena una línea creada desde el catálogo.
const SuggestedQuantity = 1

// Suggestions devuelve los ítems del catálogo que aún no figuran como línea del censo
// (comparando por MasterItemID).
func Suggestions(master []*entity.MasterItem, existing []*entity.CensusLineItem) []*entity.MasterItem {
	used := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		if it != nil && it.MasterItemID != "" {
			used[it.MasterItemID] = struct{}{}
		}
	}
	out := make([]*entity.MasterItem, 0, len(master))
	for _, m := range master {
		if m == nil {
			continue
		}
		if _, ok := used[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// LineItemFromMaster construye una línea prellenada (nombre, unidad, precio) a partir del catálogo.
func LineItemFromMaster(censusID string, m *entity.MasterItem) *entity.CensusLineItem {
	unit := m.Unit
	if unit == "" {
		unit = entity.DefaultUnit
	}
	return &entity.CensusLineItem{
		CensusID:      censusID,
		MasterItemID:  m.ID,
		Name:          m.Name,
		Unit:          unit,
		QuantityFound: SuggestedQuantity,
		PricePerUnit:  m.PurchaseValue,
	}
}
