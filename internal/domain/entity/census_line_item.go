package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unidad usada cuando la línea no indica otra.
const DefaultUnit = "pcs"

// CensusLineItem representa una línea contada dentro de un censo.
type CensusLineItem struct {
	ID            string
	CensusID      string
	MasterItemID  string // vacío si la línea se creó manualmente
	Name          string
	Unit          string
	QuantityFound int64
	PricePerUnit  decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineTotal devuelve cantidad × precio unitario a precisión completa.
func (i *CensusLineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(i.QuantityFound).Mul(i.PricePerUnit)
}
