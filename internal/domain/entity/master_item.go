package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasterItem representa una entrada del catálogo de inventario.
// Solo se usa como plantilla para prellenar líneas de censo.
type MasterItem struct {
	ID                string
	Name              string
	Unit              string
	CurrentLocationID string // vacío si no está asignado a un espacio
	PurchaseValue     decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
