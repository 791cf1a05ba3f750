package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados habituales de un censo. El campo es libre; estos son los que usa el sistema.
const (
	CensusStatusInProgress = "in progress"
	CensusStatusCompleted  = "completed"
)

// Census representa un ejercicio de conteo de inventario para una ubicación en un año.
// Hay como máximo un censo por (Year, LocationID).
type Census struct {
	ID         string
	Year       int
	LocationID string
	Committee  []string // miembros de la comisión, en orden
	StartDate  *time.Time
	EndDate    *time.Time // nil mientras el censo sigue abierto
	Status     string
	TotalValue decimal.Decimal // Σ cantidad × precio de sus líneas; se reescribe en cada mutación
	TotalStale bool            // true si el último recálculo no pudo confirmarse
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen informa si el censo no tiene fecha de cierre.
func (c *Census) IsOpen() bool {
	return c.EndDate == nil
}
