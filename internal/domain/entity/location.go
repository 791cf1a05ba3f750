package entity

import "time"

// Location representa un espacio del centro cultural donde se realiza un censo
// (sala, bodega, taller).
type Location struct {
	ID                string
	Name              string
	ResponsiblePerson string // persona a cargo del inventario del espacio
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
