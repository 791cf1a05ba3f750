package dto

import (
	"time"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	ResponsiblePerson string `json:"responsible_person"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	ResponsiblePerson *string `json:"responsible_person"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ResponsiblePerson string    `json:"responsible_person"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToLocationResponse convierte la entidad en su salida HTTP.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:                l.ID,
		Name:              l.Name,
		ResponsiblePerson: l.ResponsiblePerson,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ToLocationResponses convierte una lista de ubicaciones.
func ToLocationResponses(list []*entity.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToLocationResponse(l))
	}
	return out
}
