package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// CreateMasterItemRequest entrada para crear un ítem del catálogo.
type CreateMasterItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Unit              string          `json:"unit"`
	CurrentLocationID string          `json:"current_location_id"`
	PurchaseValue     decimal.Decimal `json:"purchase_value"`
}

// UpdateMasterItemRequest entrada para actualizar un ítem del catálogo.
type UpdateMasterItemRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit              *string          `json:"unit"`
	CurrentLocationID *string          `json:"current_location_id"`
	PurchaseValue     *decimal.Decimal `json:"purchase_value"`
}

// MasterItemResponse salida de un ítem del catálogo.
type MasterItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	CurrentLocationID string          `json:"current_location_id,omitempty"`
	PurchaseValue     decimal.Decimal `json:"purchase_value"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToMasterItemResponse convierte la entidad en su salida HTTP.
func ToMasterItemResponse(m *entity.MasterItem) MasterItemResponse {
	return MasterItemResponse{
		ID:                m.ID,
		Name:              m.Name,
		Unit:              m.Unit,
		CurrentLocationID: m.CurrentLocationID,
		PurchaseValue:     m.PurchaseValue,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToMasterItemResponses convierte una lista de ítems.
func ToMasterItemResponses(list []*entity.MasterItem) []MasterItemResponse {
	out := make([]MasterItemResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMasterItemResponse(m))
	}
	return out
}
