package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// SaveLineItemRequest entrada para crear o reemplazar una línea de censo.
type SaveLineItemRequest struct {
	MasterItemID  string          `json:"master_item_id"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Unit          string          `json:"unit"`
	QuantityFound int64           `json:"quantity_found" validate:"min=0"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	Notes         string          `json:"notes"`
}

// LineItemResponse salida de una línea de censo.
type LineItemResponse struct {
	ID            string          `json:"id"`
	CensusID      string          `json:"census_id"`
	MasterItemID  string          `json:"master_item_id,omitempty"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	QuantityFound int64           `json:"quantity_found"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LineItemListResponse líneas de un censo con el total calculado sobre ellas.
type LineItemListResponse struct {
	CensusID string             `json:"census_id"`
	Items    []LineItemResponse `json:"items"`
	Total    decimal.Decimal    `json:"total"`
}

// SaveLineItemResponse línea guardada más el total del censo ya recalculado.
type SaveLineItemResponse struct {
	Item        LineItemResponse `json:"item"`
	CensusTotal decimal.Decimal  `json:"census_total"`
}

// DeleteLineItemResponse total del censo tras borrar una línea.
type DeleteLineItemResponse struct {
	CensusTotal decimal.Decimal `json:"census_total"`
}

// SuggestionResponse ítem del catálogo aún no contado en el censo.
type SuggestionResponse struct {
	MasterItemID  string          `json:"master_item_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
}

// ToLineItemResponse convierte la entidad en su salida HTTP.
func ToLineItemResponse(it *entity.CensusLineItem) LineItemResponse {
	return LineItemResponse{
		ID:            it.ID,
		CensusID:      it.CensusID,
		MasterItemID:  it.MasterItemID,
		Name:          it.Name,
		Unit:          it.Unit,
		QuantityFound: it.QuantityFound,
		PricePerUnit:  it.PricePerUnit,
		LineTotal:     it.LineTotal(),
		Notes:         it.Notes,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
