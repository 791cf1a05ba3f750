package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// CreateCensusRequest entrada para crear un censo.
type CreateCensusRequest struct {
	Year       int        `json:"year" validate:"required,min=1"`
	LocationID string     `json:"location_id" validate:"required"`
	Committee  []string   `json:"committee"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Status     string     `json:"status"`
}

// UpdateCensusRequest actualización parcial de un censo; los campos nil no se tocan.
type UpdateCensusRequest struct {
	Year       *int       `json:"year" validate:"omitempty,min=1"`
	LocationID *string    `json:"location_id"`
	Committee  *[]string  `json:"committee"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Status     *string    `json:"status"`
}

// CensusResponse salida de un censo.
type CensusResponse struct {
	ID           string          `json:"id"`
	Year         int             `json:"year"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name,omitempty"`
	Committee    []string        `json:"committee"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Status       string          `json:"status"`
	TotalValue   decimal.Decimal `json:"total_value"`
	TotalStale   bool            `json:"total_stale"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CensusListResponse censos de un año con la suma de sus totales.
type CensusListResponse struct {
	Year       int              `json:"year"`
	Items      []CensusResponse `json:"items"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
}

// YearsResponse años con al menos un censo.
type YearsResponse struct {
	Years []int `json:"years"`
}

// RecomputeResponse resultado de recalcular el total de un censo.
type RecomputeResponse struct {
	CensusID   string          `json:"census_id"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ToCensusResponse convierte la entidad; location puede ser nil.
func ToCensusResponse(c *entity.Census, location *entity.Location) CensusResponse {
	committee := c.Committee
	if committee == nil {
		committee = []string{}
	}
	out := CensusResponse{
		ID:         c.ID,
		Year:       c.Year,
		LocationID: c.LocationID,
		Committee:  committee,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		Status:     c.Status,
		TotalValue: c.TotalValue,
		TotalStale: c.TotalStale,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if location != nil {
		out.LocationName = location.Name
	}
	return out
}
