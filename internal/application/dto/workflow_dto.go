package dto

import "github.com/ekspresi/itm-sub002/internal/domain/workflow"

// NavigateRequest estado actual del panel más la acción del usuario.
// Un State vacío equivale al dashboard del año en curso.
type NavigateRequest struct {
	State  workflow.State  `json:"state"`
	Action workflow.Action `json:"action"`
}

// NavigateResponse nuevo estado y los datos recién leídos de la vista destino.
type NavigateResponse struct {
	State workflow.State `json:"state"`
	Data  any            `json:"data"`
}

// CensusDetailsDTO datos de la vista de detalle de un censo.
type CensusDetailsDTO struct {
	Census      CensusResponse       `json:"census"`
	Items       LineItemListResponse `json:"items"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// CensusesViewDTO datos de la vista de censos de un año.
type CensusesViewDTO struct {
	Censuses           CensusListResponse `json:"censuses"`
	Years              []int              `json:"years"`
	AvailableLocations []LocationResponse `json:"available_locations"`
}
