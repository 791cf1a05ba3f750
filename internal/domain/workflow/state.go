// Package workflow modela la navegación del panel como un valor explícito:
// vista actual + contexto de drill-down. Las transiciones son funciones puras.
package workflow

import (
	"fmt"

	"github.com/ekspresi/itm-sub002/internal/domain"
)

// View identifica una pantalla del panel.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewItems         View = "items"
	ViewLocations     View = "locations"
	ViewCensuses      View = "censuses"
	ViewCensusDetails View = "census_details"
)

// ActionType tipo de acción del usuario.
type ActionType string

const (
	ActionOpen       ActionType = "open"        // abrir una vista de lista desde el dashboard
	ActionBack       ActionType = "back"        // volver un nivel
	ActionSelectYear ActionType = "select_year" // cambiar el año en la lista de censos
	ActionOpenCensus ActionType = "open_census" // entrar al detalle de un censo
)

// State estado de navegación. CensusID solo tiene valor en ViewCensusDetails.
type State struct {
	View     View   `json:"view"`
	Year     int    `json:"year,omitempty"`
	CensusID string `json:"census_id,omitempty"`
}

// Action acción del usuario sobre el estado actual.
type Action struct {
	Type     ActionType `json:"type"`
	Target   View       `json:"target,omitempty"`
	Year     int        `json:"year,omitempty"`
	CensusID string     `json:"census_id,omitempty"`
}

// Initial devuelve el estado de entrada (dashboard) para el año dado.
func Initial(year int) State {
	return State{View: ViewDashboard, Year: year}
}

// IsList informa si la vista es una lista que se recarga al volver a ella.
func (v View) IsList() bool {
	return v == ViewItems || v == ViewLocations || v == ViewCensuses
}

// Valid informa si la vista es conocida.
func (v View) Valid() bool {
	return v == ViewDashboard || v.IsList() || v == ViewCensusDetails
}

// Transition calcula el siguiente estado. No tiene efectos:
//
//	dashboard <-> {items, locations, censuses} <-> census_details
//
// Las transiciones no listadas devuelven domain.ErrInvalidInput.
func Transition(s State, a Action) (State, error) {
	if !s.View.Valid() {
		return s, fmt.Errorf("%w: vista desconocida %q", domain.ErrInvalidInput, s.View)
	}

	switch a.Type {
	case ActionOpen:
		if s.View != ViewDashboard || !a.Target.IsList() {
			return s, invalid(s, a)
		}
		return State{View: a.Target, Year: s.Year}, nil

	case ActionBack:
		switch {
		case s.View == ViewCensusDetails:
			return State{View: ViewCensuses, Year: s.Year}, nil
		case s.View.IsList():
			return State{View: ViewDashboard, Year: s.Year}, nil
		}
		return s, invalid(s, a)

	case ActionSelectYear:
		if (s.View != ViewCensuses && s.View != ViewDashboard) || a.Year <= 0 {
			return s, invalid(s, a)
		}
		return State{View: s.View, Year: a.Year}, nil

	case ActionOpenCensus:
		if s.View != ViewCensuses || a.CensusID == "" {
			return s, invalid(s, a)
		}
		return State{View: ViewCensusDetails, Year: s.Year, CensusID: a.CensusID}, nil
	}
	return s, invalid(s, a)
}

func invalid(s State, a Action) error {
	return fmt.Errorf("%w: acción %q no permitida desde %q", domain.ErrInvalidInput, a.Type, s.View)
}
