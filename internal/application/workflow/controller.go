// Package workflow aplica las acciones de navegación del panel y vuelve a leer
// los datos de la vista destino en cada transición.
package workflow

import (
	"context"
	"time"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain/workflow"
)

// Contratos mínimos de los casos de uso que alimentan cada vista.
type (
	dashboardReader interface {
		GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error)
	}
	locationReader interface {
		List(ctx context.Context) ([]dto.LocationResponse, error)
	}
	masterItemReader interface {
		List(ctx context.Context, locationID string) ([]dto.MasterItemResponse, error)
	}
	censusReader interface {
		ListForYear(ctx context.Context, year int) (*dto.CensusListResponse, error)
		AvailableLocations(ctx context.Context, year int) ([]dto.LocationResponse, error)
		Years(ctx context.Context) (*dto.YearsResponse, error)
		Get(ctx context.Context, id string) (*dto.CensusResponse, error)
	}
	lineItemReader interface {
		List(ctx context.Context, censusID string) (*dto.LineItemListResponse, error)
		Suggestions(ctx context.Context, censusID string) ([]dto.SuggestionResponse, error)
	}
)

// Controller orquesta la navegación: transición pura + recarga de la vista destino.
type Controller struct {
	dashboard   dashboardReader
	locations   locationReader
	masterItems masterItemReader
	censuses    censusReader
	lineItems   lineItemReader
	now         func() time.Time
}

// NewController construye el controlador.
func NewController(
	dashboard dashboardReader,
	locations locationReader,
	masterItems masterItemReader,
	censuses censusReader,
	lineItems lineItemReader,
) *Controller {
	return &Controller{
		dashboard:   dashboard,
		locations:   locations,
		masterItems: masterItems,
		censuses:    censuses,
		lineItems:   lineItems,
		now:         time.Now,
	}
}

// Navigate aplica la acción sobre el estado recibido y devuelve el nuevo estado con
// los datos de la vista recién leídos. Si la transición no es válida el estado no cambia
// y se devuelve el error.
func (c *Controller) Navigate(ctx context.Context, in dto.NavigateRequest) (*dto.NavigateResponse, error) {
	state := in.State
	if state.View == "" {
		state = workflow.Initial(c.now().Year())
	}
	if state.Year <= 0 {
		state.Year = c.now().Year()
	}
	next, err := workflow.Transition(state, in.Action)
	if err != nil {
		return nil, err
	}
	data, err := c.Load(ctx, next)
	if err != nil {
		return nil, err
	}
	return &dto.NavigateResponse{State: next, Data: data}, nil
}

// Load lee los datos de la vista indicada por el estado.
func (c *Controller) Load(ctx context.Context, s workflow.State) (any, error) {
	switch s.View {
	case workflow.ViewItems:
		return c.masterItems.List(ctx, "")
	case workflow.ViewLocations:
		return c.locations.List(ctx)
	case workflow.ViewCensuses:
		return c.loadCensuses(ctx, s.Year)
	case workflow.ViewCensusDetails:
		return c.loadDetails(ctx, s.CensusID)
	default:
		return c.dashboard.GetSummary(ctx, s.Year)
	}
}

func (c *Controller) loadCensuses(ctx context.Context, year int) (*dto.CensusesViewDTO, error) {
	list, err := c.censuses.ListForYear(ctx, year)
	if err != nil {
		return nil, err
	}
	years, err := c.censuses.Years(ctx)
	if err != nil {
		return nil, err
	}
	avail, err := c.censuses.AvailableLocations(ctx, year)
	if err != nil {
		return nil, err
	}
	return &dto.CensusesViewDTO{Censuses: *list, Years: years.Years, AvailableLocations: avail}, nil
}

func (c *Controller) loadDetails(ctx context.Context, censusID string) (*dto.CensusDetailsDTO, error) {
	census, err := c.censuses.Get(ctx, censusID)
	if err != nil {
		return nil, err
	}
	items, err := c.lineItems.List(ctx, censusID)
	if err != nil {
		return nil, err
	}
	sugg, err := c.lineItems.Suggestions(ctx, censusID)
	if err != nil {
		return nil, err
	}
	return &dto.CensusDetailsDTO{Census: *census, Items: *items, Suggestions: sugg}, nil
}
