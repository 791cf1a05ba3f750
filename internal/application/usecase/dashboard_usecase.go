package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// DashboardUseCase arma el resumen de la pantalla de inicio.
type DashboardUseCase struct {
	locationRepo   repository.LocationRepository
	masterItemRepo repository.MasterItemRepository
	censusRepo     repository.CensusRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	locationRepo repository.LocationRepository,
	masterItemRepo repository.MasterItemRepository,
	censusRepo repository.CensusRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		locationRepo:   locationRepo,
		masterItemRepo: masterItemRepo,
		censusRepo:     censusRepo,
	}
}

// GetSummary construye el resumen del año indicado.
//
// Cuatro lecturas en paralelo:
//  1. ubicaciones
//  2. catálogo
//  3. censos del año
//  4. años con censos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error) {
	var (
		locations []*entity.Location
		items     []*entity.MasterItem
		censuses  []*entity.Census
		years     []int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if locations, err = uc.locationRepo.List(gctx); err != nil {
			return fmt.Errorf("dashboard: ubicaciones: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if items, err = uc.masterItemRepo.List(gctx); err != nil {
			return fmt.Errorf("dashboard: catálogo: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if censuses, err = uc.censusRepo.ListByYear(gctx, year); err != nil {
			return fmt.Errorf("dashboard: censos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if years, err = uc.censusRepo.Years(gctx); err != nil {
			return fmt.Errorf("dashboard: años: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	censuses = census.FilterByYear(censuses, year)
	out := &dto.DashboardSummaryDTO{
		Year:             year,
		Locations:        len(locations),
		MasterItems:      len(items),
		Censuses:         len(censuses),
		PendingLocations: len(census.AvailableLocations(year, locations, censuses)),
		GrandTotal:       census.SumTotals(censuses),
		AvailableYears:   years,
	}
	if out.AvailableYears == nil {
		out.AvailableYears = []int{}
	}
	for _, c := range censuses {
		if c.IsOpen() {
			out.OpenCensuses++
		}
		if c.TotalStale {
			out.StaleCensuses++
		}
	}
	return out, nil
}
