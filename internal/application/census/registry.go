package census

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// RegistryUseCase casos de uso sobre censos: listado por año, alta, edición, cierre y borrado.
// Hay como máximo un censo por (año, ubicación).
type RegistryUseCase struct {
	txRunner     TxRunner
	censusRepo   repository.CensusRepository
	locationRepo repository.LocationRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	censusRepo repository.CensusRepository,
	locationRepo repository.LocationRepository,
	log zerolog.Logger,
) *RegistryUseCase {
	return &RegistryUseCase{
		txRunner:     txRunner,
		censusRepo:   censusRepo,
		locationRepo: locationRepo,
		log:          log,
		now:          time.Now,
	}
}

// ListForYear devuelve los censos cuyo año coincide exactamente con year y la suma de sus totales.
func (uc *RegistryUseCase) ListForYear(ctx context.Context, year int) (*dto.CensusListResponse, error) {
	list, err := uc.censusRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	list = census.FilterByYear(list, year)
	locations, err := uc.locationIndex(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CensusResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToCensusResponse(c, locations[c.LocationID]))
	}
	return &dto.CensusListResponse{
		Year:       year,
		Items:      items,
		GrandTotal: census.SumTotals(list),
	}, nil
}

// AvailableLocations devuelve las ubicaciones que aún no tienen censo en year.
func (uc *RegistryUseCase) AvailableLocations(ctx context.Context, year int) ([]dto.LocationResponse, error) {
	all, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := uc.censusRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return dto.ToLocationResponses(census.AvailableLocations(year, all, existing)), nil
}

// Years devuelve los años que tienen al menos un censo, del más reciente al más antiguo.
func (uc *RegistryUseCase) Years(ctx context.Context) (*dto.YearsResponse, error) {
	years, err := uc.censusRepo.Years(ctx)
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []int{}
	}
	return &dto.YearsResponse{Years: years}, nil
}

// Get obtiene un censo por ID.
func (uc *RegistryUseCase) Get(ctx context.Context, id string) (*dto.CensusResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, c)
}

// Create valida el borrador, verifica que la ubicación exista y que no tenga censo en ese año,
// y crea el censo con total cero en estado "in progress" si no se indica otro.
func (uc *RegistryUseCase) Create(ctx context.Context, in dto.CreateCensusRequest) (*dto.CensusResponse, error) {
	now := uc.now()
	c := &entity.Census{
		ID:         uuid.New().String(),
		Year:       in.Year,
		LocationID: in.LocationID,
		Committee:  census.NormalizeCommittee(in.Committee),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Status:     in.Status,
		TotalValue: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if c.Status == "" {
		c.Status = entity.CensusStatusInProgress
	}
	if err := census.ValidateCensus(c); err != nil {
		return nil, err
	}
	location, err := uc.checkPlacement(ctx, c.Year, c.LocationID, "")
	if err != nil {
		return nil, err
	}
	if err := uc.censusRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("census_id", c.ID).Int("year", c.Year).Str("location_id", c.LocationID).Msg("censo creado")
	out := dto.ToCensusResponse(c, location)
	return &out, nil
}

// Update aplica los campos presentes en in. Cambiar año o ubicación vuelve a verificar la unicidad.
func (uc *RegistryUseCase) Update(ctx context.Context, id string, in dto.UpdateCensusRequest) (*dto.CensusResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	moved := false
	if in.Year != nil && *in.Year != c.Year {
		c.Year = *in.Year
		moved = true
	}
	if in.LocationID != nil && *in.LocationID != c.LocationID {
		c.LocationID = *in.LocationID
		moved = true
	}
	if in.Committee != nil {
		c.Committee = census.NormalizeCommittee(*in.Committee)
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if err := census.ValidateCensus(c); err != nil {
		return nil, err
	}
	if moved {
		if _, err := uc.checkPlacement(ctx, c.Year, c.LocationID, c.ID); err != nil {
			return nil, err
		}
	}
	c.UpdatedAt = uc.now()
	if err := uc.censusRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.response(ctx, c)
}

// Close marca el censo como terminado: fecha de cierre ahora y estado "completed".
func (uc *RegistryUseCase) Close(ctx context.Context, id string) (*dto.CensusResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c.EndDate = &now
	c.Status = entity.CensusStatusCompleted
	c.UpdatedAt = now
	if err := uc.censusRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.response(ctx, c)
}

// Delete borra el censo y todas sus líneas en una sola transacción.
func (uc *RegistryUseCase) Delete(ctx context.Context, id string) error {
	var swept int64
	err := uc.txRunner.Run(ctx, func(censusRepo repository.CensusRepository, itemRepo repository.LineItemRepository) error {
		c, err := censusRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if swept, err = itemRepo.DeleteByCensus(ctx, id); err != nil {
			return err
		}
		return censusRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("census_id", id).Int64("line_items", swept).Msg("censo eliminado")
	return nil
}

// checkPlacement verifica que la ubicación exista y que no haya otro censo (distinto de exceptID)
// para ese año. El almacenamiento vuelve a verificarlo al escribir.
func (uc *RegistryUseCase) checkPlacement(ctx context.Context, year int, locationID, exceptID string) (*entity.Location, error) {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
	}
	existing, err := uc.censusRepo.GetByYearAndLocation(ctx, year, locationID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != exceptID {
		return nil, fmt.Errorf("%w: %s en %d", domain.ErrLocationAlreadyCensused, location.Name, year)
	}
	return location, nil
}

func (uc *RegistryUseCase) get(ctx context.Context, id string) (*entity.Census, error) {
	c, err := uc.censusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *RegistryUseCase) response(ctx context.Context, c *entity.Census) (*dto.CensusResponse, error) {
	location, err := uc.locationRepo.GetByID(ctx, c.LocationID)
	if err != nil {
		return nil, err
	}
	out := dto.ToCensusResponse(c, location)
	return &out, nil
}

func (uc *RegistryUseCase) locationIndex(ctx context.Context) (map[string]*entity.Location, error) {
	all, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Location, len(all))
	for _, l := range all {
		idx[l.ID] = l
	}
	return idx, nil
}
