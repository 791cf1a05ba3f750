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

// LineItemUseCase casos de uso sobre las líneas de un censo.
// Cada escritura bloquea el censo (SELECT FOR UPDATE), aplica el cambio y recalcula
// el total cacheado en la misma transacción: o se persisten ambos o ninguno.
type LineItemUseCase struct {
	txRunner       TxRunner
	censusRepo     repository.CensusRepository
	itemRepo       repository.LineItemRepository
	masterItemRepo repository.MasterItemRepository
	log            zerolog.Logger
	now            func() time.Time
}

// NewLineItemUseCase construye el caso de uso.
func NewLineItemUseCase(
	txRunner TxRunner,
	censusRepo repository.CensusRepository,
	itemRepo repository.LineItemRepository,
	masterItemRepo repository.MasterItemRepository,
	log zerolog.Logger,
) *LineItemUseCase {
	return &LineItemUseCase{
		txRunner:       txRunner,
		censusRepo:     censusRepo,
		itemRepo:       itemRepo,
		masterItemRepo: masterItemRepo,
		log:            log,
		now:            time.Now,
	}
}

// List devuelve las líneas del censo y el total calculado sobre ellas.
func (uc *LineItemUseCase) List(ctx context.Context, censusID string) (*dto.LineItemListResponse, error) {
	if _, err := uc.getCensus(ctx, censusID); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByCensus(ctx, censusID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToLineItemResponse(it))
	}
	return &dto.LineItemListResponse{CensusID: censusID, Items: out, Total: census.Total(items)}, nil
}

// Save crea la línea si itemID está vacío o la reemplaza si no, y recalcula el total del censo.
func (uc *LineItemUseCase) Save(ctx context.Context, censusID, itemID string, in dto.SaveLineItemRequest) (*dto.SaveLineItemResponse, error) {
	now := uc.now()
	item := &entity.CensusLineItem{
		ID:            itemID,
		CensusID:      censusID,
		MasterItemID:  in.MasterItemID,
		Name:          in.Name,
		Unit:          in.Unit,
		QuantityFound: in.QuantityFound,
		PricePerUnit:  in.PricePerUnit,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if item.Unit == "" {
		item.Unit = entity.DefaultUnit
	}
	if err := census.ValidateLineItem(item); err != nil {
		return nil, err
	}
	if item.MasterItemID != "" {
		master, err := uc.masterItemRepo.GetByID(ctx, item.MasterItemID)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, fmt.Errorf("%w: ítem de catálogo %s", domain.ErrNotFound, item.MasterItemID)
		}
	}

	var total decimal.Decimal
	err := uc.txRunner.Run(ctx, func(censusRepo repository.CensusRepository, itemRepo repository.LineItemRepository) error {
		if err := lockCensus(ctx, censusRepo, censusID); err != nil {
			return err
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
		} else {
			current, err := itemRepo.GetByID(ctx, censusID, item.ID)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("%w: línea %s", domain.ErrNotFound, item.ID)
			}
			item.CreatedAt = current.CreatedAt
			if item.MasterItemID == "" {
				item.MasterItemID = current.MasterItemID
			}
			if err := itemRepo.Update(ctx, item); err != nil {
				return err
			}
		}
		var err error
		total, err = recomputeIn(ctx, censusRepo, itemRepo, censusID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("census_id", censusID).Str("item_id", item.ID).Str("total", total.String()).Msg("línea guardada")
	return &dto.SaveLineItemResponse{Item: dto.ToLineItemResponse(item), CensusTotal: total}, nil
}

// Delete borra la línea del censo y recalcula el total.
func (uc *LineItemUseCase) Delete(ctx context.Context, censusID, itemID string) (*dto.DeleteLineItemResponse, error) {
	var total decimal.Decimal
	err := uc.txRunner.Run(ctx, func(censusRepo repository.CensusRepository, itemRepo repository.LineItemRepository) error {
		if err := lockCensus(ctx, censusRepo, censusID); err != nil {
			return err
		}
		if err := itemRepo.Delete(ctx, censusID, itemID); err != nil {
			return err
		}
		var err error
		total, err = recomputeIn(ctx, censusRepo, itemRepo, censusID, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteLineItemResponse{CensusTotal: total}, nil
}

// Suggestions lista los ítems del catálogo ubicados en la ubicación del censo que aún no tienen línea.
func (uc *LineItemUseCase) Suggestions(ctx context.Context, censusID string) ([]dto.SuggestionResponse, error) {
	c, err := uc.getCensus(ctx, censusID)
	if err != nil {
		return nil, err
	}
	master, err := uc.masterItemRepo.ListByLocation(ctx, c.LocationID)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByCensus(ctx, censusID)
	if err != nil {
		return nil, err
	}
	suggested := census.Suggestions(master, items)
	out := make([]dto.SuggestionResponse, 0, len(suggested))
	for _, m := range suggested {
		unit := m.Unit
		if unit == "" {
			unit = entity.DefaultUnit
		}
		out = append(out, dto.SuggestionResponse{
			MasterItemID:  m.ID,
			Name:          m.Name,
			Unit:          unit,
			PurchaseValue: m.PurchaseValue,
		})
	}
	return out, nil
}

// AddSuggested crea una línea prellenada desde el ítem del catálogo.
// Devuelve domain.ErrConflict si el ítem ya figura en el censo.
func (uc *LineItemUseCase) AddSuggested(ctx context.Context, censusID, masterItemID string) (*dto.SaveLineItemResponse, error) {
	m, err := uc.masterItemRepo.GetByID(ctx, masterItemID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: ítem de catálogo %s", domain.ErrNotFound, masterItemID)
	}
	now := uc.now()
	item := census.LineItemFromMaster(censusID, m)
	item.ID = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now

	var total decimal.Decimal
	err = uc.txRunner.Run(ctx, func(censusRepo repository.CensusRepository, itemRepo repository.LineItemRepository) error {
		if err := lockCensus(ctx, censusRepo, censusID); err != nil {
			return err
		}
		existing, err := itemRepo.ListByCensus(ctx, censusID)
		if err != nil {
			return err
		}
		for _, it := range existing {
			if it.MasterItemID == masterItemID {
				return fmt.Errorf("%w: %s ya está en el censo", domain.ErrConflict, m.Name)
			}
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		total, err = recomputeIn(ctx, censusRepo, itemRepo, censusID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.SaveLineItemResponse{Item: dto.ToLineItemResponse(item), CensusTotal: total}, nil
}

func (uc *LineItemUseCase) getCensus(ctx context.Context, censusID string) (*entity.Census, error) {
	c, err := uc.censusRepo.GetByID(ctx, censusID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: censo %s", domain.ErrNotFound, censusID)
	}
	return c, nil
}

func lockCensus(ctx context.Context, censusRepo repository.CensusRepository, censusID string) error {
	c, err := censusRepo.GetForUpdate(ctx, censusID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: censo %s", domain.ErrNotFound, censusID)
	}
	return nil
}
