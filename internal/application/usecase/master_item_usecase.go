package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// MasterItemUseCase casos de uso CRUD del catálogo de inventario.
// Los ítems son plantillas: editarlos no modifica líneas de censo ya creadas.
type MasterItemUseCase struct {
	repo         repository.MasterItemRepository
	locationRepo repository.LocationRepository
}

// NewMasterItemUseCase construye el caso de uso.
func NewMasterItemUseCase(repo repository.MasterItemRepository, locationRepo repository.LocationRepository) *MasterItemUseCase {
	return &MasterItemUseCase{repo: repo, locationRepo: locationRepo}
}

// Create crea un ítem del catálogo.
func (uc *MasterItemUseCase) Create(ctx context.Context, in dto.CreateMasterItemRequest) (*dto.MasterItemResponse, error) {
	now := time.Now()
	item := &entity.MasterItem{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Unit:              in.Unit,
		CurrentLocationID: in.CurrentLocationID,
		PurchaseValue:     in.PurchaseValue,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if item.Unit == "" {
		item.Unit = entity.DefaultUnit
	}
	if err := uc.validate(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := dto.ToMasterItemResponse(item)
	return &out, nil
}

// GetByID obtiene un ítem por ID.
func (uc *MasterItemUseCase) GetByID(ctx context.Context, id string) (*dto.MasterItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToMasterItemResponse(item)
	return &out, nil
}

// Update actualiza un ítem del catálogo.
func (uc *MasterItemUseCase) Update(ctx context.Context, id string, in dto.UpdateMasterItemRequest) (*dto.MasterItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CurrentLocationID != nil {
		item.CurrentLocationID = *in.CurrentLocationID
	}
	if in.PurchaseValue != nil {
		item.PurchaseValue = *in.PurchaseValue
	}
	if err := uc.validate(ctx, item); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := dto.ToMasterItemResponse(item)
	return &out, nil
}

// List lista el catálogo; con locationID filtra por ubicación actual.
func (uc *MasterItemUseCase) List(ctx context.Context, locationID string) ([]dto.MasterItemResponse, error) {
	var (
		list []*entity.MasterItem
		err  error
	)
	if locationID != "" {
		list, err = uc.repo.ListByLocation(ctx, locationID)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToMasterItemResponses(list), nil
}

// Delete elimina un ítem del catálogo. Las líneas de censo que lo referencian conservan sus datos.
func (uc *MasterItemUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *MasterItemUseCase) validate(ctx context.Context, item *entity.MasterItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if item.PurchaseValue.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: purchase_value no puede ser negativo", domain.ErrInvalidInput)
	}
	if item.CurrentLocationID == "" {
		return nil
	}
	location, err := uc.locationRepo.GetByID(ctx, item.CurrentLocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, item.CurrentLocationID)
	}
	return nil
}

func (uc *MasterItemUseCase) get(ctx context.Context, id string) (*entity.MasterItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
