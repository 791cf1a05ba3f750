package repository

import (
	"context"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// MasterItemRepository define el puerto de persistencia para el catálogo de inventario.
type MasterItemRepository interface {
	Create(ctx context.Context, item *entity.MasterItem) error
	GetByID(ctx context.Context, id string) (*entity.MasterItem, error)
	Update(ctx context.Context, item *entity.MasterItem) error
	List(ctx context.Context) ([]*entity.MasterItem, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.MasterItem, error)
	Delete(ctx context.Context, id string) error
}
