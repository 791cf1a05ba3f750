package repository

import (
	"context"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// LineItemRepository define el puerto de persistencia para las líneas de un censo.
// Todas las operaciones van acotadas al censo dueño.
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.CensusLineItem) error
	GetByID(ctx context.Context, censusID, id string) (*entity.CensusLineItem, error)
	// Update devuelve domain.ErrNotFound si la línea no existe en ese censo.
	Update(ctx context.Context, item *entity.CensusLineItem) error
	ListByCensus(ctx context.Context, censusID string) ([]*entity.CensusLineItem, error)
	// Delete devuelve domain.ErrNotFound si la línea no existe en ese censo.
	Delete(ctx context.Context, censusID, id string) error
	// DeleteByCensus borra todas las líneas del censo y devuelve cuántas eran.
	DeleteByCensus(ctx context.Context, censusID string) (int64, error)
}
