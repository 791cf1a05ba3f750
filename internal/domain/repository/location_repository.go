package repository

import (
	"context"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
// GetByID devuelve (nil, nil) si no existe.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	List(ctx context.Context) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}
