package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// CensusRepository define el puerto de persistencia para Census.
// Create y Update devuelven domain.ErrLocationAlreadyCensused si violan la unicidad (year, location).
type CensusRepository interface {
	Create(ctx context.Context, census *entity.Census) error
	GetByID(ctx context.Context, id string) (*entity.Census, error)

	// GetForUpdate bloquea el censo hasta el fin de la transacción (SELECT FOR UPDATE).
	// Serializa a los escritores concurrentes de un mismo censo.
	GetForUpdate(ctx context.Context, id string) (*entity.Census, error)

	GetByYearAndLocation(ctx context.Context, year int, locationID string) (*entity.Census, error)
	Update(ctx context.Context, census *entity.Census) error

	// UpdateTotal escribe el total cacheado y limpia la marca de desactualizado.
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal, at time.Time) error
	// MarkTotalStale marca el total cacheado como no confirmado sin tocar su valor.
	MarkTotalStale(ctx context.Context, id string, at time.Time) error

	ListByYear(ctx context.Context, year int) ([]*entity.Census, error)
	Years(ctx context.Context) ([]int, error)
	CountByLocation(ctx context.Context, locationID string) (int, error)
	Delete(ctx context.Context, id string) error
}
