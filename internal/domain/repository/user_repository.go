package repository

import (
	"context"
	"time"

	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*entity.User, error)
	// UpdateStatus devuelve domain.ErrNotFound si el usuario no existe.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
