package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

// UserUseCase administración de cuentas del panel (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// SetStatus activa o desactiva una cuenta. Un usuario inactivo no puede iniciar sesión.
// Nadie puede desactivar su propia cuenta.
func (uc *UserUseCase) SetStatus(ctx context.Context, actorID, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusInactive {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, in.Status)
	}
	if id == actorID && in.Status != entity.UserStatusActive {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrConflict)
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status, time.Now()); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}
