package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	v view
}

// Create persiste un usuario; el email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		u := ownUser(*user)
		st.users[u.ID] = u
		return nil
	})
}

// GetByID obtiene un usuario; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Count devuelve cuántos usuarios hay.
func (r *UserRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, err
}

// List devuelve los usuarios ordenados por email.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.v.read(func(st *state) error {
		out = make([]*entity.User, 0, len(st.users))
		for _, u := range st.users {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, err
}

// UpdateStatus cambia el estado de la cuenta.
func (r *UserRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.v.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.Status = strings.Clone(status)
		u.UpdatedAt = at
		st.users[u.ID] = u
		return nil
	})
}
