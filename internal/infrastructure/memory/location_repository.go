package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct {
	v view
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(_ context.Context, location *entity.Location) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.locations[location.ID]; ok {
			return domain.ErrConflict
		}
		l := ownLocation(*location)
		st.locations[l.ID] = l
		return nil
	})
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.v.read(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

// Update reemplaza una ubicación existente.
func (r *LocationRepo) Update(_ context.Context, location *entity.Location) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.locations[location.ID]
		if !ok {
			return domain.ErrNotFound
		}
		l := ownLocation(*location)
		l.ID = cur.ID
		st.locations[cur.ID] = l
		return nil
	})
}

// List devuelve todas las ubicaciones ordenadas por nombre.
func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Location, 0, len(st.locations))
		for _, l := range st.locations {
			l := l
			out = append(out, &l)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, err
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.locations, id)
		return nil
	})
}
