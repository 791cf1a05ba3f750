package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.MasterItemRepository = (*MasterItemRepo)(nil)

// MasterItemRepo implementación en memoria del catálogo.
type MasterItemRepo struct {
	v view
}

// Create persiste un ítem nuevo.
func (r *MasterItemRepo) Create(_ context.Context, item *entity.MasterItem) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.masterItems[item.ID]; ok {
			return domain.ErrConflict
		}
		m := ownMasterItem(*item)
		st.masterItems[m.ID] = m
		return nil
	})
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *MasterItemRepo) GetByID(_ context.Context, id string) (*entity.MasterItem, error) {
	var out *entity.MasterItem
	err := r.v.read(func(st *state) error {
		if m, ok := st.masterItems[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

// Update reemplaza un ítem existente.
func (r *MasterItemRepo) Update(_ context.Context, item *entity.MasterItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.masterItems[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		m := ownMasterItem(*item)
		m.ID = cur.ID
		st.masterItems[cur.ID] = m
		return nil
	})
}

// List devuelve el catálogo ordenado por nombre.
func (r *MasterItemRepo) List(ctx context.Context) ([]*entity.MasterItem, error) {
	return r.filter(func(*entity.MasterItem) bool { return true })
}

// ListByLocation devuelve los ítems asignados a la ubicación.
func (r *MasterItemRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.MasterItem, error) {
	return r.filter(func(m *entity.MasterItem) bool { return m.CurrentLocationID == locationID })
}

func (r *MasterItemRepo) filter(keep func(*entity.MasterItem) bool) ([]*entity.MasterItem, error) {
	var out []*entity.MasterItem
	err := r.v.read(func(st *state) error {
		for _, m := range st.masterItems {
			m := m
			if keep(&m) {
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, err
}

// Delete elimina un ítem del catálogo.
func (r *MasterItemRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.masterItems, id)
		return nil
	})
}
