package memory

import (
	"context"
	"sort"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.LineItemRepository = (*LineItemRepo)(nil)

// LineItemRepo implementación en memoria de LineItemRepository.
type LineItemRepo struct {
	v view
}

// Create persiste una línea nueva en su censo.
func (r *LineItemRepo) Create(_ context.Context, item *entity.CensusLineItem) error {
	return r.v.write(func(st *state) error {
		it := ownLineItem(*item)
		items, ok := st.lineItems[it.CensusID]
		if !ok {
			items = map[string]entity.CensusLineItem{}
			st.lineItems[it.CensusID] = items
		}
		if _, dup := items[it.ID]; dup {
			return domain.ErrConflict
		}
		items[it.ID] = it
		return nil
	})
}

// GetByID obtiene una línea de un censo; (nil, nil) si no existe.
func (r *LineItemRepo) GetByID(_ context.Context, censusID, id string) (*entity.CensusLineItem, error) {
	var out *entity.CensusLineItem
	err := r.v.read(func(st *state) error {
		if it, ok := st.lineItems[censusID][id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// Update reemplaza una línea existente.
func (r *LineItemRepo) Update(_ context.Context, item *entity.CensusLineItem) error {
	return r.v.write(func(st *state) error {
		items := st.lineItems[item.CensusID]
		cur, ok := items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := ownLineItem(*item)
		next.ID = cur.ID
		next.CensusID = cur.CensusID
		next.CreatedAt = cur.CreatedAt
		items[cur.ID] = next
		return nil
	})
}

// ListByCensus devuelve las líneas del censo en orden de creación.
func (r *LineItemRepo) ListByCensus(_ context.Context, censusID string) ([]*entity.CensusLineItem, error) {
	var out []*entity.CensusLineItem
	err := r.v.read(func(st *state) error {
		for _, it := range st.lineItems[censusID] {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

// Delete elimina una línea del censo.
func (r *LineItemRepo) Delete(_ context.Context, censusID, id string) error {
	return r.v.write(func(st *state) error {
		items := st.lineItems[censusID]
		if _, ok := items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(items, id)
		return nil
	})
}

// DeleteByCensus elimina todas las líneas del censo.
func (r *LineItemRepo) DeleteByCensus(_ context.Context, censusID string) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		n = int64(len(st.lineItems[censusID]))
		delete(st.lineItems, censusID)
		return nil
	})
	return n, err
}
