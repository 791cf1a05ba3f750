package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
)

var _ repository.CensusRepository = (*CensusRepo)(nil)

// CensusRepo implementación en memoria de CensusRepository.
// La unicidad (year, location) se verifica bajo el mismo lock que la escritura.
type CensusRepo struct {
	v view
}

func copyCensus(c entity.Census) *entity.Census {
	c.Committee = append([]string(nil), c.Committee...)
	return &c
}

func taken(st *state, year int, locationID, exceptID string) bool {
	for _, c := range st.censuses {
		if c.ID != exceptID && c.Year == year && c.LocationID == locationID {
			return true
		}
	}
	return false
}

// Create persiste un censo nuevo.
func (r *CensusRepo) Create(_ context.Context, census *entity.Census) error {
	return r.v.write(func(st *state) error {
		if taken(st, census.Year, census.LocationID, "") {
			return domain.ErrLocationAlreadyCensused
		}
		c := ownCensus(*census)
		st.censuses[c.ID] = c
		return nil
	})
}

// GetByID obtiene un censo por ID; (nil, nil) si no existe.
func (r *CensusRepo) GetByID(_ context.Context, id string) (*entity.Census, error) {
	var out *entity.Census
	err := r.v.read(func(st *state) error {
		if c, ok := st.censuses[id]; ok {
			out = copyCensus(c)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el lock ya está tomado.
func (r *CensusRepo) GetForUpdate(ctx context.Context, id string) (*entity.Census, error) {
	return r.GetByID(ctx, id)
}

// GetByYearAndLocation obtiene el censo de una ubicación en un año; (nil, nil) si no hay.
func (r *CensusRepo) GetByYearAndLocation(_ context.Context, year int, locationID string) (*entity.Census, error) {
	var out *entity.Census
	err := r.v.read(func(st *state) error {
		for _, c := range st.censuses {
			if c.Year == year && c.LocationID == locationID {
				out = copyCensus(c)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza los campos editables del censo (no toca el total cacheado).
func (r *CensusRepo) Update(_ context.Context, census *entity.Census) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.censuses[census.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if taken(st, census.Year, census.LocationID, census.ID) {
			return domain.ErrLocationAlreadyCensused
		}
		next := ownCensus(*census)
		next.ID = cur.ID
		next.TotalValue = cur.TotalValue
		next.TotalStale = cur.TotalStale
		next.CreatedAt = cur.CreatedAt
		st.censuses[cur.ID] = next
		return nil
	})
}

// UpdateTotal escribe el total cacheado y limpia la marca de desactualizado.
func (r *CensusRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal, at time.Time) error {
	return r.v.write(func(st *state) error {
		c, ok := st.censuses[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.TotalValue = total
		c.TotalStale = false
		c.UpdatedAt = at
		st.censuses[c.ID] = c
		return nil
	})
}

// MarkTotalStale marca el total como no confirmado.
func (r *CensusRepo) MarkTotalStale(_ context.Context, id string, at time.Time) error {
	return r.v.write(func(st *state) error {
		c, ok := st.censuses[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.TotalStale = true
		c.UpdatedAt = at
		st.censuses[c.ID] = c
		return nil
	})
}

// ListByYear devuelve los censos del año ordenados por fecha de creación.
func (r *CensusRepo) ListByYear(_ context.Context, year int) ([]*entity.Census, error) {
	var out []*entity.Census
	err := r.v.read(func(st *state) error {
		for _, c := range st.censuses {
			if c.Year == year {
				out = append(out, copyCensus(c))
			}
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

// Years devuelve los años con censos, del más reciente al más antiguo.
func (r *CensusRepo) Years(_ context.Context) ([]int, error) {
	seen := map[int]struct{}{}
	err := r.v.read(func(st *state) error {
		for _, c := range st.censuses {
			seen[c.Year] = struct{}{}
		}
		return nil
	})
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, err
}

// CountByLocation cuenta los censos que referencian la ubicación.
func (r *CensusRepo) CountByLocation(_ context.Context, locationID string) (int, error) {
	n := 0
	err := r.v.read(func(st *state) error {
		for _, c := range st.censuses {
			if c.LocationID == locationID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// Delete elimina un censo por ID.
func (r *CensusRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.censuses, id)
		return nil
	})
}
