package census_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

func ids(locs []*entity.Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterByYear_SoloCoincidenciaExacta(t *testing.T) {
	cs := []*entity.Census{
		{ID: "a", Year: 2024}, {ID: "b", Year: 2025}, {ID: "c", Year: 2024}, nil,
	}

	got := census.FilterByYear(cs, 2024)

	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	}
}

// Escenario E: "Main Hall" ya tiene censo en 2025 y no se ofrece de nuevo.
func TestAvailableLocations_ExcluyeUbicacionesYaCensadas(t *testing.T) {
	locs := []*entity.Location{
		{ID: "hall", Name: "Main Hall"},
		{ID: "store", Name: "Storage"},
		{ID: "stage", Name: "Stage"},
	}
	existing := []*entity.Census{
		{Year: 2025, LocationID: "hall"},
		{Year: 2024, LocationID: "store"},
	}

	got := census.AvailableLocations(2025, locs, existing)

	assert.Equal(t, []string{"store", "stage"}, ids(got))
}

func TestAvailableLocations_NuncaIncluyeCensadas(t *testing.T) {
	locs := []*entity.Location{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}, {ID: "l4"}}
	existing := []*entity.Census{
		{Year: 2023, LocationID: "l1"},
		{Year: 2023, LocationID: "l3"},
		{Year: 2022, LocationID: "l2"},
	}

	for _, year := range []int{2022, 2023, 2024} {
		got := census.AvailableLocations(year, locs, existing)
		for _, c := range census.FilterByYear(existing, year) {
			assert.NotContains(t, ids(got), c.LocationID, "año %d", year)
		}
		assert.Len(t, got, len(locs)-len(census.FilterByYear(existing, year)))
	}
}

func TestAvailableLocations_SinUbicaciones(t *testing.T) {
	assert.Empty(t, census.AvailableLocations(2025, nil, nil))
}
