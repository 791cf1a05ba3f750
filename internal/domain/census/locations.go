package census

import "github.com/ekspresi/itm-sub002/internal/domain/entity"

// FilterByYear devuelve los censos cuyo año coincide exactamente con year, en el orden recibido.
func FilterByYear(censuses []*entity.Census, year int) []*entity.Census {
	out := make([]*entity.Census, 0, len(censuses))
	for _, c := range censuses {
		if c != nil && c.Year == year {
			out = append(out, c)
		}
	}
	return out
}

// AvailableLocations devuelve las ubicaciones que aún no tienen censo en year.
// Es función pura de sus entradas; existing puede traer censos de cualquier año.
func AvailableLocations(year int, all []*entity.Location, existing []*entity.Census) []*entity.Location {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range FilterByYear(existing, year) {
		taken[c.LocationID] = struct{}{}
	}
	out := make([]*entity.Location, 0, len(all))
	for _, loc := range all {
		if loc == nil {
			continue
		}
		if _, ok := taken[loc.ID]; ok {
			continue
		}
		out = append(out, loc)
	}
	return out
}
